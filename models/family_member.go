package models

import "coparent/db"

// FamilyMember is the durable link between a User and a Family.
// One membership per (family, user) pair.
type FamilyMember struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	FamilyID  uint64 `gorm:"index:uniq_family_user,priority:1,unique" json:"family_id"`
	Family    Family `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint64 `gorm:"index:uniq_family_user,priority:2,unique" json:"user_id"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Role      string `gorm:"type:varchar(30)" json:"role"`
}

func IsFamilyMember(userID, familyID uint64) bool {
	var count int64
	err := db.Instance.Model(&FamilyMember{}).
		Where("user_id = ? AND family_id = ?", userID, familyID).
		Count(&count).Error
	return err == nil && count > 0
}

// FamilyIDsForUser returns the IDs of all families the user belongs to
func FamilyIDsForUser(userID uint64) []uint64 {
	result := []uint64{}
	rows, err := db.Instance.
		Table("family_members").
		Select("family_id").
		Where("user_id = ?", userID).
		Rows()
	if err != nil {
		return result
	}
	defer rows.Close()
	id := uint64(0)
	for rows.Next() {
		if err = rows.Scan(&id); err != nil {
			continue
		}
		result = append(result, id)
	}
	return result
}
