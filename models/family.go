package models

import (
	"coparent/db"

	"gorm.io/gorm"
)

type Family struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"-"`
	Name      string `gorm:"type:varchar(200);not null" json:"name"`
}

// FamilyCreate creates the Family and makes the creator its first member
func FamilyCreate(user *User, name string) (family Family, err error) {
	family.Name = name
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		member := FamilyMember{
			FamilyID: family.ID,
			UserID:   user.ID,
			Role:     RoleParent,
		}
		return tx.Create(&member).Error
	})
	return family, err
}
