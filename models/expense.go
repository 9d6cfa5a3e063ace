package models

import "coparent/db"

type Expense struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"-"`
	Title       string  `gorm:"type:varchar(300);not null" json:"title"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Category    string  `gorm:"type:varchar(50)" json:"category"`
	Date        int64   `gorm:"index" json:"date"`
	FamilyID    uint64  `gorm:"index" json:"family_id"`
	Family      Family  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedByID uint64  `json:"created_by_id"`
	CreatedBy   User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// ExpensesForUser returns the expenses of all families the user belongs to,
// newest first
func ExpensesForUser(userID uint64) (result []Expense, err error) {
	familyIDs := FamilyIDsForUser(userID)
	if len(familyIDs) == 0 {
		return []Expense{}, nil
	}
	err = db.Instance.
		Where("family_id IN ?", familyIDs).
		Order("date DESC").
		Find(&result).Error
	return result, err
}
