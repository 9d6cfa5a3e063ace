package models

import "coparent/db"

const (
	EventTypeVisitation = "VISITATION"
	EventTypeMedical    = "MEDICAL"
	EventTypeSchool     = "SCHOOL"
	EventTypeActivity   = "ACTIVITY"
	EventTypeOther      = "OTHER"
)

type Event struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"-"`
	Title       string `gorm:"type:varchar(300);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	StartDate   int64  `gorm:"index" json:"start_date"`
	EndDate     int64  `json:"end_date"`
	Location    string `gorm:"type:varchar(300)" json:"location"`
	Type        string `gorm:"type:varchar(30)" json:"type"`
	FamilyID    uint64 `gorm:"index" json:"family_id"`
	Family      Family `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedByID uint64 `json:"created_by_id"`
	CreatedBy   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// EventsForUser returns the events of all families the user belongs to,
// soonest first
func EventsForUser(userID uint64) (result []Event, err error) {
	familyIDs := FamilyIDsForUser(userID)
	if len(familyIDs) == 0 {
		return []Event{}, nil
	}
	err = db.Instance.
		Where("family_id IN ?", familyIDs).
		Order("start_date ASC").
		Find(&result).Error
	return result, err
}
