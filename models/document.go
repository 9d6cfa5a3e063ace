package models

import (
	"coparent/storage"
)

// Document keeps the metadata; the file bytes live in a storage Bucket
type Document struct {
	ID           uint64         `gorm:"primaryKey" json:"id"`
	CreatedAt    int64          `json:"created_at"`
	Name         string         `gorm:"type:varchar(300);not null" json:"name"`
	MimeType     string         `gorm:"type:varchar(100)" json:"mime_type"`
	Size         int64          `json:"size"`
	Path         string         `gorm:"type:varchar(500)" json:"-"`
	BucketID     uint64         `json:"-"`
	Bucket       storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FamilyID     uint64         `gorm:"index" json:"family_id"`
	Family       Family         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UploadedByID uint64         `json:"uploaded_by_id"`
	UploadedBy   User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
