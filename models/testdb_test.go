package models

import (
	"testing"

	"coparent/db"
	"coparent/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	instance, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB, err := instance.DB()
	if err != nil {
		t.Fatalf("getting sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db.Instance = instance
	db.Instance.AutoMigrate(&storage.Bucket{})
	Init()
}

func createTestUser(t *testing.T, name, email string) User {
	t.Helper()
	user := User{Name: name, Email: email, Role: RoleParent}
	if err := user.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.Instance.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return user
}

func createTestFamily(t *testing.T, owner *User, name string) Family {
	t.Helper()
	family, err := FamilyCreate(owner, name)
	if err != nil {
		t.Fatalf("creating family: %v", err)
	}
	return family
}

func expireInvitation(t *testing.T, invitationID uint64) {
	t.Helper()
	err := db.Instance.Model(&Invitation{}).
		Where("id = ?", invitationID).
		Update("expires_at", 1000).Error // long in the past
	if err != nil {
		t.Fatalf("backdating invitation: %v", err)
	}
}

func reloadInvitation(t *testing.T, invitationID uint64) Invitation {
	t.Helper()
	var invitation Invitation
	if err := db.Instance.First(&invitation, invitationID).Error; err != nil {
		t.Fatalf("reloading invitation: %v", err)
	}
	return invitation
}

func membershipCount(t *testing.T, userID, familyID uint64) int64 {
	t.Helper()
	var count int64
	err := db.Instance.Model(&FamilyMember{}).
		Where("user_id = ? AND family_id = ?", userID, familyID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("counting memberships: %v", err)
	}
	return count
}
