package models

import (
	"errors"
	"log"
	"time"

	"coparent/config"
	"coparent/db"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleParent     = "PARENT"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"-"`
	Name      string `gorm:"type:varchar(100)" json:"name"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	Password  string `gorm:"type:varchar(100)" json:"-"`
	Role      string `gorm:"type:varchar(30)" json:"role"`
}

func (u *User) SetPassword(plainTextPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(plainTextPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) == nil
}

func (u *User) IsMemberOf(familyID uint64) bool {
	return IsFamilyMember(u.ID, familyID)
}

func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

func UserLogin(email, plainTextPassword string) (u User, success bool) {
	result := db.Instance.First(&u, "email = ?", email)
	if result.Error != nil {
		return User{}, false
	}
	if !u.CheckPassword(plainTextPassword) {
		return User{}, false
	}
	return u, true
}

// UserRegister creates the User and, if a pending invitation token was
// supplied, links the new user to the invitation's family in the same
// transaction. An unknown or already consumed token is ignored.
func UserRegister(name, email, plainTextPassword, invitationToken string) (u User, err error) {
	var count int64
	if err = db.Instance.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return User{}, err
	}
	if count > 0 {
		return User{}, ErrEmailTaken
	}
	u.Name = name
	u.Email = email
	u.Role = RoleParent
	if err = u.SetPassword(plainTextPassword); err != nil {
		return User{}, err
	}
	now := time.Now()
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			// The unique index is the real guard against concurrent registrations
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		if invitationToken == "" {
			return nil
		}
		var invitation Invitation
		err := tx.Where("token = ? AND status = ?", invitationToken, InvitationPending).First(&invitation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if invitation.IsExpiredAt(now) {
			return ErrExpired
		}
		if invitation.Email != "" && invitation.Email != email {
			return ErrEmailMismatch
		}
		return invitation.consume(tx, u.ID, now)
	})
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// EnsureSuperAdmin creates the bootstrap SUPERADMIN account if one is
// configured and doesn't exist yet
func EnsureSuperAdmin() {
	if config.SUPERADMIN_EMAIL == "" || config.SUPERADMIN_PASSWORD == "" {
		return
	}
	var count int64
	if db.Instance.Model(&User{}).Where("email = ?", config.SUPERADMIN_EMAIL).Count(&count).Error != nil || count > 0 {
		return
	}
	user := User{
		Name:  config.SUPERADMIN_NAME,
		Email: config.SUPERADMIN_EMAIL,
		Role:  RoleSuperAdmin,
	}
	if err := user.SetPassword(config.SUPERADMIN_PASSWORD); err != nil {
		log.Printf("Superadmin bootstrap failed: %v", err)
		return
	}
	if err := db.Instance.Create(&user).Error; err != nil {
		log.Printf("Superadmin bootstrap failed: %v", err)
		return
	}
	log.Printf("Superadmin account created: %s", user.Email)
}
