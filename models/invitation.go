package models

import (
	"errors"
	"time"

	"coparent/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

const (
	InvitationActionAccept = "ACCEPT"
	InvitationActionReject = "REJECT"
)

// Invitations are valid for 7 days
const invitationTTL = 7 * 24 * time.Hour

// Invitation is a token-bound offer to join a family with a given role.
// Invitations are never deleted: they move from PENDING to exactly one of
// ACCEPTED, REJECTED or EXPIRED and stay there as an audit trail.
type Invitation struct {
	ID          uint64           `gorm:"primaryKey" json:"id"`
	CreatedAt   int64            `json:"created_at"`
	UpdatedAt   int64            `json:"-"`
	Token       string           `gorm:"type:varchar(120);index:uniq_invitation_token,unique" json:"token"`
	FamilyID    uint64           `json:"family_id"`
	Family      Family           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Email       string           `gorm:"type:varchar(150)" json:"email,omitempty"` // empty for shareable link invitations
	Role        string           `gorm:"type:varchar(30)" json:"role"`
	Status      InvitationStatus `gorm:"type:varchar(20);index" json:"status"`
	CreatedByID uint64           `json:"created_by_id"`
	CreatedBy   User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ExpiresAt   int64            `json:"expires_at"`
	AcceptedAt  *int64           `json:"accepted_at,omitempty"`
}

func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return now.Unix() > i.ExpiresAt
}

// InvitationDetails is what a holder of a valid token gets to see
type InvitationDetails struct {
	ID          uint64 `json:"id"`
	FamilyID    uint64 `json:"family_id"`
	FamilyName  string `json:"family_name"`
	InviterName string `json:"inviter_name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
}

// InvitationIssue creates a PENDING invitation for the given family.
// The recipient may be empty, producing a bare shareable-link invitation.
// The caller is responsible for dispatching the notification.
func InvitationIssue(requester *User, familyID uint64, recipient, role string) (Invitation, error) {
	if !requester.IsMemberOf(familyID) {
		return Invitation{}, ErrForbidden
	}
	if recipient != "" {
		var count int64
		err := db.Instance.Model(&Invitation{}).
			Where("family_id = ? AND email = ? AND status = ?", familyID, recipient, InvitationPending).
			Count(&count).Error
		if err != nil {
			return Invitation{}, err
		}
		if count > 0 {
			return Invitation{}, ErrConflict
		}
	}
	var family Family
	err := db.Instance.First(&family, familyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Invitation{}, ErrNotFound
	}
	if err != nil {
		return Invitation{}, err
	}
	if role == "" {
		role = RoleParent
	}
	invitation := Invitation{
		Token:       uuid.NewString(),
		FamilyID:    familyID,
		Email:       recipient,
		Role:        role,
		Status:      InvitationPending,
		CreatedByID: requester.ID,
		ExpiresAt:   time.Now().Add(invitationTTL).Unix(),
	}
	if err := db.Instance.Create(&invitation).Error; err != nil {
		return Invitation{}, err
	}
	invitation.Family = family
	return invitation, nil
}

// InvitationValidate resolves a token to its details. Expired invitations
// fail with ErrExpired but the read never mutates status - only an actual
// resolve attempt moves an overdue invitation to EXPIRED.
func InvitationValidate(token string) (InvitationDetails, error) {
	var invitation Invitation
	err := db.Instance.
		Preload("Family").
		Preload("CreatedBy").
		Where("token = ? AND status = ?", token, InvitationPending).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return InvitationDetails{}, ErrNotFound
	}
	if err != nil {
		return InvitationDetails{}, err
	}
	if invitation.IsExpiredAt(time.Now()) {
		return InvitationDetails{}, ErrExpired
	}
	return InvitationDetails{
		ID:          invitation.ID,
		FamilyID:    invitation.FamilyID,
		FamilyName:  invitation.Family.Name,
		InviterName: invitation.CreatedBy.Name,
		Email:       invitation.Email,
		Role:        invitation.Role,
	}, nil
}

// InvitationResolve accepts or rejects a PENDING invitation on behalf of the
// given user. All status transitions are conditional updates guarded by
// "status = PENDING", so of two concurrent attempts exactly one wins and the
// other observes ErrAlreadyProcessed.
func InvitationResolve(invitationID uint64, requester *User, action string) error {
	var invitation Invitation
	err := db.Instance.First(&invitation, invitationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if invitation.Email != requester.Email {
		return ErrForbidden
	}
	if invitation.Status != InvitationPending {
		return ErrAlreadyProcessed
	}
	now := time.Now()
	if invitation.IsExpiredAt(now) {
		res := db.Instance.Model(&Invitation{}).
			Where("id = ? AND status = ?", invitationID, InvitationPending).
			Update("status", InvitationExpired)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		return ErrExpired
	}
	switch action {
	case InvitationActionAccept:
		return db.Instance.Transaction(func(tx *gorm.DB) error {
			return invitation.consume(tx, requester.ID, now)
		})
	case InvitationActionReject:
		res := db.Instance.Model(&Invitation{}).
			Where("id = ? AND status = ?", invitationID, InvitationPending).
			Update("status", InvitationRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		return nil
	}
	return ErrInvalidAction
}

// consume marks the invitation ACCEPTED and creates the membership, inside
// the caller's transaction. The conditional update keeps concurrent
// consumers from both winning.
func (i *Invitation) consume(tx *gorm.DB, userID uint64, now time.Time) error {
	res := tx.Model(&Invitation{}).
		Where("id = ? AND status = ?", i.ID, InvitationPending).
		Updates(map[string]interface{}{
			"status":      InvitationAccepted,
			"accepted_at": now.Unix(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}
	member := FamilyMember{
		FamilyID: i.FamilyID,
		UserID:   userID,
		Role:     i.Role,
	}
	err := tx.Create(&member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already a member of this family, nothing to do
		return nil
	}
	return err
}

// InvitationsSentBy returns all invitations the user has created, newest first
func InvitationsSentBy(userID uint64) (result []Invitation, err error) {
	err = db.Instance.
		Preload("Family").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// InvitationsReceivedBy returns the PENDING invitations addressed to the email
func InvitationsReceivedBy(email string) (result []Invitation, err error) {
	err = db.Instance.
		Preload("Family").
		Preload("CreatedBy").
		Where("email = ? AND status = ?", email, InvitationPending).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}
