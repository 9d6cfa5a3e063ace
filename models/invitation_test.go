package models

import (
	"errors"
	"testing"
	"time"

	"coparent/db"

	"gorm.io/gorm"
)

func TestInvitationIssueAndValidate(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")

	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if invitation.Token == "" || invitation.Status != InvitationPending {
		t.Fatalf("unexpected invitation: %+v", invitation)
	}
	wantExpiry := time.Now().Add(7 * 24 * time.Hour).Unix()
	if invitation.ExpiresAt < wantExpiry-5 || invitation.ExpiresAt > wantExpiry+5 {
		t.Errorf("expiry = %d, want about %d", invitation.ExpiresAt, wantExpiry)
	}

	// Validation is idempotent and never mutates
	for i := 0; i < 2; i++ {
		details, err := InvitationValidate(invitation.Token)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if details.FamilyName != "García" || details.InviterName != "Ana" ||
			details.Email != "a@x.com" || details.Role != RoleParent {
			t.Errorf("unexpected details: %+v", details)
		}
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationPending {
		t.Errorf("status = %s after validate, want PENDING", got.Status)
	}
}

func TestInvitationIssueRequiresMembership(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	outsider := createTestUser(t, "Eve", "eve@x.com")

	if _, err := InvitationIssue(&outsider, family.ID, "a@x.com", RoleParent); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestInvitationIssueDuplicatePending(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")

	if _, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	if _, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
	// Link invitations have no recipient, so several may coexist
	if _, err := InvitationIssue(&inviter, family.ID, "", RoleParent); err != nil {
		t.Errorf("first link issue: %v", err)
	}
	if _, err := InvitationIssue(&inviter, family.ID, "", RoleParent); err != nil {
		t.Errorf("second link issue: %v", err)
	}
}

func TestInvitationValidateUnknownToken(t *testing.T) {
	setupTestDB(t)
	if _, err := InvitationValidate("no-such-token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInvitationValidateExpiredDoesNotMutate(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expireInvitation(t, invitation.ID)

	if _, err = InvitationValidate(invitation.Token); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationPending {
		t.Errorf("status = %s after expired validate, want PENDING", got.Status)
	}
}

func TestInvitationResolveAccept(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err = InvitationResolve(invitation.ID, &invitee, InvitationActionAccept); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got := reloadInvitation(t, invitation.ID)
	if got.Status != InvitationAccepted {
		t.Errorf("status = %s, want ACCEPTED", got.Status)
	}
	if got.AcceptedAt == nil {
		t.Error("accepted_at not set")
	}
	if membershipCount(t, invitee.ID, family.ID) != 1 {
		t.Error("membership not created")
	}
	var member FamilyMember
	err = db.Instance.Where("user_id = ? AND family_id = ?", invitee.ID, family.ID).First(&member).Error
	if err != nil {
		t.Fatalf("loading membership: %v", err)
	}
	if member.Role != RoleParent {
		t.Errorf("membership role = %s, want PARENT", member.Role)
	}
}

func TestInvitationResolveReject(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err = InvitationResolve(invitation.ID, &invitee, InvitationActionReject); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationRejected {
		t.Errorf("status = %s, want REJECTED", got.Status)
	}
	if membershipCount(t, invitee.ID, family.ID) != 0 {
		t.Error("membership created on reject")
	}
}

func TestInvitationResolveEmailMismatch(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	stranger := createTestUser(t, "Eve", "eve@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err = InvitationResolve(invitation.ID, &stranger, InvitationActionAccept); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
}

func TestInvitationResolveTerminalStatesAreFinal(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err = InvitationResolve(invitation.ID, &invitee, InvitationActionAccept); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	for _, action := range []string{InvitationActionAccept, InvitationActionReject} {
		if err = InvitationResolve(invitation.ID, &invitee, action); !errors.Is(err, ErrAlreadyProcessed) {
			t.Errorf("resolve %s on accepted invitation: err = %v, want ErrAlreadyProcessed", action, err)
		}
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationAccepted {
		t.Errorf("status = %s, want ACCEPTED", got.Status)
	}
}

func TestInvitationResolveExpired(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expireInvitation(t, invitation.ID)

	// Resolving past expiry fails and is the one place the status flips to EXPIRED
	if err = InvitationResolve(invitation.ID, &invitee, InvitationActionAccept); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationExpired {
		t.Errorf("status = %s, want EXPIRED", got.Status)
	}
	if membershipCount(t, invitee.ID, family.ID) != 0 {
		t.Error("membership created for expired invitation")
	}
	// EXPIRED is terminal
	if err = InvitationResolve(invitation.ID, &invitee, InvitationActionAccept); !errors.Is(err, ErrAlreadyProcessed) {
		t.Errorf("err = %v, want ErrAlreadyProcessed", err)
	}
}

func TestInvitationResolveUnknownAction(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err = InvitationResolve(invitation.ID, &invitee, "MAYBE"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("err = %v, want ErrInvalidAction", err)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
}

// A resolver holding a stale PENDING read must lose once the row has moved
// on: the "status = PENDING" guard, not the earlier read, decides the winner.
func TestInvitationConsumeStaleReadLoses(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The row flips underneath the in-memory copy, which still says PENDING
	err = db.Instance.Model(&Invitation{}).
		Where("id = ?", invitation.ID).
		Update("status", InvitationRejected).Error
	if err != nil {
		t.Fatalf("flipping status: %v", err)
	}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		return invitation.consume(tx, invitee.ID, time.Now())
	})
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("err = %v, want ErrAlreadyProcessed", err)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationRejected {
		t.Errorf("status = %s, want REJECTED", got.Status)
	}
	if membershipCount(t, invitee.ID, family.ID) != 0 {
		t.Error("losing resolver still created a membership")
	}
}

func TestInvitationResolveSingleWinner(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	invitee := createTestUser(t, "Alba", "a@x.com")
	invitation, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errs <- InvitationResolve(invitation.ID, &invitee, InvitationActionAccept)
		}()
	}
	var won, lost int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			won++
		case errors.Is(err, ErrAlreadyProcessed):
			lost++
		default:
			t.Fatalf("unexpected resolve error: %v", err)
		}
	}
	if won != 1 || lost != 1 {
		t.Errorf("won = %d, lost = %d, want exactly one of each", won, lost)
	}
	if got := reloadInvitation(t, invitation.ID); got.Status != InvitationAccepted {
		t.Errorf("status = %s, want ACCEPTED", got.Status)
	}
	if membershipCount(t, invitee.ID, family.ID) != 1 {
		t.Error("winner did not create exactly one membership")
	}
}

func TestInvitationLists(t *testing.T) {
	setupTestDB(t)
	inviter := createTestUser(t, "Ana", "ana@x.com")
	family := createTestFamily(t, &inviter, "García")
	if _, err := InvitationIssue(&inviter, family.ID, "a@x.com", RoleParent); err != nil {
		t.Fatalf("issue: %v", err)
	}

	sent, err := InvitationsSentBy(inviter.ID)
	if err != nil || len(sent) != 1 {
		t.Errorf("sent = %v (err %v), want 1 invitation", sent, err)
	}
	received, err := InvitationsReceivedBy("a@x.com")
	if err != nil || len(received) != 1 {
		t.Errorf("received = %v (err %v), want 1 invitation", received, err)
	}
	if len(received) == 1 && received[0].Family.Name != "García" {
		t.Errorf("family not preloaded: %+v", received[0])
	}
}
