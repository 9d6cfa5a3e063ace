package handlers

import (
	"log"
	"net/http"

	"coparent/config"
	"coparent/models"
	"coparent/notify"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InvitationCreateRequest struct {
	FamilyID  uint64 `json:"family_id" binding:"required"`
	Recipient string `json:"recipient" binding:"required"` // email address or phone number
	Role      string `json:"role"`
}

type InvitationLinkRequest struct {
	FamilyID uint64 `json:"family_id" binding:"required"`
	Role     string `json:"role"`
}

type InvitationResolveRequest struct {
	InvitationID uint64 `json:"invitation_id" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=ACCEPT REJECT"`
}

func inviteURL(token string) string {
	return config.BASE_URL + "/registro?token=" + token
}

// InvitationCreate issues an invitation and dispatches the notification.
// Dispatch is best-effort: a failed send is logged but the invitation stands.
func InvitationCreate(c *gin.Context, user *models.User) {
	req := InvitationCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	invitation, err := models.InvitationIssue(user, req.FamilyID, req.Recipient, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	message := notify.Invitation{
		Recipient:   req.Recipient,
		FamilyName:  invitation.Family.Name,
		InviterName: user.Name,
		URL:         inviteURL(invitation.Token),
	}
	if err = message.Send(); err != nil {
		log.Printf("Invitation %d dispatch failed: %v", invitation.ID, err)
	}
	c.JSON(http.StatusOK, invitation)
}

// InvitationCreateLink issues a bare invitation and returns the token so the
// caller can share the URL out of band
func InvitationCreateLink(c *gin.Context, user *models.User) {
	req := InvitationLinkRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	invitation, err := models.InvitationIssue(user, req.FamilyID, "", req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": invitation.Token, "url": inviteURL(invitation.Token)})
}

// InvitationValidate is the public token check behind the registration page
func InvitationValidate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, Response{Error: "token is required", Code: "VALIDATION_ERROR"})
		return
	}
	details, err := models.InvitationValidate(token)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func InvitationResolve(c *gin.Context, user *models.User) {
	req := InvitationResolveRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	if err := models.InvitationResolve(req.InvitationID, user, req.Action); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

// InvitationList returns invitations sent by the caller and the pending ones
// addressed to their email
func InvitationList(c *gin.Context, user *models.User) {
	sent, err := models.InvitationsSentBy(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	received, err := models.InvitationsReceivedBy(user.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "received": received})
}
