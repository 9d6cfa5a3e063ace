package handlers

import (
	"errors"
	"net/http"

	"coparent/auth"
	"coparent/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserRegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	InvitationToken string `json:"invitation_token"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRegister creates the account and, when a pending invitation token is
// supplied, joins the new user to the inviting family in the same operation
func UserRegister(c *gin.Context) {
	req := UserRegisterRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	user, err := models.UserRegister(req.Name, req.Email, req.Password, req.InvitationToken)
	if errors.Is(err, models.ErrExpired) {
		c.JSON(http.StatusGone, Response{Error: err.Error(), Code: "INVITATION_EXPIRED"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func UserLogin(c *gin.Context) {
	req := UserLoginRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	user, success := models.UserLogin(req.Email, req.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, Response{Error: "invalid credentials", Code: "UNAUTHORIZED"})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(&user)
	c.JSON(http.StatusOK, user)
}

func UserLogout(c *gin.Context, user *models.User) {
	session := auth.LoadSession(c)
	session.LogoutUser()
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

// UserGetStatus reports the session state - clients derive all login state
// from here instead of caching it locally
func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"families": models.FamilyIDsForUser(user.ID),
	})
}
