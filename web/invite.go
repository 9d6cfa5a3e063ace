package web

import (
	"errors"
	"net/http"

	"coparent/models"

	"github.com/gin-gonic/gin"
)

// InviteView is the landing page behind the emailed invitation link:
// <baseUrl>/registro?token=<token>
func InviteView(c *gin.Context) {
	token := c.Query("token")
	details, err := models.InvitationValidate(token)
	if errors.Is(err, models.ErrExpired) {
		c.HTML(http.StatusGone, "registro.tmpl", gin.H{
			"Error": "Esta invitación ha expirado",
		})
		return
	}
	if err != nil {
		c.HTML(http.StatusNotFound, "registro.tmpl", gin.H{
			"Error": "Invitación no encontrada o ya utilizada",
		})
		return
	}
	c.HTML(http.StatusOK, "registro.tmpl", gin.H{
		"Token":       token,
		"FamilyName":  details.FamilyName,
		"InviterName": details.InviterName,
		"Email":       details.Email,
	})
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
