package auth

import (
	"net/http"

	"coparent/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated and has one of the required roles
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading.
// With no roles given, any authenticated user passes; otherwise the user's
// role must be one of those listed.
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, roles []string) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied", "code": "UNAUTHORIZED"})
		return
	}
	if len(roles) > 0 && !user.HasRole(roles...) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied", "code": "FORBIDDEN"})
		return
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc, roles ...string) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc, roles ...string) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, roles ...string) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc, roles ...string) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler, roles)
	})
}
