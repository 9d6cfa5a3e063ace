package main

import (
	"log"
	"strings"
	"time"

	"coparent/auth"
	"coparent/config"
	"coparent/db"
	"coparent/handlers"
	"coparent/models"
	"coparent/storage"
	"coparent/utils"
	"coparent/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	models.EnsureSuperAdmin()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.DebugResponseLogger)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/document/fetch"})))
	}
	router.Use(utils.CacheControl(0)) // no caching by default

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/register", handlers.UserRegister)
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.GET("/user/status", handlers.UserGetStatus)
	// Family handlers
	authRouter.POST("/family/create", handlers.FamilyCreate)
	authRouter.GET("/family/list", handlers.FamilyList)
	// Invitation handlers
	authRouter.GET("/invitation/list", handlers.InvitationList)
	authRouter.POST("/invitation/create", handlers.InvitationCreate)
	authRouter.POST("/invitation/link", handlers.InvitationCreateLink)
	router.GET("/invitation/validate", handlers.InvitationValidate)
	authRouter.POST("/invitation/resolve", handlers.InvitationResolve)
	// Event handlers
	authRouter.GET("/event/list", handlers.EventList)
	authRouter.POST("/event/create", handlers.EventCreate)
	authRouter.POST("/event/save", handlers.EventSave)
	authRouter.POST("/event/delete", handlers.EventDelete)
	// Expense handlers
	authRouter.GET("/expense/list", handlers.ExpenseList)
	authRouter.POST("/expense/create", handlers.ExpenseCreate)
	authRouter.POST("/expense/delete", handlers.ExpenseDelete)
	// Document handlers
	authRouter.GET("/document/list", handlers.DocumentList)
	authRouter.POST("/document/upload", handlers.DocumentUpload)
	authRouter.GET("/document/fetch", handlers.DocumentFetch)
	authRouter.POST("/document/delete", handlers.DocumentDelete)
	// Marketplace is public
	router.GET("/marketplace/list", handlers.MarketplaceList)
	// Household dashboard
	authRouter.GET("/dashboard/stats", handlers.DashboardStats)
	// Admin CRUD gateway
	authRouter.GET("/admin/:resource", handlers.AdminList, models.RoleAdmin, models.RoleSuperAdmin)
	authRouter.POST("/admin/:resource", handlers.AdminCreate, models.RoleAdmin, models.RoleSuperAdmin)
	authRouter.PUT("/admin/:resource/:id", handlers.AdminUpdate, models.RoleAdmin, models.RoleSuperAdmin)
	authRouter.DELETE("/admin/:resource/:id", handlers.AdminDelete, models.RoleAdmin, models.RoleSuperAdmin)

	/*
	 *	Web interface
	 */
	router.GET("/registro", web.InviteView)
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
