package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/krosec/sec-guard/internal/http/middleware"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/auth/login", handler.login)

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/contracts", handler.listContracts)
		api.GET("/contracts/:id", handler.getContract)
		api.GET("/contracts/:id/validate", handler.validateContract)
		api.GET("/contracts/:id/schedules", handler.listContractSchedules)
		api.GET("/contracts/:id/objects", handler.listGuardObjects)
		api.GET("/contracts/:id/export/pdf", handler.exportContractPDF)
		api.GET("/clients/:id/contracts", handler.listClientContracts)
		api.GET("/clients/:id/notifications", handler.listClientNotifications)
		api.GET("/clients/:id/notifications/unread-count", handler.unreadNotificationCount)
		api.POST("/notifications/:id/read", handler.markNotificationRead)
		api.POST("/clients/:id/notifications/read-all", handler.markAllNotificationsRead)
		api.GET("/employees/security", handler.listSecurityEmployees)
	}

	admin := api.Group("/")
	admin.Use(middleware.AdminOnly())
	{
		admin.POST("/contracts", handler.createContract)
		admin.PUT("/contracts/:id", handler.updateContract)
		admin.DELETE("/contracts/:id", handler.deleteContract)
		admin.POST("/contracts/:id/approve", handler.approveContract)
		admin.POST("/contracts/:id/objects", handler.createGuardObject)
		admin.DELETE("/notifications/:id", handler.deleteNotification)
		admin.POST("/reports/revenue/export", handler.exportRevenueReport)
	}

	return router
}
