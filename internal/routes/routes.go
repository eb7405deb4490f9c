package routes

import (
	"github.com/Larry-007-del/attendance-system-master/internal/controllers"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all application routes.
func SetupRoutes(
	router *gin.Engine,
	sessionController *controllers.SessionController,
	checkInController *controllers.CheckInController,
	authMiddleware gin.HandlerFunc,
	instructorOnly gin.HandlerFunc,
) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/")

	// Session lifecycle routes: /sessions/*, /tokens/*
	RegisterSessionRoutes(api, sessionController, authMiddleware, instructorOnly)

	// Check-in routes: /checkin, /attendance/*
	RegisterCheckInRoutes(api, checkInController, authMiddleware)
}
