package routes

import (
	"github.com/Larry-007-del/attendance-system-master/internal/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterCheckInRoutes wires the attendee-facing check-in routes.
func RegisterCheckInRoutes(api *gin.RouterGroup, cc *controllers.CheckInController, authMiddleware gin.HandlerFunc) {
	checkin := api.Group("/checkin")
	checkin.Use(authMiddleware)
	{
		checkin.POST("", cc.CheckIn)
	}

	attendance := api.Group("/attendance")
	attendance.Use(authMiddleware)
	{
		attendance.GET("/history", cc.History)
	}
}
