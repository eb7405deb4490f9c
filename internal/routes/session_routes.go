package routes

import (
	"github.com/Larry-007-del/attendance-system-master/internal/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes wires the instructor-facing session lifecycle routes.
func RegisterSessionRoutes(api *gin.RouterGroup, sc *controllers.SessionController, authMiddleware, instructorOnly gin.HandlerFunc) {
	sessions := api.Group("/sessions")
	sessions.Use(authMiddleware, instructorOnly)
	{
		sessions.GET("", sc.ListSessions)
		sessions.POST("", sc.OpenSession)
		sessions.POST("/:id/close", sc.CloseSession)
		sessions.POST("/:id/tokens", sc.IssueToken)
		sessions.GET("/:id/attendance", sc.ListAttendance)
		sessions.GET("/:id/report", sc.Report)
		sessions.GET("/:id/report/archive", sc.ArchivedReport)
	}

	tokens := api.Group("/tokens")
	tokens.Use(authMiddleware, instructorOnly)
	{
		tokens.POST("/:tokenId/revoke", sc.RevokeToken)
	}
}
