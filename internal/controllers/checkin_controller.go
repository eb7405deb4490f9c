package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Larry-007-del/attendance-system-master/internal/config"
	"github.com/Larry-007-del/attendance-system-master/internal/middleware"
	"github.com/Larry-007-del/attendance-system-master/internal/services"
	"github.com/gin-gonic/gin"
)

type CheckInController struct {
	checkInService *services.CheckInService
	reportService  *services.ReportService
	cfg            *config.Config
}

func NewCheckInController(checkInService *services.CheckInService, reportService *services.ReportService, cfg *config.Config) *CheckInController {
	return &CheckInController{
		checkInService: checkInService,
		reportService:  reportService,
		cfg:            cfg,
	}
}

type checkInRequest struct {
	TokenID   string   `json:"token_id"`
	Payload   string   `json:"payload"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// CheckIn verifies a scanned token against expiry, geofence and duplicate-use
// rules. Unknown and expired tokens get the same response body so callers
// cannot enumerate which token ids exist.
// POST /checkin
func (cc *CheckInController) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attendee := middleware.Identity(c)

	tokenID := req.TokenID
	if tokenID == "" {
		parsed, err := services.ParseTokenPayload(req.Payload, cc.cfg.Attendance.PayloadSecret)
		if err != nil {
			log.Printf("checkin audit: malformed payload from attendee %q", attendee)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}
		tokenID = parsed
	}

	record, err := cc.checkInService.Verify(&services.CheckInInput{
		TokenID:   tokenID,
		Attendee:  attendee,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenNotFound), errors.Is(err, services.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		case errors.Is(err, services.ErrOutOfRange):
			c.JSON(http.StatusForbidden, gin.H{"error": "Location is out of range"})
		case errors.Is(err, services.ErrDuplicateCheckIn):
			// idempotent outcome, not a failure
			c.JSON(http.StatusOK, gin.H{"message": "Attendance already recorded"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attendance marked successfully",
		"record":  record,
	})
}

// History returns the caller's accepted check-ins, newest first
// GET /attendance/history
func (cc *CheckInController) History(c *gin.Context) {
	attendee := middleware.Identity(c)
	limit, offset := pagination(c)

	records, total, err := cc.reportService.History(attendee, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"records": records,
	})
}
