package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/middleware"
	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/Larry-007-del/attendance-system-master/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionController struct {
	sessionService *services.SessionService
	reportService  *services.ReportService
}

func NewSessionController(sessionService *services.SessionService, reportService *services.ReportService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		reportService:  reportService,
	}
}

type openSessionRequest struct {
	RadiusMeters    float64  `json:"radius_meters" binding:"required"`
	Latitude        *float64 `json:"latitude" binding:"required"`
	Longitude       *float64 `json:"longitude" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required"`
}

// OpenSession opens an attendance session at the instructor's location
// POST /sessions
func (sc *SessionController) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := middleware.Identity(c)
	duration := time.Duration(req.DurationMinutes) * time.Minute

	session, err := sc.sessionService.OpenSession(owner, req.RadiusMeters, *req.Latitude, *req.Longitude, duration)
	if err != nil {
		if errors.Is(err, services.ErrInvalidConfig) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session opened successfully",
		"session": session,
	})
}

// CloseSession stops token issuance for a session
// POST /sessions/:id/close
func (sc *SessionController) CloseSession(c *gin.Context) {
	session, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	if err := sc.sessionService.CloseSession(session.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed successfully"})
}

// IssueToken issues (or rotates) the session's scannable token
// POST /sessions/:id/tokens
func (sc *SessionController) IssueToken(c *gin.Context) {
	session, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	token, err := sc.sessionService.IssueToken(session.ID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotOpen) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session is not open"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token_id":   token.ID,
		"payload":    token.Payload,
		"issued_at":  token.IssuedAt,
		"expires_at": token.ExpiresAt,
	})
}

// RevokeToken invalidates a token suspected leaked; idempotent
// POST /tokens/:tokenId/revoke
func (sc *SessionController) RevokeToken(c *gin.Context) {
	tokenID := c.Param("tokenId")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token id is required"})
		return
	}

	if err := sc.sessionService.RevokeToken(tokenID); err != nil {
		if errors.Is(err, services.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}

// ListAttendance returns the attendance records of a session
// GET /sessions/:id/attendance
func (sc *SessionController) ListAttendance(c *gin.Context) {
	session, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	records, err := sc.reportService.ListSession(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"count":      len(records),
		"records":    records,
	})
}

// Report streams a CSV attendance report for a session
// GET /sessions/:id/report
func (sc *SessionController) Report(c *gin.Context) {
	session, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	report, err := sc.reportService.ExportCSV(c.Request.Context(), session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
		return
	}

	fileName := fmt.Sprintf("attendance_%s.csv", session.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv", report)
}

// ArchivedReport serves the last archived CSV export without re-rendering it
// GET /sessions/:id/report/archive
func (sc *SessionController) ArchivedReport(c *gin.Context) {
	session, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	report, err := sc.reportService.ArchivedCSV(c.Request.Context(), session.ID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotArchived) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No archived report for this session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load archived report"})
		return
	}

	fileName := fmt.Sprintf("attendance_%s.csv", session.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv", report)
}

// ListSessions returns the caller's sessions
// GET /sessions
func (sc *SessionController) ListSessions(c *gin.Context) {
	owner := middleware.Identity(c)
	limit, offset := pagination(c)

	sessions, total, err := sc.sessionService.ListSessions(owner, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"sessions": sessions,
	})
}

// ownedSession parses the :id parameter and enforces that the caller owns the
// session. It writes the error response itself when the check fails.
func (sc *SessionController) ownedSession(c *gin.Context) (*models.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}

	session, err := sc.sessionService.GetSession(id)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return nil, false
	}
	if session.Owner != middleware.Identity(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the session owner"})
		return nil, false
	}
	return session, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
