package services

import (
	"errors"
	"log"

	"github.com/Larry-007-del/attendance-system-master/internal/clock"
	"github.com/Larry-007-del/attendance-system-master/internal/geo"
	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/Larry-007-del/attendance-system-master/internal/repositories"
	"github.com/google/uuid"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenExpired     = errors.New("token invalid or expired")
	ErrOutOfRange       = errors.New("location out of range")
	ErrDuplicateCheckIn = errors.New("attendance already recorded")
)

// CheckInInput is the ephemeral input to verification; it is never persisted.
type CheckInInput struct {
	TokenID   string
	Attendee  string
	Latitude  float64
	Longitude float64
}

// CheckInService verifies check-in attempts against expiry, geofence and
// duplicate-use rules and records accepted ones.
type CheckInService struct {
	tokens   repositories.TokenRepository
	sessions repositories.SessionRepository
	now      clock.Clock
}

func NewCheckInService(tokens repositories.TokenRepository, sessions repositories.SessionRepository) *CheckInService {
	return &CheckInService{
		tokens:   tokens,
		sessions: sessions,
		now:      clock.System,
	}
}

// NewCheckInServiceWithClock allows injecting a clock for tests.
func NewCheckInServiceWithClock(tokens repositories.TokenRepository, sessions repositories.SessionRepository, now clock.Clock) *CheckInService {
	svc := NewCheckInService(tokens, sessions)
	svc.now = now
	return svc
}

// Verify runs the check-in pipeline; the first failing step short-circuits.
// Lookup, expiry and geofence checks are read-only and retryable; the only
// mutation is the consume step, which persists the attendance record in the
// same atomic operation.
func (s *CheckInService) Verify(in *CheckInInput) (*models.AttendanceRecord, error) {
	token, err := s.tokens.GetByID(in.TokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		// Unknown ids may be probing attempts; keep them visible for audit.
		log.Printf("checkin audit: unknown token id %q from attendee %q", in.TokenID, in.Attendee)
		return nil, ErrTokenNotFound
	}

	now := s.now()
	if !token.IsActive(now) {
		return nil, ErrTokenExpired
	}

	session, err := s.sessions.GetByID(token.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		log.Printf("checkin audit: token %q references missing session %s", token.ID, token.SessionID)
		return nil, ErrTokenNotFound
	}

	distance, inRange := geo.WithinRadius(
		session.OriginLatitude, session.OriginLongitude,
		in.Latitude, in.Longitude,
		session.RadiusMeters,
	)
	if !inRange {
		return nil, ErrOutOfRange
	}

	record := &models.AttendanceRecord{
		ID:             uuid.New(),
		SessionID:      session.ID,
		Attendee:       in.Attendee,
		TokenID:        token.ID,
		VerifiedAt:     now,
		DistanceMeters: distance,
	}
	result, err := s.tokens.TryConsume(record, now)
	if err != nil {
		return nil, err
	}
	switch result {
	case repositories.ConsumeDuplicate:
		return nil, ErrDuplicateCheckIn
	case repositories.ConsumeInvalid:
		// The token was revoked or expired between the read above and the
		// consume; the later state wins.
		return nil, ErrTokenExpired
	}
	return record, nil
}
