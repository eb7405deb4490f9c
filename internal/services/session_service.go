package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/clock"
	"github.com/Larry-007-del/attendance-system-master/internal/config"
	"github.com/Larry-007-del/attendance-system-master/internal/geo"
	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/Larry-007-del/attendance-system-master/internal/repositories"
	"github.com/google/uuid"
)

var (
	ErrInvalidConfig   = errors.New("invalid session configuration")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionNotOpen  = errors.New("session not open")
)

// SessionService owns the attendance session lifecycle: opening and closing
// sessions, issuing tokens against open sessions and revoking leaked tokens.
type SessionService struct {
	sessions repositories.SessionRepository
	tokens   repositories.TokenRepository
	cfg      *config.Config
	now      clock.Clock
}

func NewSessionService(sessions repositories.SessionRepository, tokens repositories.TokenRepository, cfg *config.Config) *SessionService {
	return &SessionService{
		sessions: sessions,
		tokens:   tokens,
		cfg:      cfg,
		now:      clock.System,
	}
}

// NewSessionServiceWithClock allows injecting a clock for tests.
func NewSessionServiceWithClock(sessions repositories.SessionRepository, tokens repositories.TokenRepository, cfg *config.Config, now clock.Clock) *SessionService {
	svc := NewSessionService(sessions, tokens, cfg)
	svc.now = now
	return svc
}

// OpenSession creates a new open session anchored at the instructor's
// location. Invalid parameters are rejected outright, never clamped.
func (s *SessionService) OpenSession(owner string, radiusMeters, latitude, longitude float64, duration time.Duration) (*models.Session, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: missing owner", ErrInvalidConfig)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", ErrInvalidConfig)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}
	maxDuration, err := s.cfg.Attendance.GetMaxSessionDuration()
	if err != nil {
		return nil, fmt.Errorf("invalid max_session_duration: %w", err)
	}
	if maxDuration > 0 && duration > maxDuration {
		return nil, fmt.Errorf("%w: duration exceeds maximum of %s", ErrInvalidConfig, maxDuration)
	}
	if !geo.ValidCoordinate(latitude, longitude) {
		return nil, fmt.Errorf("%w: invalid origin coordinates", ErrInvalidConfig)
	}

	now := s.now()
	session := &models.Session{
		ID:              uuid.New(),
		Owner:           owner,
		OpensAt:         now,
		ClosesAt:        now.Add(duration),
		RadiusMeters:    radiusMeters,
		OriginLatitude:  latitude,
		OriginLongitude: longitude,
		Status:          models.SessionOpen,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the session or ErrSessionNotFound.
func (s *SessionService) GetSession(id uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ListSessions returns the sessions owned by an instructor, newest first.
func (s *SessionService) ListSessions(owner string, limit, offset int) ([]models.Session, int64, error) {
	return s.sessions.GetByOwner(owner, limit, offset)
}

// IssueToken creates a fresh token bound to an open session. With rotation
// enabled the token expires after the configured TTL; either way the expiry
// never exceeds the session close.
func (s *SessionService) IssueToken(sessionID uuid.UUID) (*models.Token, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if !session.IsOpen(now) {
		return nil, ErrSessionNotOpen
	}

	expiresAt := session.ClosesAt
	if s.cfg.Attendance.RotationEnabled {
		ttl, err := s.cfg.Attendance.GetTokenTTL()
		if err != nil {
			return nil, fmt.Errorf("invalid token_ttl: %w", err)
		}
		if ttl > 0 && now.Add(ttl).Before(expiresAt) {
			expiresAt = now.Add(ttl)
		}
	}

	id, err := models.GenerateTokenID()
	if err != nil {
		return nil, err
	}

	token := &models.Token{
		ID:        id,
		SessionID: sessionID,
		Payload:   BuildTokenPayload(id, s.cfg.Attendance.PayloadSecret),
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		Status:    models.TokenActive,
	}
	if err := s.tokens.Create(token); err != nil {
		return nil, err
	}
	return token, nil
}

// CloseSession stops token issuance for the session. Already-issued tokens
// keep their own expiry; closing is idempotent.
func (s *SessionService) CloseSession(sessionID uuid.UUID) error {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.Status == models.SessionClosed {
		return nil
	}
	session.Status = models.SessionClosed
	return s.sessions.Update(session)
}

// RevokeToken invalidates a token that is suspected leaked. Revoking an
// already-revoked token is a no-op.
func (s *SessionService) RevokeToken(tokenID string) error {
	token, err := s.tokens.GetByID(tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenNotFound
	}
	if token.Status == models.TokenRevoked {
		return nil
	}
	return s.tokens.UpdateStatus(tokenID, models.TokenRevoked)
}
