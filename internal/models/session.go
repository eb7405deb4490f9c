package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// Session is a time-bounded attendance session anchored to the instructor's
// physical location. Tokens are issued against it while it is open.
type Session struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Owner           string        `gorm:"type:text;not null;index" json:"owner"`
	OpensAt         time.Time     `gorm:"type:timestamptz;not null" json:"opensAt"`
	ClosesAt        time.Time     `gorm:"type:timestamptz;not null;index" json:"closesAt"`
	RadiusMeters    float64       `gorm:"not null" json:"radiusMeters"`
	OriginLatitude  float64       `gorm:"not null" json:"originLatitude"`
	OriginLongitude float64       `gorm:"not null" json:"originLongitude"`
	Status          SessionStatus `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedAt       time.Time     `gorm:"type:timestamptz;not null;default:now()" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"type:timestamptz;not null;default:now()" json:"updatedAt"`
}

// IsOpen reports whether new tokens may still be issued. Closing a session
// stops issuance only; already-issued tokens are governed by their own expiry.
func (s *Session) IsOpen(now time.Time) bool {
	return s.Status == SessionOpen && now.Before(s.ClosesAt)
}
