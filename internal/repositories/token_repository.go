package repositories

import (
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
)

// ConsumeResult is the outcome of a TryConsume call. It is always one of the
// three values below; an implementation must never leave the store in an
// ambiguous state.
type ConsumeResult int

const (
	// ConsumeAccepted means the attendee consumed the token for the first time.
	ConsumeAccepted ConsumeResult = iota
	// ConsumeDuplicate means this attendee already checked in to the token's
	// session, possibly through an earlier rotated token.
	ConsumeDuplicate
	// ConsumeInvalid means the token is unknown, expired or revoked.
	ConsumeInvalid
)

type TokenRepository interface {
	GetByID(id string) (*models.Token, error)
	Create(token *models.Token) error
	UpdateStatus(id string, status models.TokenStatus) error
	GetBySession(sessionID uuid.UUID) ([]models.Token, error)

	// TryConsume atomically validates the token named by record.TokenID against
	// status and expiry and, if eligible, marks it consumed by record.Attendee
	// and persists the attendance record in the same indivisible step. Two
	// concurrent calls for the same attendee can never both be accepted, and an
	// accepted consumption is never left without its record.
	TryConsume(record *models.AttendanceRecord, now time.Time) (ConsumeResult, error)
}
