package models

import (
	"time"

	"github.com/google/uuid"
)

type TokenStatus string

const (
	TokenActive  TokenStatus = "active"
	TokenExpired TokenStatus = "expired"
	TokenRevoked TokenStatus = "revoked"
)

// Token is the unguessable identifier embedded in the QR artifact. The ID is
// random hex from crypto/rand, never sequential, and is never reused. Status
// moves from active to expired or revoked and never back.
type Token struct {
	ID        string      `gorm:"type:text;primaryKey" json:"id"`
	SessionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"sessionId"`
	Payload   string      `gorm:"type:text;not null" json:"payload"`
	IssuedAt  time.Time   `gorm:"type:timestamptz;not null" json:"issuedAt"`
	ExpiresAt time.Time   `gorm:"type:timestamptz;not null;index" json:"expiresAt"`
	Status    TokenStatus `gorm:"type:text;not null;default:'active'" json:"status"`

	Consumptions []TokenConsumption `gorm:"foreignKey:TokenID" json:"-"`
}

// IsActive reports whether the token can still be consumed at the given time.
// A token is valid up to and including its expiry instant.
func (t *Token) IsActive(now time.Time) bool {
	return t.Status == TokenActive && !now.After(t.ExpiresAt)
}

// TokenConsumption records that an attendee consumed a token. Rows are only
// ever inserted, never updated or deleted, so the consumed set grows
// monotonically.
type TokenConsumption struct {
	TokenID    string    `gorm:"type:text;primaryKey" json:"tokenId"`
	Attendee   string    `gorm:"type:text;primaryKey" json:"attendee"`
	ConsumedAt time.Time `gorm:"type:timestamptz;not null" json:"consumedAt"`
}
