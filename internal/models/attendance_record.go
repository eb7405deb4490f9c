package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is the immutable outcome of an accepted check-in. The
// unique index over (session_id, attendee) is the database-level backstop for
// the one-record-per-attendee invariant, even across rotated tokens.
type AttendanceRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_attendee" json:"sessionId"`
	Attendee       string    `gorm:"type:text;not null;uniqueIndex:idx_attendance_session_attendee" json:"attendee"`
	TokenID        string    `gorm:"type:text;not null;index" json:"tokenId"`
	VerifiedAt     time.Time `gorm:"type:timestamptz;not null" json:"verifiedAt"`
	DistanceMeters float64   `gorm:"not null" json:"distanceMeters"`
	CreatedAt      time.Time `gorm:"type:timestamptz;not null;default:now()" json:"createdAt"`
}
