package repositories

import (
	"errors"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
)

// ErrDuplicateRecord is returned when an attendance record for the same
// (session, attendee) pair already exists. Records are only ever written
// through TokenRepository.TryConsume, so the read-side interface stays free of
// a Create that would bypass the atomic consume step.
var ErrDuplicateRecord = errors.New("attendance record already exists")

type AttendanceRepository interface {
	GetBySession(sessionID uuid.UUID) ([]models.AttendanceRecord, error)
	GetByAttendee(attendee string, limit, offset int) ([]models.AttendanceRecord, int64, error)
}
