package services_test

import (
	"errors"
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/clock"
	"github.com/Larry-007-del/attendance-system-master/internal/config"
	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/Larry-007-del/attendance-system-master/internal/repositories"
	"github.com/google/uuid"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Attendance: config.AttendanceConfig{
			RotationEnabled:    false,
			TokenTTL:           "30s",
			MaxSessionDuration: "4h",
			PayloadSecret:      "test-payload-secret",
		},
	}
}

func fixedClock(t time.Time) clock.Clock {
	return clock.Fixed(t)
}

type mockSessionRepo struct {
	getByIDFunc    func(id uuid.UUID) (*models.Session, error)
	createFunc     func(session *models.Session) error
	updateFunc     func(session *models.Session) error
	getByOwnerFunc func(owner string, limit, offset int) ([]models.Session, int64, error)
}

func (m *mockSessionRepo) GetByID(id uuid.UUID) (*models.Session, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockSessionRepo) Create(session *models.Session) error {
	if m.createFunc == nil {
		return errors.New("not implemented")
	}
	return m.createFunc(session)
}

func (m *mockSessionRepo) Update(session *models.Session) error {
	if m.updateFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateFunc(session)
}

func (m *mockSessionRepo) GetByOwner(owner string, limit, offset int) ([]models.Session, int64, error) {
	if m.getByOwnerFunc == nil {
		return nil, 0, errors.New("not implemented")
	}
	return m.getByOwnerFunc(owner, limit, offset)
}

type mockTokenRepo struct {
	getByIDFunc      func(id string) (*models.Token, error)
	createFunc       func(token *models.Token) error
	updateStatusFunc func(id string, status models.TokenStatus) error
	getBySessionFunc func(sessionID uuid.UUID) ([]models.Token, error)
	tryConsumeFunc   func(record *models.AttendanceRecord, now time.Time) (repositories.ConsumeResult, error)
}

func (m *mockTokenRepo) GetByID(id string) (*models.Token, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockTokenRepo) Create(token *models.Token) error {
	if m.createFunc == nil {
		return errors.New("not implemented")
	}
	return m.createFunc(token)
}

func (m *mockTokenRepo) UpdateStatus(id string, status models.TokenStatus) error {
	if m.updateStatusFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateStatusFunc(id, status)
}

func (m *mockTokenRepo) GetBySession(sessionID uuid.UUID) ([]models.Token, error) {
	if m.getBySessionFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getBySessionFunc(sessionID)
}

func (m *mockTokenRepo) TryConsume(record *models.AttendanceRecord, now time.Time) (repositories.ConsumeResult, error) {
	if m.tryConsumeFunc == nil {
		return repositories.ConsumeInvalid, errors.New("not implemented")
	}
	return m.tryConsumeFunc(record, now)
}

type mockAttendanceRepo struct {
	getBySessionFunc  func(sessionID uuid.UUID) ([]models.AttendanceRecord, error)
	getByAttendeeFunc func(attendee string, limit, offset int) ([]models.AttendanceRecord, int64, error)
}

func (m *mockAttendanceRepo) GetBySession(sessionID uuid.UUID) ([]models.AttendanceRecord, error) {
	if m.getBySessionFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getBySessionFunc(sessionID)
}

func (m *mockAttendanceRepo) GetByAttendee(attendee string, limit, offset int) ([]models.AttendanceRecord, int64, error) {
	if m.getByAttendeeFunc == nil {
		return nil, 0, errors.New("not implemented")
	}
	return m.getByAttendeeFunc(attendee, limit, offset)
}
