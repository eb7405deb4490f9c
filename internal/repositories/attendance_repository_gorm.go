package repositories

import (
	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttendanceRepository implements the read side of AttendanceRepository.
// Writes go through GormTokenRepository.TryConsume so the record and the token
// consumption commit in one transaction.
type GormAttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) GetBySession(sessionID uuid.UUID) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Where("session_id = ?", sessionID).
		Order("verified_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormAttendanceRepository) GetByAttendee(attendee string, limit, offset int) ([]models.AttendanceRecord, int64, error) {
	var records []models.AttendanceRecord
	var count int64

	if err := r.db.Model(&models.AttendanceRecord{}).Where("attendee = ?", attendee).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("attendee = ?", attendee).
		Order("verified_at DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}
