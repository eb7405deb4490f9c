package repositories

import (
	"errors"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *GormSessionRepository) Update(session *models.Session) error {
	return r.db.Save(session).Error
}

func (r *GormSessionRepository) GetByOwner(owner string, limit, offset int) ([]models.Session, int64, error) {
	var sessions []models.Session
	var count int64

	if err := r.db.Model(&models.Session{}).Where("owner = ?", owner).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("owner = ?", owner).
		Order("opens_at DESC").
		Limit(limit).Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, count, nil
}
