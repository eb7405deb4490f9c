package repositories

import (
	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
)

type SessionRepository interface {
	GetByID(id uuid.UUID) (*models.Session, error)
	Create(session *models.Session) error
	Update(session *models.Session) error
	GetByOwner(owner string, limit, offset int) ([]models.Session, int64, error)
}
