package repositories

import (
	"errors"
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTokenRepository implements TokenRepository using GORM. TryConsume runs
// in a transaction that locks only the single token row, so check-ins against
// unrelated tokens and sessions proceed in parallel.
type GormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

func (r *GormTokenRepository) GetByID(id string) (*models.Token, error) {
	var token models.Token
	if err := r.db.First(&token, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *GormTokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

func (r *GormTokenRepository) UpdateStatus(id string, status models.TokenStatus) error {
	return r.db.Model(&models.Token{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *GormTokenRepository) GetBySession(sessionID uuid.UUID) ([]models.Token, error) {
	var tokens []models.Token
	err := r.db.Where("session_id = ?", sessionID).
		Order("issued_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// errConsumeDuplicate aborts the transaction so a consumption row inserted for
// a losing rotated-token race is rolled back along with it.
var errConsumeDuplicate = errors.New("duplicate consume")

func (r *GormTokenRepository) TryConsume(record *models.AttendanceRecord, now time.Time) (ConsumeResult, error) {
	result := ConsumeInvalid

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var token models.Token
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&token, "id = ?", record.TokenID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = ConsumeInvalid
				return nil
			}
			return err
		}

		if !token.IsActive(now) {
			result = ConsumeInvalid
			return nil
		}

		// An attendee who checked in through an earlier rotated token of the
		// same session is a duplicate, not a fresh consumption.
		var existing int64
		err = tx.Model(&models.AttendanceRecord{}).
			Where("session_id = ? AND attendee = ?", token.SessionID, record.Attendee).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			result = ConsumeDuplicate
			return nil
		}

		consumption := &models.TokenConsumption{
			TokenID:    record.TokenID,
			Attendee:   record.Attendee,
			ConsumedAt: now,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(consumption)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			result = ConsumeDuplicate
			return nil
		}

		// The record lands in the same transaction as the consumption, so an
		// accepted consume can never commit without its attendance record. The
		// unique (session_id, attendee) index catches the race where two
		// different rotated tokens of one session consume concurrently.
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errConsumeDuplicate
			}
			return err
		}

		result = ConsumeAccepted
		return nil
	})
	if errors.Is(err, errConsumeDuplicate) {
		return ConsumeDuplicate, nil
	}
	if err != nil {
		return ConsumeInvalid, err
	}
	return result, nil
}
