package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
)

// MemoryTokenRepository keeps tokens in process memory. Each session carries
// its own consume lock so check-ins against unrelated sessions never contend,
// and the attendance record is written under that lock so an accepted consume
// is never observable without its record.
type MemoryTokenRepository struct {
	mu      sync.RWMutex
	tokens  map[string]*models.Token
	consume map[uuid.UUID]*sync.Mutex
	records *MemoryAttendanceRepository
}

func NewMemoryTokenRepository(records *MemoryAttendanceRepository) *MemoryTokenRepository {
	return &MemoryTokenRepository{
		tokens:  make(map[string]*models.Token),
		consume: make(map[uuid.UUID]*sync.Mutex),
		records: records,
	}
}

func (r *MemoryTokenRepository) GetByID(id string) (*models.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[id]
	if !ok {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

func (r *MemoryTokenRepository) Create(token *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.ID] = &copied
	if _, ok := r.consume[token.SessionID]; !ok {
		r.consume[token.SessionID] = &sync.Mutex{}
	}
	return nil
}

func (r *MemoryTokenRepository) UpdateStatus(id string, status models.TokenStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[id]; ok {
		token.Status = status
	}
	return nil
}

func (r *MemoryTokenRepository) GetBySession(sessionID uuid.UUID) ([]models.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tokens []models.Token
	for _, token := range r.tokens {
		if token.SessionID == sessionID {
			tokens = append(tokens, *token)
		}
	}
	return tokens, nil
}

func (r *MemoryTokenRepository) TryConsume(record *models.AttendanceRecord, now time.Time) (ConsumeResult, error) {
	r.mu.RLock()
	token, ok := r.tokens[record.TokenID]
	var sessionMu *sync.Mutex
	if ok {
		sessionMu = r.consume[token.SessionID]
	}
	r.mu.RUnlock()
	if !ok || sessionMu == nil {
		return ConsumeInvalid, nil
	}

	sessionMu.Lock()
	defer sessionMu.Unlock()

	// Re-read status under the store lock: a revocation that landed after the
	// caller's earlier read must be observed here, never a stale success.
	r.mu.RLock()
	active := token.IsActive(now)
	r.mu.RUnlock()
	if !active {
		return ConsumeInvalid, nil
	}

	// The record store enforces one record per (session, attendee) and so
	// rejects an attendee who already checked in through any of the session's
	// tokens, rotated or not.
	if err := r.records.Create(record); err != nil {
		if errors.Is(err, ErrDuplicateRecord) {
			return ConsumeDuplicate, nil
		}
		return ConsumeInvalid, err
	}

	r.mu.Lock()
	token.Consumptions = append(token.Consumptions, models.TokenConsumption{
		TokenID:    record.TokenID,
		Attendee:   record.Attendee,
		ConsumedAt: now,
	})
	r.mu.Unlock()

	return ConsumeAccepted, nil
}
