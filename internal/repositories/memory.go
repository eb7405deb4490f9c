package repositories

import (
	"sort"
	"sync"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
)

// In-memory SessionRepository and AttendanceRepository counterparts to
// MemoryTokenRepository, used when the server runs without a database.

type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[uuid.UUID]*models.Session)}
}

func (r *MemorySessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *MemorySessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *MemorySessionRepository) Update(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *MemorySessionRepository) GetByOwner(owner string, limit, offset int) ([]models.Session, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []models.Session
	for _, session := range r.sessions {
		if session.Owner == owner {
			all = append(all, *session)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OpensAt.After(all[j].OpensAt) })

	count := int64(len(all))
	if offset >= len(all) {
		return nil, count, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, count, nil
}

type MemoryAttendanceRepository struct {
	mu      sync.RWMutex
	records []models.AttendanceRecord
	pairs   map[string]struct{} // sessionID|attendee
}

func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{pairs: make(map[string]struct{})}
}

func pairKey(sessionID uuid.UUID, attendee string) string {
	return sessionID.String() + "|" + attendee
}

func (r *MemoryAttendanceRepository) Create(record *models.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(record.SessionID, record.Attendee)
	if _, exists := r.pairs[key]; exists {
		return ErrDuplicateRecord
	}
	r.pairs[key] = struct{}{}
	r.records = append(r.records, *record)
	return nil
}

func (r *MemoryAttendanceRepository) GetBySession(sessionID uuid.UUID) ([]models.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []models.AttendanceRecord
	for _, record := range r.records {
		if record.SessionID == sessionID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].VerifiedAt.Before(records[j].VerifiedAt) })
	return records, nil
}

func (r *MemoryAttendanceRepository) GetByAttendee(attendee string, limit, offset int) ([]models.AttendanceRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []models.AttendanceRecord
	for _, record := range r.records {
		if record.Attendee == attendee {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].VerifiedAt.After(records[j].VerifiedAt) })

	count := int64(len(records))
	if offset >= len(records) {
		return nil, count, nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, count, nil
}
