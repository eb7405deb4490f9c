package repositories

import (
	"sync"
	"testing"
	"time"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/google/uuid"
)

func newMemoryStores() (*MemoryTokenRepository, *MemoryAttendanceRepository) {
	records := NewMemoryAttendanceRepository()
	return NewMemoryTokenRepository(records), records
}

func newActiveToken(t *testing.T, sessionID uuid.UUID, expiresAt time.Time) *models.Token {
	t.Helper()
	id, err := models.GenerateTokenID()
	if err != nil {
		t.Fatalf("failed to generate token id: %v", err)
	}
	return &models.Token{
		ID:        id,
		SessionID: sessionID,
		Payload:   "attendance_token:" + id,
		IssuedAt:  expiresAt.Add(-time.Hour),
		ExpiresAt: expiresAt,
		Status:    models.TokenActive,
	}
}

func attendanceFor(token *models.Token, attendee string, now time.Time) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:         uuid.New(),
		SessionID:  token.SessionID,
		Attendee:   attendee,
		TokenID:    token.ID,
		VerifiedAt: now,
	}
}

func TestMemoryTokenRepository_TryConsume_Accepted(t *testing.T) {
	repo, records := newMemoryStores()
	now := time.Now().UTC()
	token := newActiveToken(t, uuid.New(), now.Add(time.Hour))
	if err := repo.Create(token); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := repo.TryConsume(attendanceFor(token, "student-1", now), now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != ConsumeAccepted {
		t.Errorf("expected ConsumeAccepted, got %v", result)
	}

	got, err := repo.GetByID(token.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Consumptions) != 1 || got.Consumptions[0].Attendee != "student-1" {
		t.Errorf("expected one consumption by student-1, got %+v", got.Consumptions)
	}

	// An accepted consume carries its attendance record with it.
	stored, err := records.GetBySession(token.SessionID)
	if err != nil {
		t.Fatalf("get records failed: %v", err)
	}
	if len(stored) != 1 || stored[0].Attendee != "student-1" {
		t.Errorf("expected one attendance record for student-1, got %+v", stored)
	}
}

func TestMemoryTokenRepository_TryConsume_UnknownToken(t *testing.T) {
	repo, records := newMemoryStores()
	record := &models.AttendanceRecord{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		Attendee:  "student-1",
		TokenID:   "no-such-token",
	}
	result, err := repo.TryConsume(record, time.Now().UTC())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != ConsumeInvalid {
		t.Errorf("expected ConsumeInvalid, got %v", result)
	}
	if stored, _ := records.GetBySession(record.SessionID); len(stored) != 0 {
		t.Errorf("expected no attendance records, got %+v", stored)
	}
}

func TestMemoryTokenRepository_TryConsume_Expired(t *testing.T) {
	repo, records := newMemoryStores()
	now := time.Now().UTC()
	token := newActiveToken(t, uuid.New(), now.Add(-time.Second))
	if err := repo.Create(token); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, _ := repo.TryConsume(attendanceFor(token, "student-1", now), now)
	if result != ConsumeInvalid {
		t.Errorf("expected ConsumeInvalid for expired token, got %v", result)
	}
	if stored, _ := records.GetBySession(token.SessionID); len(stored) != 0 {
		t.Errorf("expected no attendance records, got %+v", stored)
	}
}

func TestMemoryTokenRepository_TryConsume_RevokedAfterRead(t *testing.T) {
	repo, _ := newMemoryStores()
	now := time.Now().UTC()
	token := newActiveToken(t, uuid.New(), now.Add(time.Hour))
	if err := repo.Create(token); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A reader saw the token active; the revocation lands before the consume.
	got, _ := repo.GetByID(token.ID)
	if !got.IsActive(now) {
		t.Fatalf("expected token to read as active")
	}
	if err := repo.UpdateStatus(token.ID, models.TokenRevoked); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	result, _ := repo.TryConsume(attendanceFor(token, "student-1", now), now)
	if result != ConsumeInvalid {
		t.Errorf("expected ConsumeInvalid after revocation, got %v", result)
	}
}

func TestMemoryTokenRepository_TryConsume_DuplicateSameToken(t *testing.T) {
	repo, records := newMemoryStores()
	now := time.Now().UTC()
	token := newActiveToken(t, uuid.New(), now.Add(time.Hour))
	if err := repo.Create(token); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if result, _ := repo.TryConsume(attendanceFor(token, "student-1", now), now); result != ConsumeAccepted {
		t.Fatalf("expected first consume to be accepted, got %v", result)
	}
	if result, _ := repo.TryConsume(attendanceFor(token, "student-1", now), now); result != ConsumeDuplicate {
		t.Errorf("expected second consume to be duplicate, got %v", result)
	}
	// A different attendee is still free to consume.
	if result, _ := repo.TryConsume(attendanceFor(token, "student-2", now), now); result != ConsumeAccepted {
		t.Errorf("expected other attendee to be accepted, got %v", result)
	}

	if stored, _ := records.GetBySession(token.SessionID); len(stored) != 2 {
		t.Errorf("expected 2 attendance records, got %d", len(stored))
	}
}

func TestMemoryTokenRepository_TryConsume_DuplicateAcrossRotatedTokens(t *testing.T) {
	repo, records := newMemoryStores()
	now := time.Now().UTC()
	sessionID := uuid.New()
	first := newActiveToken(t, sessionID, now.Add(time.Hour))
	second := newActiveToken(t, sessionID, now.Add(time.Hour))
	if err := repo.Create(first); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if result, _ := repo.TryConsume(attendanceFor(first, "student-1", now), now); result != ConsumeAccepted {
		t.Fatalf("expected first token consume to be accepted, got %v", result)
	}
	if result, _ := repo.TryConsume(attendanceFor(second, "student-1", now), now); result != ConsumeDuplicate {
		t.Errorf("expected rotated-token consume to be duplicate, got %v", result)
	}

	// The rejected consume left nothing behind: one record, no consumption on
	// the second token.
	if stored, _ := records.GetBySession(sessionID); len(stored) != 1 {
		t.Errorf("expected 1 attendance record, got %d", len(stored))
	}
	got, _ := repo.GetByID(second.ID)
	if len(got.Consumptions) != 0 {
		t.Errorf("expected no consumptions on the rotated token, got %+v", got.Consumptions)
	}
}

func TestMemoryTokenRepository_TryConsume_ConcurrentSameAttendee(t *testing.T) {
	repo, records := newMemoryStores()
	now := time.Now().UTC()
	token := newActiveToken(t, uuid.New(), now.Add(time.Hour))
	if err := repo.Create(token); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const attempts = 50
	results := make(chan ConsumeResult, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := repo.TryConsume(attendanceFor(token, "student-1", now), now)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	accepted, duplicate := 0, 0
	for result := range results {
		switch result {
		case ConsumeAccepted:
			accepted++
		case ConsumeDuplicate:
			duplicate++
		default:
			t.Errorf("unexpected result %v", result)
		}
	}
	if accepted != 1 {
		t.Errorf("expected exactly 1 accepted, got %d", accepted)
	}
	if duplicate != attempts-1 {
		t.Errorf("expected %d duplicates, got %d", attempts-1, duplicate)
	}
	if stored, _ := records.GetBySession(token.SessionID); len(stored) != 1 {
		t.Errorf("expected exactly 1 attendance record, got %d", len(stored))
	}
}

func TestMemoryTokenRepository_SessionsDoNotContend(t *testing.T) {
	repo, _ := newMemoryStores()
	now := time.Now().UTC()

	const sessions = 10
	tokens := make([]*models.Token, sessions)
	for i := range tokens {
		tokens[i] = newActiveToken(t, uuid.New(), now.Add(time.Hour))
		if err := repo.Create(tokens[i]); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func(token *models.Token) {
			defer wg.Done()
			if result, _ := repo.TryConsume(attendanceFor(token, "student-1", now), now); result != ConsumeAccepted {
				t.Errorf("expected accepted consume in independent session, got %v", result)
			}
		}(token)
	}
	wg.Wait()
}
