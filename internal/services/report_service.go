package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/Larry-007-del/attendance-system-master/internal/models"
	"github.com/Larry-007-del/attendance-system-master/internal/repositories"
	"github.com/Larry-007-del/attendance-system-master/internal/storage"
	"github.com/google/uuid"
)

// ErrReportNotArchived is returned when no archived report exists for a
// session (it was never exported, or no storage backend is configured).
var ErrReportNotArchived = errors.New("no archived report for session")

// ReportService answers attendance queries and exports per-session CSV
// reports, archiving a copy through the storage backend when one is
// configured.
type ReportService struct {
	sessions repositories.SessionRepository
	records  repositories.AttendanceRepository
	store    storage.Storage
}

func NewReportService(sessions repositories.SessionRepository, records repositories.AttendanceRepository, store storage.Storage) *ReportService {
	return &ReportService{
		sessions: sessions,
		records:  records,
		store:    store,
	}
}

// ListSession returns all attendance records of a session in check-in order.
func (s *ReportService) ListSession(sessionID uuid.UUID) ([]models.AttendanceRecord, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return s.records.GetBySession(sessionID)
}

// History returns an attendee's accepted check-ins, newest first.
func (s *ReportService) History(attendee string, limit, offset int) ([]models.AttendanceRecord, int64, error) {
	return s.records.GetByAttendee(attendee, limit, offset)
}

// ExportCSV renders a session's attendance as CSV and archives a copy under a
// per-session name, overwriting any earlier export. The archive write is
// best-effort: a storage failure is logged, not returned, since the caller
// still gets the report bytes.
func (s *ReportService) ExportCSV(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	records, err := s.records.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"attendee", "token_id", "verified_at", "distance_meters"}); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Attendee,
			record.TokenID,
			record.VerifiedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(record.DistanceMeters, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush report: %w", err)
	}

	if s.store != nil {
		obj := &storage.Object{
			Name:        archiveName(sessionID),
			ContentType: "text/csv",
			Size:        int64(buf.Len()),
			Reader:      bytes.NewReader(buf.Bytes()),
		}
		if _, err := s.store.Upload(ctx, obj); err != nil {
			log.Printf("report archive failed for session %s: %v", sessionID, err)
		}
	}

	return buf.Bytes(), nil
}

// ArchivedCSV serves the last archived export of a session from the storage
// backend without re-rendering it.
func (s *ReportService) ArchivedCSV(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if s.store == nil {
		return nil, ErrReportNotArchived
	}

	result, err := s.store.Download(ctx, &storage.Location{Path: archiveName(sessionID)})
	if err != nil {
		log.Printf("report archive lookup failed for session %s: %v", sessionID, err)
		return nil, ErrReportNotArchived
	}
	defer result.Reader.Close()

	return io.ReadAll(result.Reader)
}

func archiveName(sessionID uuid.UUID) string {
	return fmt.Sprintf("reports/%s.csv", sessionID)
}
