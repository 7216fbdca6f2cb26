package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/camrec/internal/ports/primary"
	"github.com/example/camrec/internal/ports/secondary"
)

// ErrLedgerDisabled is returned by history queries when the ledger is off.
var ErrLedgerDisabled = errors.New("ledger is disabled (ledger.enabled: false)")

// defaultHistoryLimit caps listings when no limit is given.
const defaultHistoryLimit = 50

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	sessions secondary.SessionRepository
	archives secondary.ArchiveRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
// Nil repositories mean the ledger is disabled.
func NewHistoryService(sessions secondary.SessionRepository, archives secondary.ArchiveRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		sessions: sessions,
		archives: archives,
	}
}

// ListSessions lists recording sessions, newest first.
func (s *HistoryServiceImpl) ListSessions(ctx context.Context, filters primary.HistoryFilters) ([]*primary.Session, error) {
	if s.sessions == nil {
		return nil, ErrLedgerDisabled
	}

	records, err := s.sessions.List(ctx, secondary.SessionFilters{
		CameraID: filters.CameraID,
		Limit:    limitOrDefault(filters.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*primary.Session, len(records))
	for i, r := range records {
		sessions[i] = &primary.Session{
			ID:              r.ID,
			CameraID:        r.CameraID,
			DurationSeconds: r.DurationSeconds,
			OutputDir:       r.OutputDir,
			State:           r.State,
			Error:           r.Error,
			SegmentCount:    r.SegmentCount,
			StartedAt:       r.StartedAt,
			EndedAt:         r.EndedAt,
		}
	}
	return sessions, nil
}

// ListArchives lists stitch outcomes, newest first.
func (s *HistoryServiceImpl) ListArchives(ctx context.Context, filters primary.HistoryFilters) ([]*primary.Archive, error) {
	if s.archives == nil {
		return nil, ErrLedgerDisabled
	}

	records, err := s.archives.List(ctx, secondary.ArchiveFilters{
		CameraID: filters.CameraID,
		Limit:    limitOrDefault(filters.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}

	archives := make([]*primary.Archive, len(records))
	for i, r := range records {
		archives[i] = &primary.Archive{
			ID:            r.ID,
			CameraID:      r.CameraID,
			Date:          r.Date,
			OutputPath:    r.OutputPath,
			SegmentCount:  r.SegmentCount,
			SourceDeleted: r.SourceDeleted,
			Status:        r.Status,
			Error:         r.Error,
			CreatedAt:     r.CreatedAt,
		}
	}
	return archives, nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	return limit
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
