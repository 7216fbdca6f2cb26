package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/camrec/internal/ports/secondary"
)

const archiveColumns = "id, camera_id, date, output_path, segment_count, source_deleted, status, error, created_at"

// ArchiveRepository implements secondary.ArchiveRepository with SQLite.
type ArchiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository creates a new SQLite archive repository.
func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create persists one stitch outcome.
func (r *ArchiveRepository) Create(ctx context.Context, archive *secondary.ArchiveRecord) error {
	var errText sql.NullString
	if archive.Error != "" {
		errText = sql.NullString{String: archive.Error, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO archives (id, camera_id, date, output_path, segment_count, source_deleted, status, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		archive.ID, archive.CameraID, archive.Date, archive.OutputPath, archive.SegmentCount, archive.SourceDeleted, archive.Status, errText, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}

// GetByID retrieves an archive entry by its ID.
func (r *ArchiveRepository) GetByID(ctx context.Context, id string) (*secondary.ArchiveRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+archiveColumns+" FROM archives WHERE id = ?", id)

	record, err := scanArchive(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("archive %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archive: %w", err)
	}
	return record, nil
}

// List retrieves archive entries matching the given filters, newest first.
func (r *ArchiveRepository) List(ctx context.Context, filters secondary.ArchiveFilters) ([]*secondary.ArchiveRecord, error) {
	query := "SELECT " + archiveColumns + " FROM archives WHERE 1=1"
	args := []any{}

	if filters.CameraID != "" {
		query += " AND camera_id = ?"
		args = append(args, filters.CameraID)
	}

	if filters.Date != "" {
		query += " AND date = ?"
		args = append(args, filters.Date)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	defer rows.Close()

	var archives []*secondary.ArchiveRecord
	for rows.Next() {
		record, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archive: %w", err)
		}
		archives = append(archives, record)
	}

	return archives, rows.Err()
}

// GetNextID returns the next available archive ID.
func (r *ArchiveRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM archives",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next archive ID: %w", err)
	}

	return fmt.Sprintf("ARC-%04d", maxID+1), nil
}

func scanArchive(row rowScanner) (*secondary.ArchiveRecord, error) {
	var (
		errText   sql.NullString
		createdAt time.Time
	)

	record := &secondary.ArchiveRecord{}
	err := row.Scan(&record.ID, &record.CameraID, &record.Date, &record.OutputPath,
		&record.SegmentCount, &record.SourceDeleted, &record.Status, &errText, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Error = errText.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure ArchiveRepository implements the interface
var _ secondary.ArchiveRepository = (*ArchiveRepository)(nil)
