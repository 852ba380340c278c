package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tripboard/internal/db"
	"github.com/alexanderramin/tripboard/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo on SQLite.
type SQLiteSnapshotRepo struct {
	conn db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{conn: conn}
}

const snapshotHeaderCols = `id, title, subtitle, source, generated_on, day_count, item_count, imported_at`

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	query := `INSERT INTO snapshots (id, title, subtitle, source, generated_on, day_count, item_count, document, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		s.ID,
		s.Title,
		s.Subtitle,
		s.Source,
		s.GeneratedOn,
		s.DayCount,
		s.ItemCount,
		s.Document,
		formatTime(s.ImportedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT ` + snapshotHeaderCols + `, document FROM snapshots WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	s, err := scanSnapshot(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return s, nil
}

func (r *SQLiteSnapshotRepo) ListByIDPrefix(ctx context.Context, prefix string) ([]*domain.Snapshot, error) {
	query := `SELECT ` + snapshotHeaderCols + ` FROM snapshots
		WHERE id LIKE ? ESCAPE '\' ORDER BY imported_at DESC, id`
	return r.list(ctx, query, escapeLike(prefix)+"%")
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context) ([]*domain.Snapshot, error) {
	query := `SELECT ` + snapshotHeaderCols + ` FROM snapshots ORDER BY imported_at DESC, id`
	return r.list(ctx, query)
}

func (r *SQLiteSnapshotRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Snapshot, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return out, nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSnapshot(row scanner, withDocument bool) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var importedAt string
	dest := []any{
		&s.ID, &s.Title, &s.Subtitle, &s.Source, &s.GeneratedOn,
		&s.DayCount, &s.ItemCount, &importedAt,
	}
	if withDocument {
		dest = append(dest, &s.Document)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.ImportedAt = parseTime(importedAt)
	return &s, nil
}
