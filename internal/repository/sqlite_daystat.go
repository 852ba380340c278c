package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripboard/internal/db"
	"github.com/alexanderramin/tripboard/internal/domain"
)

// SQLiteDayStatRepo implements DayStatRepo on SQLite. Bucket counts are
// stored one column per bucket.
type SQLiteDayStatRepo struct {
	conn db.DBTX
}

func NewSQLiteDayStatRepo(conn db.DBTX) *SQLiteDayStatRepo {
	return &SQLiteDayStatRepo{conn: conn}
}

func (r *SQLiteDayStatRepo) CreateBatch(ctx context.Context, stats []domain.DayStat) error {
	query := `INSERT INTO snapshot_day_stats
		(snapshot_id, day_index, day_label, total, focus, spot, transit, food, shopping, backup, other)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, s := range stats {
		_, err := r.conn.ExecContext(ctx, query,
			s.SnapshotID,
			s.DayIndex,
			s.DayLabel,
			s.Total,
			s.Counts[domain.BucketFocus],
			s.Counts[domain.BucketSpot],
			s.Counts[domain.BucketTransit],
			s.Counts[domain.BucketFood],
			s.Counts[domain.BucketShopping],
			s.Counts[domain.BucketBackup],
			s.Counts[domain.BucketOther],
		)
		if err != nil {
			return fmt.Errorf("inserting day stat %d: %w", s.DayIndex, err)
		}
	}
	return nil
}

func (r *SQLiteDayStatRepo) ListBySnapshot(ctx context.Context, snapshotID string) ([]domain.DayStat, error) {
	query := `SELECT snapshot_id, day_index, day_label, total, focus, spot, transit, food, shopping, backup, other
		FROM snapshot_day_stats WHERE snapshot_id = ? ORDER BY day_index`
	rows, err := r.conn.QueryContext(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("listing day stats: %w", err)
	}
	defer rows.Close()

	var out []domain.DayStat
	for rows.Next() {
		var s domain.DayStat
		var focus, spot, transit, food, shopping, backup, other int
		if err := rows.Scan(&s.SnapshotID, &s.DayIndex, &s.DayLabel, &s.Total,
			&focus, &spot, &transit, &food, &shopping, &backup, &other); err != nil {
			return nil, fmt.Errorf("scanning day stat: %w", err)
		}
		s.Counts = map[domain.Bucket]int{
			domain.BucketFocus:    focus,
			domain.BucketSpot:     spot,
			domain.BucketTransit:  transit,
			domain.BucketFood:     food,
			domain.BucketShopping: shopping,
			domain.BucketBackup:   backup,
			domain.BucketOther:    other,
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day stats: %w", err)
	}
	return out, nil
}
