package db

import (
	"context"
	"fmt"
	"time"
)

// CheckRecord is one journaled evaluation result.
type CheckRecord struct {
	ID        int64
	CreatedAt time.Time
	Pool      string
	Severity  string
	Message   string
}

// RecordResult appends one evaluation result to the journal.
func (d *DB) RecordResult(ctx context.Context, pool, severity, message string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO check_results (pool, severity, message) VALUES (?, ?, ?)`,
		pool, severity, message)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// RecentResults returns the newest journal entries, most recent first.
func (d *DB) RecentResults(ctx context.Context, limit int) ([]CheckRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, created_at, pool, severity, message
		 FROM check_results ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []CheckRecord
	for rows.Next() {
		var rec CheckRecord
		var createdAt NullTime
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Pool, &rec.Severity, &rec.Message); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		if createdAt.Valid {
			rec.CreatedAt = createdAt.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
