package storage

import (
	"context"
	"fmt"
	"time"
)

// AuditEntry is one row of the append-only audit trail written by the
// worker that consumes record events.
type AuditEntry struct {
	ID              int64
	Category        string
	Action          string
	RecordID        int64
	OwnerID         int64
	CommissionCents int64
	RecordedAt      time.Time
}

func (s *Store) InsertAuditEntry(ctx context.Context, e *AuditEntry) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (category, action, record_id, owner_id, commission_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Category, e.Action, e.RecordID, e.OwnerID, e.CommissionCents)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("audit insert id: %w", err)
	}
	e.ID = id
	return nil
}

// ListRecentAuditEntries returns the newest entries first, at most limit.
func (s *Store) ListRecentAuditEntries(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, action, record_id, owner_id, commission_cents, recorded_at
		 FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			e  AuditEntry
			at string
		)
		if err := rows.Scan(&e.ID, &e.Category, &e.Action, &e.RecordID,
			&e.OwnerID, &e.CommissionCents, &at); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		// SQLite CURRENT_TIMESTAMP renders as "2006-01-02 15:04:05" in UTC.
		if t, err := time.Parse("2006-01-02 15:04:05", at); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
