package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "lunchgate/pkg/platform/audit"
	txcontext "lunchgate/pkg/platform/tx"
)

// Store persists audit events in the lunch_audit_events table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execer lets a caller batch audit writes into its own transaction by
// stashing it in the context.
func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Schema creates the audit table if it does not exist. Called once at
// startup; there is no migration tooling for a single table.
const Schema = `
CREATE TABLE IF NOT EXISTS lunch_audit_events (
	id             UUID PRIMARY KEY,
	timestamp      TIMESTAMPTZ NOT NULL,
	request_id     TEXT NOT NULL DEFAULT '',
	client_ip      TEXT NOT NULL DEFAULT '',
	client         TEXT NOT NULL DEFAULT '',
	action         TEXT NOT NULL,
	headcount      INT NOT NULL,
	risk_level     TEXT NOT NULL,
	final_decision TEXT NOT NULL,
	approved       BOOLEAN NOT NULL,
	advisory_used  BOOLEAN NOT NULL,
	reason_count   INT NOT NULL
);
CREATE INDEX IF NOT EXISTS lunch_audit_events_timestamp_idx
	ON lunch_audit_events (timestamp DESC);
`

// EnsureSchema applies the table schema.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO lunch_audit_events (
			id, timestamp, request_id, client_ip, client, action,
			headcount, risk_level, final_decision, approved,
			advisory_used, reason_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.RequestID,
		event.ClientIP,
		event.Client,
		event.Action,
		event.Headcount,
		event.RiskLevel,
		event.FinalDecision,
		event.Approved,
		event.AdvisoryUsed,
		event.ReasonCount,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListRecent returns the N most recent events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT timestamp, request_id, client_ip, client, action,
			   headcount, risk_level, final_decision, approved,
			   advisory_used, reason_count
		FROM lunch_audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var event audit.Event
		err := rows.Scan(
			&event.Timestamp,
			&event.RequestID,
			&event.ClientIP,
			&event.Client,
			&event.Action,
			&event.Headcount,
			&event.RiskLevel,
			&event.FinalDecision,
			&event.Approved,
			&event.AdvisoryUsed,
			&event.ReasonCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
