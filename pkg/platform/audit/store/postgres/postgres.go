// Package postgres persists audit events durably for fleets where the
// in-memory ring is not enough (multi-replica verifiers, compliance retention).
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"wmoracle/pkg/platform/audit"
)

// DB is the subset of pgxpool.Pool the store needs; *pgx.Conn satisfies it
// too, which keeps integration tests flexible.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store writes events to the verification_events table.
type Store struct {
	db DB
}

// New wraps an existing connection pool. Schema is owned by EnsureSchema.
func New(db DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the events table if it does not exist. Called once at
// startup; concurrent callers are safe because of IF NOT EXISTS.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS verification_events (
			id            TEXT PRIMARY KEY,
			ts            TIMESTAMPTZ NOT NULL,
			aid           TEXT NOT NULL,
			scheme_id     TEXT NOT NULL,
			evidence_hash TEXT NOT NULL,
			outcome       TEXT NOT NULL,
			ok            BOOLEAN NOT NULL,
			trigger_acc   DOUBLE PRECISION NOT NULL,
			feat_dist     DOUBLE PRECISION NOT NULL,
			logit_stat    DOUBLE PRECISION NOT NULL,
			latency_ms    BIGINT NOT NULL,
			request_id    TEXT NOT NULL DEFAULT '',
			client_ip     TEXT NOT NULL DEFAULT '',
			client_name   TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("ensure verification_events schema: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS verification_events_ts_idx ON verification_events (ts DESC)`)
	if err != nil {
		return fmt.Errorf("ensure verification_events index: %w", err)
	}
	return nil
}

// Append inserts one event.
func (s *Store) Append(ctx context.Context, e audit.Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO verification_events
			(id, ts, aid, scheme_id, evidence_hash, outcome, ok,
			 trigger_acc, feat_dist, logit_stat, latency_ms,
			 request_id, client_ip, client_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		e.ID, e.Timestamp, e.Aid, e.SchemeID, e.EvidenceHash, string(e.Outcome), e.Ok,
		e.TriggerAcc, e.FeatDist, e.LogitStat, e.LatencyMS,
		e.RequestID, e.ClientIP, e.ClientName,
	)
	if err != nil {
		return fmt.Errorf("insert verification event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, ts, aid, scheme_id, evidence_hash, outcome, ok,
		       trigger_acc, feat_dist, logit_stat, latency_ms,
		       request_id, client_ip, client_name
		FROM verification_events
		ORDER BY ts DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query verification events: %w", err)
	}
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var e audit.Event
		var outcome string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Aid, &e.SchemeID, &e.EvidenceHash,
			&outcome, &e.Ok, &e.TriggerAcc, &e.FeatDist, &e.LogitStat, &e.LatencyMS,
			&e.RequestID, &e.ClientIP, &e.ClientName); err != nil {
			return nil, fmt.Errorf("scan verification event: %w", err)
		}
		e.Outcome = audit.Outcome(outcome)
		out = append(out, e)
	}
	return out, rows.Err()
}
