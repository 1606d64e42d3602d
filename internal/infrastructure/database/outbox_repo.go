package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"admitd/internal/ports/output"
)

var _ output.LedgerOutbox = (*LedgerOutbox)(nil)

// LedgerOutbox stores reconciliation markers in the same database as the
// roster state, so a marker commits atomically with the change it covers.
type LedgerOutbox struct {
	pool *pgxpool.Pool
}

func NewLedgerOutbox(pool *pgxpool.Pool) *LedgerOutbox {
	return &LedgerOutbox{pool: pool}
}

func (r *LedgerOutbox) Enqueue(ctx context.Context, userID string) error {
	q := querierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, `INSERT INTO ledger_outbox (user_id) VALUES ($1)`, userID)
	if err != nil {
		return fmt.Errorf("enqueue outbox row: %w", err)
	}
	return nil
}

// ListPending returns distinct user IDs with at least one pending marker,
// oldest first.
func (r *LedgerOutbox) ListPending(ctx context.Context, limit int) ([]string, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT user_id FROM ledger_outbox
		GROUP BY user_id ORDER BY min(id) LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending outbox rows: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		out = append(out, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return out, nil
}

func (r *LedgerOutbox) DeleteForUser(ctx context.Context, userID string) error {
	q := querierFrom(ctx, r.pool)
	if _, err := q.Exec(ctx, `DELETE FROM ledger_outbox WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete outbox rows: %w", err)
	}
	return nil
}
