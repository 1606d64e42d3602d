package output

import "context"

// LedgerOutbox queues user IDs whose ledger mirror must be recomputed.
// Rows are enqueued inside the roster transaction, so a committed event-side
// change always leaves a reconciliation marker behind. Draining is
// idempotent: reconciling a user whose mirror is already correct changes
// nothing.
type LedgerOutbox interface {
	Enqueue(ctx context.Context, userID string) error
	ListPending(ctx context.Context, limit int) ([]string, error)
	DeleteForUser(ctx context.Context, userID string) error
}
