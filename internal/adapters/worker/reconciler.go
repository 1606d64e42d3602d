// Package worker hosts the background loops that keep derived state
// converging after partial failures.
package worker

import (
	"context"
	"log"
	"time"

	"admitd/internal/ports/input"
	"admitd/internal/ports/output"
)

// Reconciler periodically drains the ledger outbox and rebuilds the user
// ledger for every marked user. The inline mirror after each roster write
// handles the common case; this loop covers crashes between the roster
// commit and the mirror.
type Reconciler struct {
	outbox    output.LedgerOutbox
	ledger    input.LedgerUseCase
	interval  time.Duration
	batchSize int
}

func NewReconciler(outbox output.LedgerOutbox, ledger input.LedgerUseCase, interval time.Duration, batchSize int) *Reconciler {
	return &Reconciler{
		outbox:    outbox,
		ledger:    ledger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run drains the outbox on every tick until ctx is done.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

func (r *Reconciler) drain(ctx context.Context) {
	userIDs, err := r.outbox.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("reconciler: list pending: %v", err)
		return
	}
	for _, userID := range userIDs {
		if err := r.ledger.Reconcile(ctx, userID); err != nil {
			// Row stays queued, the next tick retries.
			log.Printf("reconciler: reconcile user %s: %v", userID, err)
		}
	}
	if len(userIDs) > 0 {
		log.Printf("reconciler: processed %d user(s)", len(userIDs))
	}
}
