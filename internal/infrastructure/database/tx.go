package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"admitd/internal/domain"
	"admitd/internal/ports/output"
)

// maxTxAttempts bounds retries on serialization conflicts.
const maxTxAttempts = 3

var _ output.TxRunner = (*TxRunner)(nil)

type txKey struct{}

// querier is the subset of pgx shared by a pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querierFrom returns the transaction bound to ctx when there is one,
// otherwise the pool itself.
func querierFrom(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// InTx runs fn inside a database transaction. Repositories sharing the
// context see the same transaction. Serialization and deadlock conflicts
// are retried up to maxTxAttempts before surfacing as a store error.
func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		// Already inside a transaction, join it.
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if domain.Code(err) != "" {
			return err
		}
		if ctxErr := mapContextErr(ctx, err); ctxErr != nil {
			return ctxErr
		}
		if !isRetryableConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		lastErr = err
		log.Printf("database: transaction conflict, attempt %d/%d: %v", attempt, maxTxAttempts, err)
	}
	return fmt.Errorf("%w: retries exhausted: %v", domain.ErrStoreUnavailable, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func mapContextErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return nil
}

// isRetryableConflict reports serialization failures and deadlocks,
// which resolve under retry because the competing transaction has
// already committed or rolled back.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
