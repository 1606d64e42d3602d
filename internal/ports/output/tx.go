package output

import "context"

// TxRunner runs fn inside one storage transaction. Repositories called with
// the context passed to fn participate in that transaction. Implementations
// retry a bounded number of times on serialization conflicts and surface
// the remainder as domain.ErrStoreUnavailable (or domain.ErrTimeout when
// the caller's deadline expired with the outcome unknown).
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
