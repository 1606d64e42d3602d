package output

import "context"

// IdentityResolver maps opaque account identifiers to human-readable
// display identifiers.
type IdentityResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
