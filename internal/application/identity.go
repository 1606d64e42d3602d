package application

import (
	"context"
	"fmt"
	"sync"

	"admitd/internal/ports/output"
)

// IdentityResolver is a read-through cache mapping account identifiers to
// display names. Resolution hits the user store once per identifier and
// serves repeats from memory; entries never expire because display names
// change only through profile edits, which this process does not observe.
type IdentityResolver struct {
	users output.UserRepository

	mu    sync.Mutex
	cache map[string]string
}

func NewIdentityResolver(users output.UserRepository) *IdentityResolver {
	return &IdentityResolver{users: users, cache: make(map[string]string)}
}

var _ output.IdentityResolver = (*IdentityResolver)(nil)

func (r *IdentityResolver) DisplayName(ctx context.Context, userID string) (string, error) {
	r.mu.Lock()
	name, ok := r.cache[userID]
	r.mu.Unlock()
	if ok {
		return name, nil
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	name = user.FullName
	if name == "" {
		name = userID
	}

	r.mu.Lock()
	r.cache[userID] = name
	r.mu.Unlock()
	return name, nil
}
