package output

import (
	"context"

	"admitd/internal/domain/entities"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error)
	Save(ctx context.Context, user *entities.User) error
}
