package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"admitd/internal/domain"
	"admitd/internal/domain/entities"
	"admitd/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `user_id, full_name, age, email, phone, account_type,
	waitlisted_event_ids, accepted_event_ids, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns), id)
}

func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1 FOR UPDATE`, userColumns), id)
}

func (r *UserRepository) findOne(ctx context.Context, sql string, id string) (*entities.User, error) {
	q := querierFrom(ctx, r.pool)
	var u entities.User
	var createdAt, updatedAt pgtype.Timestamptz
	err := q.QueryRow(ctx, sql, id).Scan(
		&u.UserID, &u.FullName, &u.Age, &u.Email, &u.Phone, &u.AccountType,
		&u.WaitlistedEventIDs, &u.AcceptedEventIDs, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	u.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	u.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &u, nil
}

// Save upserts the whole profile plus both ledger sets.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	q := querierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO users (user_id, full_name, age, email, phone, account_type,
			waitlisted_event_ids, accepted_event_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			account_type = EXCLUDED.account_type,
			waitlisted_event_ids = EXCLUDED.waitlisted_event_ids,
			accepted_event_ids = EXCLUDED.accepted_event_ids,
			updated_at = now()`,
		user.UserID, user.FullName, user.Age, user.Email, user.Phone, user.AccountType,
		user.WaitlistedEventIDs, user.AcceptedEventIDs,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
