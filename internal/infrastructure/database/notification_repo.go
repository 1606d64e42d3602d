package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"admitd/internal/domain/entities"
	"admitd/internal/ports/output"
)

var _ output.NotificationRepository = (*NotificationRepository)(nil)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Add(ctx context.Context, records []entities.NotificationRecord) error {
	q := querierFrom(ctx, r.pool)
	for i := range records {
		rec := &records[i]
		_, err := q.Exec(ctx, `
			INSERT INTO notifications (id, event_id, message, sent_by, user_id, sent_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			rec.ID, rec.EventID, rec.Message, rec.SentBy, rec.UserID,
			pgtype.Timestamptz{Time: rec.Timestamp, Valid: true},
		)
		if err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	return nil
}

func (r *NotificationRepository) FindByEventID(ctx context.Context, eventID string) ([]entities.NotificationRecord, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, event_id, message, sent_by, user_id, sent_at
		FROM notifications WHERE event_id = $1 ORDER BY sent_at`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get notifications by event: %w", err)
	}
	return collectRecords(rows)
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID string) ([]entities.NotificationRecord, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, event_id, message, sent_by, user_id, sent_at
		FROM notifications WHERE user_id = $1 ORDER BY sent_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("get notifications by user: %w", err)
	}
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]entities.NotificationRecord, error) {
	defer rows.Close()
	var out []entities.NotificationRecord
	for rows.Next() {
		var rec entities.NotificationRecord
		var sentAt pgtype.Timestamptz
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.Message, &rec.SentBy, &rec.UserID, &sentAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		rec.Timestamp = pgtypeTimestamptzToTime(sentAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, nil
}
