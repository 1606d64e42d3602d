package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"admitd/internal/domain"
	"admitd/internal/domain/entities"
	"admitd/internal/ports/output"
)

var _ output.WaitlistRepository = (*WaitlistRepository)(nil)

type WaitlistRepository struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

const entryColumns = `event_id, user_id, joined_at, status, accepted_at, notes,
	event_name, user_name, latitude, longitude, created_at, updated_at`

func (r *WaitlistRepository) Upsert(ctx context.Context, entry *entities.WaitlistEntry) error {
	q := querierFrom(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO waitlist_entries (event_id, user_id, joined_at, status, accepted_at,
			notes, event_name, user_name, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_id, user_id) DO UPDATE SET
			joined_at = EXCLUDED.joined_at,
			status = EXCLUDED.status,
			accepted_at = EXCLUDED.accepted_at,
			notes = EXCLUDED.notes,
			event_name = EXCLUDED.event_name,
			user_name = EXCLUDED.user_name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = now()`,
		entry.EventID, entry.UserID, timeToPgtype(entry.JoinedAt), entry.Status,
		timePtrToPgtype(entry.AcceptedAt), entry.Notes, entry.EventName, entry.UserName,
		float64PtrToPgtype(entry.Latitude), float64PtrToPgtype(entry.Longitude),
	)
	if err != nil {
		return fmt.Errorf("upsert waitlist entry: %w", err)
	}
	return nil
}

// FindByEventIDAndUserID returns (nil, nil) when the user has no entry for
// the event. Callers use the absence to tell first joins from rejoins.
func (r *WaitlistRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.WaitlistEntry, error) {
	q := querierFrom(ctx, r.pool)
	entry, err := scanEntry(q.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM waitlist_entries WHERE event_id = $1 AND user_id = $2`, entryColumns),
		eventID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waitlist entry: %w", err)
	}
	return entry, nil
}

func (r *WaitlistRepository) FindByEventIDAndStatus(ctx context.Context, eventID, status string) ([]entities.WaitlistEntry, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM waitlist_entries WHERE event_id = $1 AND status = $2 ORDER BY joined_at`, entryColumns),
		eventID, status)
	if err != nil {
		return nil, fmt.Errorf("get waitlist entries by status: %w", err)
	}
	return collectEntries(rows)
}

func (r *WaitlistRepository) FindByUserID(ctx context.Context, userID string) ([]entities.WaitlistEntry, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM waitlist_entries WHERE user_id = $1 ORDER BY joined_at`, entryColumns), userID)
	if err != nil {
		return nil, fmt.Errorf("get waitlist entries by user: %w", err)
	}
	return collectEntries(rows)
}

func (r *WaitlistRepository) UpdateStatus(ctx context.Context, eventID, userID, status string, acceptedAt *time.Time) error {
	q := querierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE waitlist_entries
		SET status = $3, accepted_at = COALESCE($4, accepted_at), updated_at = now()
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID, status, timePtrToPgtype(acceptedAt))
	if err != nil {
		return fmt.Errorf("update waitlist entry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotOnWaitlist
	}
	return nil
}

func scanEntry(row pgx.Row) (*entities.WaitlistEntry, error) {
	var e entities.WaitlistEntry
	var joinedAt, acceptedAt, createdAt, updatedAt pgtype.Timestamptz
	var lat, lon pgtype.Float8
	err := row.Scan(
		&e.EventID, &e.UserID, &joinedAt, &e.Status, &acceptedAt, &e.Notes,
		&e.EventName, &e.UserName, &lat, &lon, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.JoinedAt = pgtypeTimestamptzToTime(joinedAt)
	e.AcceptedAt = pgtypeToTimePtr(acceptedAt)
	e.Latitude = pgtypeToFloat64Ptr(lat)
	e.Longitude = pgtypeToFloat64Ptr(lon)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]entities.WaitlistEntry, error) {
	defer rows.Close()
	var out []entities.WaitlistEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waitlist entry: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waitlist entries: %w", err)
	}
	return out, nil
}
