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

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `event_id, name, event_date, registration_opens, registration_closes,
	max_spots, cost, geolocation_enabled, image_paths, organizer_id,
	waiting_list, accepted_from_waitlist, registered_users, signup_count,
	created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	q := querierFrom(ctx, r.pool)
	row := q.QueryRow(ctx, `
		INSERT INTO events (event_id, name, event_date, registration_opens, registration_closes,
			max_spots, cost, geolocation_enabled, image_paths, organizer_id,
			waiting_list, accepted_from_waitlist, registered_users, signup_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		event.EventID, event.Name, event.EventDate, event.RegistrationOpens, event.RegistrationCloses,
		event.MaxSpots, event.Cost, event.GeolocationEnabled, event.ImagePaths, event.OrganizerID,
		event.WaitingList, event.AcceptedFromWaitlist, event.RegisteredUsers, event.SignupCount,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	return r.findOne(ctx, fmt.Sprintf(`SELECT %s FROM events WHERE event_id = $1`, eventColumns), id)
}

func (r *EventRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.Event, error) {
	return r.findOne(ctx, fmt.Sprintf(`SELECT %s FROM events WHERE event_id = $1 FOR UPDATE`, eventColumns), id)
}

func (r *EventRepository) findOne(ctx context.Context, sql string, id string) (*entities.Event, error) {
	q := querierFrom(ctx, r.pool)
	event, err := scanEvent(q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) FindByOrganizerID(ctx context.Context, organizerID string) ([]entities.Event, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`, eventColumns), organizerID)
	if err != nil {
		return nil, fmt.Errorf("get events by organizer id: %w", err)
	}
	return collectEvents(rows)
}

func (r *EventRepository) FindByMemberID(ctx context.Context, userID string) ([]entities.Event, error) {
	q := querierFrom(ctx, r.pool)
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM events
		 WHERE $1 = ANY(waiting_list)
		    OR $1 = ANY(accepted_from_waitlist)
		    OR $1 = ANY(registered_users)`, eventColumns), userID)
	if err != nil {
		return nil, fmt.Errorf("get events by member id: %w", err)
	}
	return collectEvents(rows)
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	q := querierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE events SET
			name = $2, event_date = $3, registration_opens = $4, registration_closes = $5,
			max_spots = $6, cost = $7, geolocation_enabled = $8, image_paths = $9,
			waiting_list = $10, accepted_from_waitlist = $11, registered_users = $12,
			signup_count = $13, updated_at = now()
		WHERE event_id = $1`,
		event.EventID, event.Name, event.EventDate, event.RegistrationOpens, event.RegistrationCloses,
		event.MaxSpots, event.Cost, event.GeolocationEnabled, event.ImagePaths,
		event.WaitingList, event.AcceptedFromWaitlist, event.RegisteredUsers, event.SignupCount,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	q := querierFrom(ctx, r.pool)
	tag, err := q.Exec(ctx, `DELETE FROM events WHERE event_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var e entities.Event
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&e.EventID, &e.Name, &e.EventDate, &e.RegistrationOpens, &e.RegistrationCloses,
		&e.MaxSpots, &e.Cost, &e.GeolocationEnabled, &e.ImagePaths, &e.OrganizerID,
		&e.WaitingList, &e.AcceptedFromWaitlist, &e.RegisteredUsers, &e.SignupCount,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]entities.Event, error) {
	defer rows.Close()
	var out []entities.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
