package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
)

const eventColumns = `
	e.id, e.title, e.description, e.date, e.location,
	e.organizer_id, u.username, e.created_at, e.updated_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, date, location, organizer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Description, e.Date, e.Location, e.OrganizerID)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1
	`, id)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRep(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List applies the composed filter. Every set field contributes one AND
// clause; bounds on date are inclusive.
func (r *EventRepository) List(ctx context.Context, f repository.EventFilter) ([]entity.Event, error) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Search != "" {
		add("e.title ILIKE $%d", "%"+escapeLike(f.Search)+"%")
	}
	if f.DateFrom != nil {
		add("e.date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("e.date <= $%d", *f.DateTo)
	}
	if f.LocationContains != "" {
		add("e.location ILIKE $%d", "%"+escapeLike(f.LocationContains)+"%")
	}
	if f.Organizer != "" {
		add("u.username = $%d", f.Organizer)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id`
	if len(clauses) > 0 {
		query += "\n\t\tWHERE " + strings.Join(clauses, " AND ")
	}
	query += "\n\t\tORDER BY e.date, e.created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.organizer_id = $1
		ORDER BY e.date, e.created_at
	`, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Update replaces the mutable fields. organizer_id is deliberately absent
// from the SET list: the organizer is immutable after creation.
func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	e.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, date = $3, location = $4, updated_at = $5
		WHERE id = $6
	`, e.Title, e.Description, e.Date, e.Location, e.UpdatedAt, e.ID)
	if err != nil {
		if isInvalidTextRep(err) {
			return repository.ErrNotFound
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the event; its registrations go with it via the declared
// ON DELETE CASCADE on event_registrations.event_id.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRep(err) {
			return repository.ErrNotFound
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.OrganizerID, &e.Organizer, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func collectEvents(rows pgx.Rows) ([]entity.Event, error) {
	events := []entity.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

var _ repository.EventRepository = (*EventRepository)(nil)
