package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// Create inserts the registration and lets the unique (event_id, user_id)
// constraint arbitrate concurrent duplicates: the loser gets
// repository.ErrDuplicateRegistration, never a second row.
func (r *RegistrationRepository) Create(ctx context.Context, reg *entity.EventRegistration) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO event_registrations (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, registered_at
	`, reg.EventID, reg.UserID)

	if err := row.Scan(&reg.ID, &reg.RegisteredAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateRegistration
		}
		if isInvalidTextRep(err) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *RegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]entity.EventRegistration, error) {
	return r.list(ctx, "r.event_id", eventID)
}

func (r *RegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]entity.EventRegistration, error) {
	return r.list(ctx, "r.user_id", userID)
}

func (r *RegistrationRepository) list(ctx context.Context, column, value string) ([]entity.EventRegistration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.event_id, r.user_id, e.title, u.username, r.registered_at
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		JOIN users u ON u.id = r.user_id
		WHERE `+column+` = $1
		ORDER BY r.registered_at, r.id
	`, value)
	if err != nil {
		// a malformed uuid cannot match any row
		if isInvalidTextRep(err) {
			return []entity.EventRegistration{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	regs := []entity.EventRegistration{}
	for rows.Next() {
		var reg entity.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID,
			&reg.EventTitle, &reg.Username, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		// pgx may defer execution errors to iteration
		if isInvalidTextRep(err) {
			return []entity.EventRegistration{}, nil
		}
		return nil, err
	}
	return regs, nil
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
