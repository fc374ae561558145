package repository

import (
	"context"
	"errors"

	"github.com/gatherly/events-api/internal/domain/entity"
)

// ErrDuplicateRegistration is returned by Create when the (event, user) pair
// already exists. Implementations map the storage layer's unique constraint
// violation to this error so concurrent duplicate attempts resolve to
// exactly one success.
var ErrDuplicateRegistration = errors.New("duplicate registration")

// RegistrationRepository defines the interface for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, r *entity.EventRegistration) error
	ListByEventID(ctx context.Context, eventID string) ([]entity.EventRegistration, error)
	ListByUserID(ctx context.Context, userID string) ([]entity.EventRegistration, error)
}
