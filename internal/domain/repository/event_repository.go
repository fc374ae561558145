package repository

import (
	"context"
	"time"

	"github.com/gatherly/events-api/internal/domain/entity"
)

// EventFilter narrows the event listing. Zero values mean "no constraint";
// all set fields compose with AND.
type EventFilter struct {
	Search           string     // case-insensitive substring on title
	DateFrom         *time.Time // inclusive lower bound on date
	DateTo           *time.Time // inclusive upper bound on date
	LocationContains string     // case-insensitive substring on location
	Organizer        string     // exact organizer username
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, f EventFilter) ([]entity.Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
}
