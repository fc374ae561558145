package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
)

// EventService implements event CRUD. Mutations are organizer-gated by the
// entity's IsOrganizedBy predicate, checked exactly once per operation.
type EventService struct {
	Events repository.EventRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewEventService(events repository.EventRepository, users repository.UserRepository, logger *logrus.Logger) *EventService {
	return &EventService{Events: events, Users: users, Logger: logger}
}

type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
}

// Create records the caller as organizer; any organizer value supplied by
// the client never reaches this layer.
func (s *EventService) Create(ctx context.Context, organizerID string, in EventInput) (*entity.Event, error) {
	organizer, err := s.Users.GetByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	e := &entity.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		OrganizerID: organizer.ID,
		Organizer:   organizer.Username,
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"event_id": e.ID, "organizer": e.Organizer}).Info("event created")
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EventService) List(ctx context.Context, f repository.EventFilter) ([]entity.Event, error) {
	return s.Events.List(ctx, f)
}

// Update replaces every field except the organizer, which is immutable.
func (s *EventService) Update(ctx context.Context, id, callerID string, in EventInput) (*entity.Event, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsOrganizedBy(callerID) {
		return nil, ErrNotOrganizer
	}
	e.Title = in.Title
	e.Description = in.Description
	e.Date = in.Date
	e.Location = in.Location
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the event and, through the schema's cascade, all of its
// registrations.
func (s *EventService) Delete(ctx context.Context, id, callerID string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !e.IsOrganizedBy(callerID) {
		return ErrNotOrganizer
	}
	if err := s.Events.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("event_id", id).Info("event deleted")
	return nil
}

// ListByOrganizer resolves the username first so an unknown organizer is a
// not-found outcome rather than an empty list.
func (s *EventService) ListByOrganizer(ctx context.Context, username string) ([]entity.Event, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, err
	}
	return s.Events.ListByOrganizerID(ctx, u.ID)
}
