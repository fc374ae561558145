package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
	"github.com/gatherly/events-api/pkg/mailer"
)

// JobPublisher hands a notification job to the message queue.
// *helpers.RabbitPublisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RegistrationService implements the attend-an-event workflow.
type RegistrationService struct {
	Registrations repository.RegistrationRepository
	Events        repository.EventRepository
	Users         repository.UserRepository
	Publisher     JobPublisher
	Logger        *logrus.Logger
	MailEnabled   bool
}

func NewRegistrationService(
	registrations repository.RegistrationRepository,
	events repository.EventRepository,
	users repository.UserRepository,
	publisher JobPublisher,
	logger *logrus.Logger,
	mailEnabled bool,
) *RegistrationService {
	return &RegistrationService{
		Registrations: registrations,
		Events:        events,
		Users:         users,
		Publisher:     publisher,
		Logger:        logger,
		MailEnabled:   mailEnabled,
	}
}

// Register creates a registration for the caller. There is no
// exists-then-insert window: the insert itself is attempted and the unique
// (event, user) constraint decides duplicates, so two concurrent attempts
// yield exactly one success. On success a confirmation email job is
// enqueued; enqueue failure is logged and swallowed, the registration
// stands either way.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID string) (*entity.EventRegistration, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.IsOrganizedBy(userID) {
		return nil, ErrOwnEvent
	}

	reg := &entity.EventRegistration{EventID: eventID, UserID: userID}
	if err := s.Registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	reg.EventTitle = e.Title

	s.notify(ctx, e, userID)
	return reg, nil
}

func (s *RegistrationService) notify(ctx context.Context, e *entity.Event, userID string) {
	if s.Publisher == nil || !s.MailEnabled {
		return
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("skip confirmation email, user lookup failed")
		return
	}
	reg := mailer.NewRegistrationConfirmation(e, u)
	if err := s.Publisher.PublishJSON(ctx, reg); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"event_id": e.ID,
			"user_id":  userID,
		}).Warn("failed to enqueue confirmation email")
	}
}

// ListForEvent returns an event's registrations in registration order.
// Only the organizer may see them.
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID, callerID string) ([]entity.EventRegistration, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !e.IsOrganizedBy(callerID) {
		return nil, ErrNotOrganizer
	}
	return s.Registrations.ListByEventID(ctx, eventID)
}

// ListForUser returns the caller's own registrations.
func (s *RegistrationService) ListForUser(ctx context.Context, userID string) ([]entity.EventRegistration, error) {
	return s.Registrations.ListByUserID(ctx, userID)
}
