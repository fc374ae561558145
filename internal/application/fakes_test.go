package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
)

// memStore is an in-memory stand-in for all three repositories, honoring
// the same uniqueness and cascade semantics as the Postgres schema.
type memStore struct {
	mu     sync.Mutex
	users  []*entity.User
	events []*entity.Event
	regs   []*entity.EventRegistration
	nextID int
	now    time.Time
}

func newMemStore() *memStore {
	return &memStore{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

// --- repository.UserRepository

func (s *memStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.users {
		if e.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	u.ID = s.id("user")
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users = append(s.users, &cp)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// addUser seeds a user directly, bypassing hashing.
func (s *memStore) addUser(username, email, passwordHash string) *entity.User {
	u := &entity.User{Username: username, Email: email, Password: passwordHash}
	_ = s.Create(context.Background(), u)
	return u
}

// --- eventRepo adapts memStore to repository.EventRepository. A separate
// type because Create collides with the user repository method set.

type eventRepo struct{ *memStore }

func (s eventRepo) Create(_ context.Context, e *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id("event")
	e.CreatedAt = s.tick()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

func (s eventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s eventRepo) List(_ context.Context, f repository.EventFilter) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.Event{}
	for _, e := range s.events {
		if f.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && e.Date.After(*f.DateTo) {
			continue
		}
		if f.LocationContains != "" && !strings.Contains(strings.ToLower(e.Location), strings.ToLower(f.LocationContains)) {
			continue
		}
		if f.Organizer != "" && e.Organizer != f.Organizer {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (s eventRepo) ListByOrganizerID(_ context.Context, organizerID string) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.Event{}
	for _, e := range s.events {
		if e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s eventRepo) Update(_ context.Context, e *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.events {
		if stored.ID == e.ID {
			stored.Title = e.Title
			stored.Description = e.Description
			stored.Date = e.Date
			stored.Location = e.Location
			stored.UpdatedAt = s.tick()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s eventRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			// cascade, as the schema declares
			kept := s.regs[:0]
			for _, r := range s.regs {
				if r.EventID != id {
					kept = append(kept, r)
				}
			}
			s.regs = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

// addEvent seeds an event owned by the given user.
func (s *memStore) addEvent(title string, date time.Time, location string, organizer *entity.User) *entity.Event {
	e := &entity.Event{
		Title:       title,
		Description: title + " description",
		Date:        date,
		Location:    location,
		OrganizerID: organizer.ID,
		Organizer:   organizer.Username,
	}
	_ = eventRepo{s}.Create(context.Background(), e)
	return e
}

// --- regRepo adapts memStore to repository.RegistrationRepository.

type regRepo struct{ *memStore }

func (s regRepo) Create(_ context.Context, r *entity.EventRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.regs {
		if existing.EventID == r.EventID && existing.UserID == r.UserID {
			return repository.ErrDuplicateRegistration
		}
	}
	r.ID = s.id("reg")
	r.RegisteredAt = s.tick()
	cp := *r
	s.regs = append(s.regs, &cp)
	return nil
}

func (s regRepo) ListByEventID(_ context.Context, eventID string) ([]entity.EventRegistration, error) {
	return s.listRegs(func(r *entity.EventRegistration) bool { return r.EventID == eventID }), nil
}

func (s regRepo) ListByUserID(_ context.Context, userID string) ([]entity.EventRegistration, error) {
	return s.listRegs(func(r *entity.EventRegistration) bool { return r.UserID == userID }), nil
}

func (s regRepo) listRegs(match func(*entity.EventRegistration) bool) []entity.EventRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.EventRegistration{}
	for _, r := range s.regs { // insertion order == registration order
		if !match(r) {
			continue
		}
		cp := *r
		for _, e := range s.events {
			if e.ID == r.EventID {
				cp.EventTitle = e.Title
			}
		}
		for _, u := range s.users {
			if u.ID == r.UserID {
				cp.Username = u.Username
			}
		}
		out = append(out, cp)
	}
	return out
}

// --- capturing publisher

type capturePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

var (
	_ repository.UserRepository         = (*memStore)(nil)
	_ repository.EventRepository        = eventRepo{}
	_ repository.RegistrationRepository = regRepo{}
)
