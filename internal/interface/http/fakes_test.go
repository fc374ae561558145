package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gatherly/events-api/internal/domain/entity"
	"github.com/gatherly/events-api/internal/domain/repository"
)

// fakeStore backs the handler tests with the same uniqueness and cascade
// semantics the Postgres schema enforces.
type fakeStore struct {
	mu     sync.Mutex
	users  []*entity.User
	events []*entity.Event
	regs   []*entity.EventRegistration
	nextID int
	now    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *fakeStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *fakeStore) Create(_ context.Context, u *entity.User) error {
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

func (s *fakeStore) GetByID(_ context.Context, id string) (*entity.User, error) {
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

func (s *fakeStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
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

type fakeEventRepo struct{ *fakeStore }

func (s fakeEventRepo) Create(_ context.Context, e *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id("event")
	e.CreatedAt = s.tick()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

func (s fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
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

func (s fakeEventRepo) List(_ context.Context, f repository.EventFilter) ([]entity.Event, error) {
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

func (s fakeEventRepo) ListByOrganizerID(_ context.Context, organizerID string) ([]entity.Event, error) {
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

func (s fakeEventRepo) Update(_ context.Context, e *entity.Event) error {
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

func (s fakeEventRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
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

type fakeRegRepo struct{ *fakeStore }

func (s fakeRegRepo) Create(_ context.Context, r *entity.EventRegistration) error {
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

func (s fakeRegRepo) ListByEventID(_ context.Context, eventID string) ([]entity.EventRegistration, error) {
	return s.listRegs(func(r *entity.EventRegistration) bool { return r.EventID == eventID }), nil
}

func (s fakeRegRepo) ListByUserID(_ context.Context, userID string) ([]entity.EventRegistration, error) {
	return s.listRegs(func(r *entity.EventRegistration) bool { return r.UserID == userID }), nil
}

func (s fakeRegRepo) listRegs(match func(*entity.EventRegistration) bool) []entity.EventRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.EventRegistration{}
	for _, r := range s.regs {
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

// dropPublisher swallows jobs; handler tests do not assert on mail.
type dropPublisher struct{}

func (dropPublisher) PublishJSON(context.Context, any) error { return nil }

var (
	_ repository.UserRepository         = (*fakeStore)(nil)
	_ repository.EventRepository        = fakeEventRepo{}
	_ repository.RegistrationRepository = fakeRegRepo{}
)
