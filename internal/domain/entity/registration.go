package entity

import "time"

// EventRegistration links one user to one event. The (event, user) pair is
// unique, enforced by the storage layer. EventTitle and Username are resolved
// on read for list responses.
type EventRegistration struct {
	ID           string
	EventID      string
	UserID       string
	EventTitle   string
	Username     string
	RegisteredAt time.Time
}
