package entity

import "time"

// Event represents an event such as a conference or meetup.
// Organizer is the username of the owning user, resolved on read;
// OrganizerID is the owning column and is immutable after creation.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Location    string
	OrganizerID string
	Organizer   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOrganizedBy is the single authorization predicate for event mutation:
// writes require the caller to be the organizer, reads are open to anyone.
func (e *Event) IsOrganizedBy(userID string) bool {
	return e.OrganizerID == userID
}
