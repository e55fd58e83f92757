package calendar

import (
	"context"
	"time"

	"camplan/pkg/dates"
)

// Event is one booked camp week on the family calendar. Events are
// written by the booking workflow after a state change commits and are
// served back as an iCalendar feed; the scheduling core never depends on
// whether they exist.
type Event struct {
	UID         string     `json:"uid" bson:"_id"`
	FamilyID    string     `json:"family_id" bson:"family_id"`
	Summary     string     `json:"summary" bson:"summary"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	Start       dates.Date `json:"start" bson:"start"`
	End         dates.Date `json:"end" bson:"end"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// Store persists calendar events. Implementations are best-effort
// collaborators: callers treat failures as warnings, never as reasons to
// roll back booking state.
type Store interface {
	Put(ctx context.Context, event *Event) error
	Delete(ctx context.Context, familyID, uid string) error
	ListByFamily(ctx context.Context, familyID string) ([]*Event, error)
}
