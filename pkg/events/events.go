package events

import (
	"context"
	"time"
)

// Booking lifecycle event types.
const (
	TypeBookingCreated      = "booking.created"
	TypeBookingStateChanged = "booking.state_changed"
	TypeBookingDeleted      = "booking.deleted"
	TypeWeeksRecalculated   = "weeks.recalculated"
)

// BookingEvent is published after a booking group mutation commits.
// Publishing is best-effort: failures are logged, never rolled back into
// the request, because booking state in the store is the source of truth.
type BookingEvent struct {
	Type       string    `json:"type"`
	FamilyID   string    `json:"family_id"`
	KidID      string    `json:"kid_id,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	GroupID    string    `json:"booking_group_id,omitempty"`
	State      string    `json:"state,omitempty"`
	WeekIDs    []string  `json:"week_ids,omitempty"`
	TotalWeeks int       `json:"total_weeks,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}
