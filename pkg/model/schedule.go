package model

import (
	"time"

	"camplan/pkg/dates"
)

// Booking states. Transitions between them are explicit user actions;
// nothing promotes a booking automatically.
const (
	StateIdea      = "idea"
	StatePreferred = "preferred"
	StateBooked    = "booked"
)

// Week is one bookable Monday-to-Friday slot of summer. Weeks are derived
// entirely from kid school dates and trips and are never hand-edited.
type Week struct {
	ID         string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FamilyID   string     `json:"family_id" bson:"family_id" validate:"required,min=1,max=100"`
	WeekNumber int        `json:"week_number" bson:"week_number" validate:"required,min=1"`
	StartDate  dates.Date `json:"start_date" bson:"start_date" validate:"required"`
	EndDate    dates.Date `json:"end_date" bson:"end_date" validate:"required"`
	IsBlocked  bool       `json:"is_blocked" bson:"is_blocked"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Booking assigns one kid to one session for one week. A multi-week
// session produces one booking per occupied week; the rows share a
// BookingGroupID and a contiguous 1..TotalWeeks WeekOfSession sequence.
// Single-week bookings are groups of size one.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FamilyID        string    `json:"family_id" bson:"family_id" validate:"required,min=1,max=100"`
	KidID           string    `json:"kid_id" bson:"kid_id" validate:"required,mongodb"`
	SessionID       string    `json:"session_id" bson:"session_id" validate:"required,mongodb"`
	WeekID          string    `json:"week_id" bson:"week_id" validate:"required,mongodb"`
	State           string    `json:"state" bson:"state" validate:"required,oneof=idea preferred booked"`
	BookingGroupID  string    `json:"booking_group_id,omitempty" bson:"booking_group_id,omitempty" validate:"omitempty,max=100"`
	WeekOfSession   int       `json:"week_of_session" bson:"week_of_session" validate:"omitempty,min=1"`
	TotalWeeks      int       `json:"total_weeks" bson:"total_weeks" validate:"omitempty,min=1"`
	PreferenceOrder int       `json:"preference_order" bson:"preference_order" validate:"omitempty,min=0,max=100"`
	Friends         []string  `json:"friends_attending,omitempty" bson:"friends_attending,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	UsesEarlyCare   bool      `json:"uses_early_care" bson:"uses_early_care"`
	UsesLateCare    bool      `json:"uses_late_care" bson:"uses_late_care"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	CalendarEventID string    `json:"calendar_event_id,omitempty" bson:"calendar_event_id,omitempty" validate:"omitempty,max=100"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// GroupID returns the booking's group identifier, falling back to the
// booking's own id for rows written before grouping existed.
func (b *Booking) GroupID() string {
	if b.BookingGroupID != "" {
		return b.BookingGroupID
	}
	return b.ID
}

// BookingUpdate carries the user-editable detail fields. Week, kid,
// session and state are immutable here; state moves through the dedicated
// transition operation and the rest through delete-and-recreate.
type BookingUpdate struct {
	PreferenceOrder *int      `json:"preference_order,omitempty" validate:"omitempty,min=0,max=100"`
	Friends         *[]string `json:"friends_attending,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	UsesEarlyCare   *bool     `json:"uses_early_care,omitempty"`
	UsesLateCare    *bool     `json:"uses_late_care,omitempty"`
	Notes           *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ValidStates enumerates every booking state in workflow order.
func ValidStates() []string {
	return []string{StateIdea, StatePreferred, StateBooked}
}

func IsValidState(s string) bool {
	return s == StateIdea || s == StatePreferred || s == StateBooked
}
