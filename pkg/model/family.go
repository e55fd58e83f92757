package model

import (
	"time"

	"camplan/pkg/dates"
)

type Kid struct {
	ID               string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FamilyID         string     `json:"family_id" bson:"family_id" validate:"required,min=1,max=100"`
	Name             string     `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Birthday         dates.Date `json:"birthday,omitempty" bson:"birthday,omitempty" validate:"omitempty"`
	Grade            int        `json:"grade" bson:"grade" validate:"min=-1,max=12"`
	FirstDayOfSchool dates.Date `json:"first_day_of_school,omitempty" bson:"first_day_of_school,omitempty" validate:"omitempty"`
	LastDayOfSchool  dates.Date `json:"last_day_of_school,omitempty" bson:"last_day_of_school,omitempty" validate:"omitempty"`
	Friends          []string   `json:"friends,omitempty" bson:"friends,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// HasSchoolDates reports whether the kid contributes to summer week
// generation. Both boundaries are needed.
func (k *Kid) HasSchoolDates() bool {
	return !k.FirstDayOfSchool.IsZero() && !k.LastDayOfSchool.IsZero()
}

type KidUpdate struct {
	Name             string      `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Birthday         *dates.Date `json:"birthday,omitempty" validate:"omitempty"`
	Grade            *int        `json:"grade,omitempty" validate:"omitempty,min=-1,max=12"`
	FirstDayOfSchool *dates.Date `json:"first_day_of_school,omitempty" validate:"omitempty"`
	LastDayOfSchool  *dates.Date `json:"last_day_of_school,omitempty" validate:"omitempty"`
	Friends          *[]string   `json:"friends,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
}

type Trip struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FamilyID  string     `json:"family_id" bson:"family_id" validate:"required,min=1,max=100"`
	Name      string     `json:"name" bson:"name" validate:"required,min=1,max=200"`
	StartDate dates.Date `json:"start_date" bson:"start_date" validate:"required"`
	EndDate   dates.Date `json:"end_date" bson:"end_date" validate:"required"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Blocks reports whether the trip makes the span [weekStart, weekEnd]
// ineligible for camp, using inclusive day overlap.
func (t *Trip) Blocks(weekStart, weekEnd dates.Date) bool {
	return dates.Overlaps(t.StartDate, t.EndDate, weekStart, weekEnd)
}

type TripUpdate struct {
	Name      string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	StartDate *dates.Date `json:"start_date,omitempty" validate:"omitempty"`
	EndDate   *dates.Date `json:"end_date,omitempty" validate:"omitempty"`
	Notes     *string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
