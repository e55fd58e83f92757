package model

import (
	"time"

	"camplan/pkg/dates"
)

type Camp struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FamilyID  string    `json:"family_id" bson:"family_id" validate:"required,min=1,max=100"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=200"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=300"`
	URL       string    `json:"url,omitempty" bson:"url,omitempty" validate:"omitempty,url,max=500"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CampUpdate struct {
	Name     string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=300"`
	URL      *string `json:"url,omitempty" validate:"omitempty,url,max=500"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Session is a camp's bookable program. The date pair may be absent for
// camps whose sites only list vague availability; duration then falls back
// to DurationWeeks (user-set) or a single week.
type Session struct {
	ID                   string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FamilyID             string     `json:"family_id" bson:"family_id" validate:"required,min=1,max=100"`
	CampID               string     `json:"camp_id" bson:"camp_id" validate:"required,mongodb"`
	Name                 string     `json:"name" bson:"name" validate:"required,min=1,max=200"`
	StartDate            dates.Date `json:"session_start_date,omitempty" bson:"session_start_date,omitempty" validate:"omitempty"`
	EndDate              dates.Date `json:"session_end_date,omitempty" bson:"session_end_date,omitempty" validate:"omitempty"`
	DurationWeeks        int        `json:"duration_weeks" bson:"duration_weeks" validate:"omitempty,min=1,max=12"`
	AgeMin               *int       `json:"age_min,omitempty" bson:"age_min,omitempty" validate:"omitempty,min=0,max=18"`
	AgeMax               *int       `json:"age_max,omitempty" bson:"age_max,omitempty" validate:"omitempty,min=0,max=18"`
	GradeMin             *int       `json:"grade_min,omitempty" bson:"grade_min,omitempty" validate:"omitempty,min=-1,max=12"`
	GradeMax             *int       `json:"grade_max,omitempty" bson:"grade_max,omitempty" validate:"omitempty,min=-1,max=12"`
	StartTime            string     `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"omitempty,valid_time"`
	EndTime              string     `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty,valid_time"`
	Cost                 *float64   `json:"cost,omitempty" bson:"cost,omitempty" validate:"omitempty,min=0"`
	EarlyCareAvailable   bool       `json:"early_care_available" bson:"early_care_available"`
	EarlyCareCost        *float64   `json:"early_care_cost,omitempty" bson:"early_care_cost,omitempty" validate:"omitempty,min=0"`
	LateCareAvailable    bool       `json:"late_care_available" bson:"late_care_available"`
	LateCareCost         *float64   `json:"late_care_cost,omitempty" bson:"late_care_cost,omitempty" validate:"omitempty,min=0"`
	URL                  string     `json:"url,omitempty" bson:"url,omitempty" validate:"omitempty,url,max=500"`
	RegistrationOpenDate dates.Date `json:"registration_open_date,omitempty" bson:"registration_open_date,omitempty" validate:"omitempty"`
	CreatedAt            time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// HasDates reports whether both session boundary dates are present.
func (s *Session) HasDates() bool {
	return !s.StartDate.IsZero() && !s.EndDate.IsZero()
}

// OverlapsWeek reports whether the session is relevant to the given week.
// A session without dates cannot be ruled out and always matches.
// Otherwise the session matches iff its span shares at least one calendar
// day with the week, boundary days included.
func (s *Session) OverlapsWeek(week *Week) bool {
	if !s.HasDates() {
		return true
	}
	return dates.Overlaps(s.StartDate, s.EndDate, week.StartDate, week.EndDate)
}

// EffectiveDuration is the number of weeks a booking of this session
// occupies, never less than one.
func (s *Session) EffectiveDuration() int {
	if s.DurationWeeks < 1 {
		return 1
	}
	return s.DurationWeeks
}

type SessionUpdate struct {
	Name                 string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	StartDate            *dates.Date `json:"session_start_date,omitempty" validate:"omitempty"`
	EndDate              *dates.Date `json:"session_end_date,omitempty" validate:"omitempty"`
	DurationWeeks        *int        `json:"duration_weeks,omitempty" validate:"omitempty,min=1,max=12"`
	AgeMin               *int        `json:"age_min,omitempty" validate:"omitempty,min=0,max=18"`
	AgeMax               *int        `json:"age_max,omitempty" validate:"omitempty,min=0,max=18"`
	GradeMin             *int        `json:"grade_min,omitempty" validate:"omitempty,min=-1,max=12"`
	GradeMax             *int        `json:"grade_max,omitempty" validate:"omitempty,min=-1,max=12"`
	StartTime            *string     `json:"start_time,omitempty" validate:"omitempty,valid_time"`
	EndTime              *string     `json:"end_time,omitempty" validate:"omitempty,valid_time"`
	Cost                 *float64    `json:"cost,omitempty" validate:"omitempty,min=0"`
	EarlyCareAvailable   *bool       `json:"early_care_available,omitempty"`
	EarlyCareCost        *float64    `json:"early_care_cost,omitempty" validate:"omitempty,min=0"`
	LateCareAvailable    *bool       `json:"late_care_available,omitempty"`
	LateCareCost         *float64    `json:"late_care_cost,omitempty" validate:"omitempty,min=0"`
	URL                  *string     `json:"url,omitempty" validate:"omitempty,url,max=500"`
	RegistrationOpenDate *dates.Date `json:"registration_open_date,omitempty" validate:"omitempty"`
}
