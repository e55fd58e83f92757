package model

import (
	"testing"
	"time"

	"camplan/pkg/dates"
)

func week(start dates.Date) *Week {
	return &Week{
		WeekNumber: 1,
		StartDate:  start,
		EndDate:    start.AddDays(4),
	}
}

func TestSessionOverlapsWeek(t *testing.T) {
	w := week(dates.New(2026, time.June, 15)) // 6/15 - 6/19

	tests := []struct {
		name    string
		start   dates.Date
		end     dates.Date
		matches bool
	}{
		{
			name:    "session ends before week starts",
			start:   dates.New(2026, time.June, 7),
			end:     dates.New(2026, time.June, 11),
			matches: false,
		},
		{
			name:    "session starts after week ends",
			start:   dates.New(2026, time.June, 22),
			end:     dates.New(2026, time.June, 26),
			matches: false,
		},
		{
			name:    "session exactly matches week",
			start:   dates.New(2026, time.June, 15),
			end:     dates.New(2026, time.June, 19),
			matches: true,
		},
		{
			name:    "session starts before and ends during week",
			start:   dates.New(2026, time.June, 10),
			end:     dates.New(2026, time.June, 17),
			matches: true,
		},
		{
			name:    "session starts during and ends after week",
			start:   dates.New(2026, time.June, 17),
			end:     dates.New(2026, time.June, 24),
			matches: true,
		},
		{
			name:    "session contains week",
			start:   dates.New(2026, time.June, 10),
			end:     dates.New(2026, time.June, 25),
			matches: true,
		},
		{
			name:    "week contains session",
			start:   dates.New(2026, time.June, 16),
			end:     dates.New(2026, time.June, 18),
			matches: true,
		},
		{
			name:    "session ends on week start day",
			start:   dates.New(2026, time.June, 10),
			end:     dates.New(2026, time.June, 15),
			matches: true,
		},
		{
			name:    "session starts on week end day",
			start:   dates.New(2026, time.June, 19),
			end:     dates.New(2026, time.June, 25),
			matches: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{StartDate: tt.start, EndDate: tt.end}
			if got := s.OverlapsWeek(w); got != tt.matches {
				t.Errorf("session [%s - %s] vs week [%s - %s]: got %v, want %v",
					tt.start, tt.end, w.StartDate, w.EndDate, got, tt.matches)
			}
		})
	}
}

func TestSessionWithoutDatesAlwaysMatches(t *testing.T) {
	w := week(dates.New(2026, time.June, 15))

	undated := &Session{}
	if !undated.OverlapsWeek(w) {
		t.Error("session with no dates should match any week")
	}

	half := &Session{StartDate: dates.New(2026, time.June, 1)}
	if !half.OverlapsWeek(w) {
		t.Error("session with only a start date should match any week")
	}
}

func TestSessionEffectiveDuration(t *testing.T) {
	if got := (&Session{}).EffectiveDuration(); got != 1 {
		t.Errorf("unset duration = %d, want 1", got)
	}
	if got := (&Session{DurationWeeks: 3}).EffectiveDuration(); got != 3 {
		t.Errorf("duration = %d, want 3", got)
	}
}

func TestBookingGroupIDFallback(t *testing.T) {
	b := &Booking{ID: "abc123"}
	if got := b.GroupID(); got != "abc123" {
		t.Errorf("ungrouped booking GroupID = %q, want its own id", got)
	}
	b.BookingGroupID = "group-1"
	if got := b.GroupID(); got != "group-1" {
		t.Errorf("grouped booking GroupID = %q, want group-1", got)
	}
}

func TestTripBlocks(t *testing.T) {
	trip := &Trip{
		StartDate: dates.New(2026, time.July, 3),
		EndDate:   dates.New(2026, time.July, 10),
	}

	if !trip.Blocks(dates.New(2026, time.June, 29), dates.New(2026, time.July, 3)) {
		t.Error("trip starting on the week's last day should block it")
	}
	if !trip.Blocks(dates.New(2026, time.July, 6), dates.New(2026, time.July, 10)) {
		t.Error("trip covering the whole week should block it")
	}
	if trip.Blocks(dates.New(2026, time.July, 13), dates.New(2026, time.July, 17)) {
		t.Error("trip ending before the week should not block it")
	}
}
