package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNextMonday(t *testing.T) {
	tests := []struct {
		name string
		from Date
		want Date
	}{
		{
			name: "wednesday advances to next monday",
			from: New(2026, time.June, 10), // Wednesday
			want: New(2026, time.June, 15),
		},
		{
			name: "sunday advances one day",
			from: New(2026, time.June, 14),
			want: New(2026, time.June, 15),
		},
		{
			name: "monday advances a full week, never zero days",
			from: New(2026, time.June, 15),
			want: New(2026, time.June, 22),
		},
		{
			name: "saturday advances two days",
			from: New(2026, time.June, 13),
			want: New(2026, time.June, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMonday(tt.from)
			if !got.Equal(tt.want) {
				t.Errorf("NextMonday(%s) = %s, want %s", tt.from, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("NextMonday(%s) returned a %s", tt.from, got.Weekday())
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	start := New(2026, time.June, 15)
	if got := DaysBetween(start, start); got != 1 {
		t.Errorf("same-day span = %d days, want 1", got)
	}
	if got := DaysBetween(start, start.AddDays(4)); got != 5 {
		t.Errorf("monday-friday span = %d days, want 5", got)
	}
}

func TestDurationWeeks(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		end   Date
		want  int
	}{
		{
			name:  "three calendar days is one week",
			start: New(2026, time.June, 16), // Tuesday
			end:   New(2026, time.June, 18),
			want:  1,
		},
		{
			name:  "six calendar days rounds up to two weeks",
			start: New(2026, time.June, 16),
			end:   New(2026, time.June, 21),
			want:  2,
		},
		{
			name:  "single monday-friday week",
			start: New(2026, time.June, 15),
			end:   New(2026, time.June, 19),
			want:  1,
		},
		{
			name:  "two monday-friday weeks skip the weekend between",
			start: New(2026, time.June, 15),
			end:   New(2026, time.June, 26), // Friday of the following week
			want:  2,
		},
		{
			name:  "thursday to sunday counts every day",
			start: New(2026, time.June, 18),
			end:   New(2026, time.June, 21),
			want:  1,
		},
		{
			name:  "three monday-friday weeks",
			start: New(2026, time.June, 15),
			end:   New(2026, time.July, 3),
			want:  3,
		},
		{
			name:  "single day",
			start: New(2026, time.June, 17),
			end:   New(2026, time.June, 17),
			want:  1,
		},
		{
			name:  "missing start date defaults to one week",
			start: Date{},
			end:   New(2026, time.June, 19),
			want:  1,
		},
		{
			name:  "missing end date defaults to one week",
			start: New(2026, time.June, 15),
			end:   Date{},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationWeeks(tt.start, tt.end); got != tt.want {
				t.Errorf("DurationWeeks(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDurationWeeksNeverBelowOne(t *testing.T) {
	start := New(2026, time.June, 1)
	for days := 0; days < 30; days++ {
		if got := DurationWeeks(start, start.AddDays(days)); got < 1 {
			t.Fatalf("span of %d days produced %d weeks", days+1, got)
		}
	}
}

func TestOverlaps(t *testing.T) {
	weekStart := New(2026, time.June, 15)
	weekEnd := New(2026, time.June, 19)

	if Overlaps(New(2026, time.June, 7), New(2026, time.June, 11), weekStart, weekEnd) {
		t.Error("span ending before the week should not overlap")
	}
	if !Overlaps(New(2026, time.June, 19), New(2026, time.June, 25), weekStart, weekEnd) {
		t.Error("span sharing the week's last day should overlap")
	}
	if !Overlaps(New(2026, time.June, 10), New(2026, time.June, 15), weekStart, weekEnd) {
		t.Error("span sharing the week's first day should overlap")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := New(2026, time.June, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-06-15"` {
		t.Fatalf("marshal = %s, want \"2026-06-15\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %s, want %s", back, d)
	}

	var zero Date
	if err := json.Unmarshal([]byte("null"), &zero); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !zero.IsZero() {
		t.Error("null should decode to the zero date")
	}

	if err := json.Unmarshal([]byte(`"06/15/2026"`), &zero); err == nil {
		t.Error("malformed date string should be a parse error")
	}
}
