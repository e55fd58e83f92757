package dates

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Date is a calendar day with no time-of-day or timezone component.
// All schedule math in the service runs on Dates, never raw time.Time.
type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) AddDays(n int) Date     { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) OnOrBefore(o Date) bool { return !d.t.After(o.t) }
func (d Date) OnOrAfter(o Date) bool  { return !d.t.Before(o.t) }
func (d Date) String() string         { return d.t.Format(Layout) }
func (d Date) Time() time.Time        { return d.t }

// DaysBetween returns the inclusive day count of the span start..end.
// start and end on the same day counts as 1.
func DaysBetween(start, end Date) int {
	return int(end.t.Sub(start.t).Hours()/24) + 1
}

// NextMonday returns the Monday strictly after d. When d is itself a
// Monday the result is a full seven days later, never d.
func NextMonday(d Date) Date {
	days := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return d.AddDays(days)
}

// Overlaps reports whether the inclusive spans [aStart, aEnd] and
// [bStart, bEnd] share at least one calendar day.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.OnOrBefore(bEnd) && aEnd.OnOrAfter(bStart)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected %q string", s, Layout)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
