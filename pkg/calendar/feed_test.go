package calendar

import (
	"strings"
	"testing"
	"time"

	"camplan/pkg/dates"
)

func TestFeed(t *testing.T) {
	events := []*Event{
		{
			UID:       "evt-1",
			FamilyID:  "fam-1",
			Summary:   "Maya: Forest Explorers (Camp Wildwood)",
			Location:  "Mill Valley",
			Start:     dates.New(2026, time.June, 15),
			End:       dates.New(2026, time.June, 19),
			CreatedAt: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	feed := Feed("Summer Camp Plan", events)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"END:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Maya: Forest Explorers (Camp Wildwood)",
		"LOCATION:Mill Valley",
		"DTSTART;VALUE=DATE:20260615",
		// DTEND is exclusive: the friday camp day plus one.
		"DTEND;VALUE=DATE:20260620",
	} {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q\n%s", want, feed)
		}
	}
}

func TestFeedEmpty(t *testing.T) {
	feed := Feed("Summer Camp Plan", nil)
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("empty feed should still be a valid calendar")
	}
	if strings.Contains(feed, "BEGIN:VEVENT") {
		t.Error("empty feed should contain no events")
	}
}
