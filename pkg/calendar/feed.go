package calendar

import (
	ics "github.com/arran4/golang-ical"
)

const productID = "-//camplan//summer camp planner//EN"

// Feed renders the family's events as an iCalendar document. Events are
// all-day spans; the DTEND is exclusive per RFC 5545, so one day past the
// last camp day.
func Feed(name string, events []*Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, event := range events {
		e := cal.AddEvent(event.UID)
		e.SetSummary(event.Summary)
		if event.Description != "" {
			e.SetDescription(event.Description)
		}
		if event.Location != "" {
			e.SetLocation(event.Location)
		}
		e.SetAllDayStartAt(event.Start.Time())
		e.SetAllDayEndAt(event.End.AddDays(1).Time())
		e.SetDtStampTime(event.CreatedAt.UTC())
	}

	return cal.Serialize()
}
