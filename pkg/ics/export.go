// Package ics writes outings as an iCalendar feed
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
)

const productID = "-//dcbc//crewboard//EN"

// Entry is one calendar event
type Entry struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Location    string
}

// Write serializes the entries as a published calendar called name.
// stamp is recorded as DTSTAMP on every event.
func Write(w io.Writer, name string, entries []Entry, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, e := range entries {
		if !e.End.After(e.Start) {
			return fmt.Errorf("event %s ends before it starts", e.UID)
		}
		event := cal.AddEvent(e.UID)
		event.SetDtStampTime(stamp.UTC())
		event.SetStartAt(e.Start.UTC())
		event.SetEndAt(e.End.UTC())
		event.SetSummary(e.Summary)
		if e.Description != "" {
			event.SetDescription(e.Description)
		}
		if e.Location != "" {
			event.SetLocation(e.Location)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
