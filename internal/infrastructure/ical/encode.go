// Package ical exports stored events as an iCalendar (RFC 5545) stream.
package ical

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/rezkam/calendar/internal/domain"
)

// ProductID identifies this application in exported calendars.
const ProductID = "-//rezkam//calendar//KO"

// floatingLayout formats a local date-time without a time zone designator.
const floatingLayout = "20060102T150405"

// Encode writes one VCALENDAR with a VEVENT per event. Every occurrence is
// exported individually; repeat rules are not emitted.
func Encode(w io.Writer, events []*domain.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, e := range events {
		vevent, err := newEvent(e, stamp)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		cal.Children = append(cal.Children, vevent.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func newEvent(e *domain.Event, stamp time.Time) (*ical.Event, error) {
	start, err := floating(e, e.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := floating(e, e.EndTime)
	if err != nil {
		return nil, err
	}

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, e.ID)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	vevent.Props.Set(start.named(ical.PropDateTimeStart))
	vevent.Props.Set(end.named(ical.PropDateTimeEnd))
	vevent.Props.SetText(ical.PropSummary, e.Title)

	if e.Description != "" {
		vevent.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		vevent.Props.SetText(ical.PropLocation, e.Location)
	}
	if e.Category != "" {
		vevent.Props.SetText(ical.PropCategories, e.Category)
	}
	if !e.UpdatedAt.IsZero() {
		vevent.Props.SetDateTime(ical.PropLastModified, e.UpdatedAt.UTC())
	}
	if e.Repeat.ID != "" {
		// groups occurrences of one recurring event for clients that understand it
		vevent.Props.SetText(ical.PropRelatedTo, e.Repeat.ID)
	}
	if e.NotificationTime > 0 {
		vevent.Children = append(vevent.Children, newAlarm(e))
	}

	return vevent, nil
}

func newAlarm(e *domain.Event) *ical.Component {
	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, e.Title)

	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = fmt.Sprintf("-PT%dM", e.NotificationTime)
	alarm.Props.Set(trigger)

	return alarm
}

type floatingTime string

func (f floatingTime) named(name string) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = string(f)
	return p
}

// floating combines the event date and an HH:MM wall time into a floating DATE-TIME.
func floating(e *domain.Event, clock string) (floatingTime, error) {
	c, err := domain.NewClockTime(clock)
	if err != nil {
		return "", err
	}
	t := e.Date.In(time.UTC).Add(time.Duration(c.Minutes()) * time.Minute)
	return floatingTime(t.Format(floatingLayout)), nil
}
