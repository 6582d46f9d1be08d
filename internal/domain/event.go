package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/mo"
)

// Event is the aggregate root of the calendar: one dated entry, possibly one
// occurrence of a recurring group.
type Event struct {
	ID    string
	Title string

	// Date is a naive calendar date; no time zone is attached.
	Date civil.Date

	// Wall-clock times as "HH:MM"
	StartTime string
	EndTime   string

	Description string
	Location    string
	Category    string

	Repeat RepeatInfo

	// NotificationTime is the reminder lead time in minutes.
	NotificationTime int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RepeatInfo is the repeat rule carried by an event together with its group membership.
type RepeatInfo struct {
	Type     RepeatType
	Interval int

	// EndDate is optional; absent means "until the recurrence horizon".
	EndDate mo.Option[civil.Date]

	// ID is the shared identifier of the recurring group ("" when not grouped).
	ID string
}

// IsRecurring reports whether the event belongs to a recurring group.
func (e *Event) IsRecurring() bool {
	return e.Repeat.ID != ""
}

// WithDate returns a copy of the event dated d. The receiver is not modified.
func (e Event) WithDate(d civil.Date) Event {
	e.Date = d
	return e
}

// Detach removes the event from its recurring group and turns it into a one-off.
func (e *Event) Detach() {
	e.Repeat.Type = RepeatNone
	e.Repeat.ID = ""
}

// Apply copies the content fields of u onto the event. Date and identity are kept.
func (e *Event) Apply(u GroupUpdate) {
	e.Title = u.Title
	e.StartTime = u.StartTime
	e.EndTime = u.EndTime
	e.Description = u.Description
	e.Location = u.Location
	e.Category = u.Category
	e.NotificationTime = u.NotificationTime
	if !u.UpdatedAt.IsZero() {
		e.UpdatedAt = u.UpdatedAt
	}
}

// ContentOf extracts the fields an "all" update propagates across a group.
func ContentOf(e *Event) GroupUpdate {
	return GroupUpdate{
		Title:            e.Title,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Description:      e.Description,
		Location:         e.Location,
		Category:         e.Category,
		NotificationTime: e.NotificationTime,
	}
}
