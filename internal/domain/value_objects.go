package domain

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Title is a validated title value object (1-255 characters).
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Title{}, ErrTitleRequired
	}

	if len(s) > 255 {
		return Title{}, ErrTitleTooLong
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// ClockTime is a validated "HH:MM" wall-clock time.
type ClockTime struct {
	minutes int
}

// NewClockTime parses a 24h "HH:MM" string.
func NewClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return ClockTime{minutes: t.Hour()*60 + t.Minute()}, nil
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.minutes
}

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

// ValidateTimeRange checks both times and that end is strictly after start.
func ValidateTimeRange(start, end string) error {
	s, err := NewClockTime(start)
	if err != nil {
		return err
	}
	e, err := NewClockTime(end)
	if err != nil {
		return err
	}
	if e.Minutes() <= s.Minutes() {
		return ErrInvalidTimeRange
	}
	return nil
}

// NewDate parses a strict ISO "YYYY-MM-DD" date.
func NewDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Validate checks the user-editable fields of an event and normalizes the title.
// Recurrence policy (interval bounds, end date) is checked by the recurrence package.
func (e *Event) Validate() error {
	title, err := NewTitle(e.Title)
	if err != nil {
		return err
	}
	e.Title = title.String()

	if !e.Date.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, e.Date)
	}

	if err := ValidateTimeRange(e.StartTime, e.EndTime); err != nil {
		return err
	}

	if e.NotificationTime < 0 {
		return ErrInvalidNotice
	}

	if _, err := NewRepeatType(string(e.Repeat.Type)); err != nil {
		return err
	}
	if e.Repeat.Type == "" {
		e.Repeat.Type = RepeatNone
	}

	return nil
}
