package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// ListEventsParams contains optional filters for listing events.
// Results are always ordered by date, then start time.
type ListEventsParams struct {
	From     *civil.Date // inclusive
	Until    *civil.Date // inclusive
	RepeatID *string     // only events of this recurring group
}

// GroupUpdate holds the content fields applied to every event of a recurring
// group. Each occurrence keeps its own ID and date.
type GroupUpdate struct {
	Title            string
	StartTime        string
	EndTime          string
	Description      string
	Location         string
	Category         string
	NotificationTime int

	// UpdatedAt is stamped by the service before the update reaches storage.
	UpdatedAt time.Time
}

// Validate checks the content fields and normalizes the title.
func (u *GroupUpdate) Validate() error {
	title, err := NewTitle(u.Title)
	if err != nil {
		return err
	}
	u.Title = title.String()

	if err := ValidateTimeRange(u.StartTime, u.EndTime); err != nil {
		return err
	}

	if u.NotificationTime < 0 {
		return ErrInvalidNotice
	}

	return nil
}
