package calendar

import (
	"context"

	"github.com/rezkam/calendar/internal/domain"
)

// Repository defines storage operations for calendar events.
// All create/update operations return the events as persisted.
type Repository interface {
	// CreateEvent stores a single event.
	CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)

	// CreateEvents stores all events atomically; either every event is stored or none is.
	CreateEvents(ctx context.Context, events []*domain.Event) ([]*domain.Event, error)

	// FindEventByID returns domain.ErrEventNotFound if the event doesn't exist.
	FindEventByID(ctx context.Context, id string) (*domain.Event, error)

	// FindEvents returns events matching params ordered by date, then start time.
	FindEvents(ctx context.Context, params domain.ListEventsParams) ([]*domain.Event, error)

	// UpdateEvent replaces every mutable field of the event.
	// Returns domain.ErrEventNotFound if the event doesn't exist.
	UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)

	// UpdateRecurringGroup applies update to every event of the group atomically.
	// Returns domain.ErrRecurringGroupNotFound if no event carries repeatID.
	UpdateRecurringGroup(ctx context.Context, repeatID string, update domain.GroupUpdate) ([]*domain.Event, error)

	// DeleteEvent returns domain.ErrEventNotFound if the event doesn't exist.
	DeleteEvent(ctx context.Context, id string) error

	// DeleteRecurringGroup deletes every event of the group and returns how many were removed.
	// Returns domain.ErrRecurringGroupNotFound if no event carries repeatID.
	DeleteRecurringGroup(ctx context.Context, repeatID string) (int64, error)
}
