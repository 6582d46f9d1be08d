package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/rezkam/calendar/internal/domain"
	"github.com/rezkam/calendar/internal/recurrence"
)

// OccurrenceGenerator expands a seed event into its occurrences.
type OccurrenceGenerator interface {
	Generate(ctx context.Context, seed domain.Event) []domain.Event
	Dates(seed domain.Event) []civil.Date
	Policy() recurrence.Policy
}

// Service provides the calendar workflows: saving single and recurring events,
// scoped updates, and scoped deletes.
type Service struct {
	repo      Repository
	generator OccurrenceGenerator
	now       func() time.Time
}

// NewService creates a new calendar service.
func NewService(repo Repository, generator OccurrenceGenerator) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListEvents returns stored events ordered by date and start time.
func (s *Service) ListEvents(ctx context.Context, params domain.ListEventsParams) ([]*domain.Event, error) {
	if params.From != nil && params.Until != nil && params.From.After(*params.Until) {
		return nil, fmt.Errorf("%w: from %s is after until %s", domain.ErrInvalidDate, params.From, params.Until)
	}

	events, err := s.repo.FindEvents(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEvent retrieves a single event by ID.
func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, domain.ErrEventNotFound
	}
	return s.repo.FindEventByID(ctx, id)
}

// CreateEvent validates and stores a single event as given.
func (s *Service) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if err := s.prepareNew(event, s.now()); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

// CreateEvents validates and stores a batch of events atomically.
// Repeating events without a group ID are placed into one new shared group.
func (s *Service) CreateEvents(ctx context.Context, events []*domain.Event) ([]*domain.Event, error) {
	if len(events) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	now := s.now()
	groupID := ""
	for i, event := range events {
		if err := s.prepareNew(event, now); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}

		if event.Repeat.Type.IsRepeating() && event.Repeat.ID == "" {
			if groupID == "" {
				id, err := newID()
				if err != nil {
					return nil, err
				}
				groupID = id
			}
			event.Repeat.ID = groupID
		}
	}

	created, err := s.repo.CreateEvents(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("failed to create events: %w", err)
	}
	return created, nil
}

// SaveEvent is the create workflow. A non-repeating event is stored as is; a
// repeating event is validated against the recurrence policy, expanded into
// its occurrences, and stored as one new recurring group.
func (s *Service) SaveEvent(ctx context.Context, event *domain.Event) ([]*domain.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if !event.Repeat.Type.IsRepeating() {
		created, err := s.CreateEvent(ctx, event)
		if err != nil {
			return nil, err
		}
		return []*domain.Event{created}, nil
	}

	if err := s.generator.Policy().ValidateRule(event); err != nil {
		return nil, err
	}

	seed := *event
	seed.ID = ""
	seed.Repeat.ID = ""

	occurrences := s.generator.Generate(ctx, seed)
	batch := make([]*domain.Event, len(occurrences))
	for i := range occurrences {
		batch[i] = &occurrences[i]
	}

	created, err := s.CreateEvents(ctx, batch)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "recurring event saved",
		"repeat_id", created[0].Repeat.ID,
		"repeat_type", event.Repeat.Type,
		"occurrences", len(created))

	return created, nil
}

// PreviewOccurrences validates a repeating event and returns its occurrence dates without storing anything.
func (s *Service) PreviewOccurrences(_ context.Context, event *domain.Event) ([]civil.Date, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.generator.Policy().ValidateRule(event); err != nil {
		return nil, err
	}
	return s.generator.Dates(*event), nil
}

// UpdateEvent updates an event according to scope:
//   - ScopeDefault replaces the event, group membership included.
//   - ScopeSingle detaches the occurrence from its group, then replaces it.
//   - ScopeAll applies the content fields to every event of the stored event's group.
func (s *Service) UpdateEvent(ctx context.Context, event *domain.Event, scope domain.Scope) ([]*domain.Event, error) {
	if event.ID == "" {
		return nil, domain.ErrEventNotFound
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindEventByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	switch scope {
	case domain.ScopeAll:
		// the stored membership decides the group; a repeat id in the payload is ignored
		if !existing.IsRecurring() {
			return nil, domain.ErrNotRecurring
		}
		return s.UpdateRecurringGroup(ctx, existing.Repeat.ID, domain.ContentOf(event))

	case domain.ScopeSingle:
		event.Detach()
		slog.InfoContext(ctx, "detaching occurrence from recurring group",
			"event_id", event.ID,
			"repeat_id", existing.Repeat.ID)

	case domain.ScopeDefault:
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidScope, scope)
	}

	floorInterval(event)
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = s.now()

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return []*domain.Event{updated}, nil
}

// UpdateRecurringGroup applies the content fields of update to every event of the group.
// Each occurrence keeps its ID and date.
func (s *Service) UpdateRecurringGroup(ctx context.Context, repeatID string, update domain.GroupUpdate) ([]*domain.Event, error) {
	if repeatID == "" {
		return nil, domain.ErrRecurringGroupNotFound
	}

	if err := update.Validate(); err != nil {
		return nil, err
	}
	update.UpdatedAt = s.now()

	updated, err := s.repo.UpdateRecurringGroup(ctx, repeatID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update recurring group: %w", err)
	}

	slog.InfoContext(ctx, "recurring group updated", "repeat_id", repeatID, "events", len(updated))
	return updated, nil
}

// DeleteEvent deletes one event, or with ScopeAll the whole recurring group it belongs to.
func (s *Service) DeleteEvent(ctx context.Context, id string, scope domain.Scope) error {
	if id == "" {
		return domain.ErrEventNotFound
	}

	switch scope {
	case domain.ScopeAll:
		event, err := s.repo.FindEventByID(ctx, id)
		if err != nil {
			return err
		}
		if !event.IsRecurring() {
			return domain.ErrNotRecurring
		}
		_, err = s.DeleteRecurringGroup(ctx, event.Repeat.ID)
		return err

	case domain.ScopeDefault, domain.ScopeSingle:
		if err := s.repo.DeleteEvent(ctx, id); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", domain.ErrInvalidScope, scope)
	}
}

// DeleteRecurringGroup deletes every event of the group and returns how many were removed.
func (s *Service) DeleteRecurringGroup(ctx context.Context, repeatID string) (int64, error) {
	if repeatID == "" {
		return 0, domain.ErrRecurringGroupNotFound
	}

	n, err := s.repo.DeleteRecurringGroup(ctx, repeatID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete recurring group: %w", err)
	}

	slog.InfoContext(ctx, "recurring group deleted", "repeat_id", repeatID, "events", n)
	return n, nil
}

// prepareNew validates a new event and assigns a fresh ID and timestamps.
// Client supplied IDs are replaced.
func (s *Service) prepareNew(event *domain.Event, now time.Time) error {
	if err := event.Validate(); err != nil {
		return err
	}

	floorInterval(event)

	id, err := newID()
	if err != nil {
		return err
	}
	event.ID = id

	event.CreatedAt = now
	event.UpdatedAt = now
	return nil
}

// floorInterval stores an absent interval as 1. Repeat rules that are expanded
// are checked against the policy bounds before they get here.
func floorInterval(event *domain.Event) {
	if event.Repeat.Interval < 1 {
		event.Repeat.Interval = 1
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}
