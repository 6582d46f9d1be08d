package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/calendar/internal/domain"
)

const eventColumns = `id, title, date, start_time, end_time, description, location, category,
	repeat_type, repeat_interval, repeat_end_date, repeat_id, notification_time, created_at, updated_at`

const insertEventSQL = `INSERT INTO events (` + eventColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

// parseEventID validates the ID before it reaches a UUID column and returns its canonical form.
func parseEventID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}
	return parsed.String(), nil
}

func insertArgs(e *domain.Event) ([]any, error) {
	id, err := parseEventID(e.ID)
	if err != nil {
		return nil, err
	}
	return []any{
		id,
		e.Title,
		dateToPgtype(e.Date),
		e.StartTime,
		e.EndTime,
		e.Description,
		e.Location,
		e.Category,
		string(e.Repeat.Type),
		int32(e.Repeat.Interval),
		optionToPgtypeDate(e.Repeat.EndDate),
		repeatIDToPgtype(e.Repeat.ID),
		int32(e.NotificationTime),
		timeToPgtype(e.CreatedAt),
		timeToPgtype(e.UpdatedAt),
	}, nil
}

func collectEvents(rows pgx.Rows) ([]*domain.Event, error) {
	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[eventRow])
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(dbRows))
	for _, r := range dbRows {
		events = append(events, r.toDomain())
	}
	return events, nil
}

// CreateEvent stores a single event.
func (s *Store) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	args, err := insertArgs(event)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.Exec(ctx, insertEventSQL, args...); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return s.FindEventByID(ctx, event.ID)
}

// CreateEvents stores all events in one transaction using a pipelined batch.
func (s *Store) CreateEvents(ctx context.Context, events []*domain.Event) ([]*domain.Event, error) {
	ids := make([]string, 0, len(events))
	batch := &pgx.Batch{}
	for _, e := range events {
		args, err := insertArgs(e)
		if err != nil {
			return nil, err
		}
		ids = append(ids, args[0].(string))
		batch.Queue(insertEventSQL, args...)
	}

	var created []*domain.Event
	err := s.executeInTransaction(ctx, "create_events", func(tx *Store) error {
		br := tx.db.SendBatch(ctx, batch)
		for i := range events {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to insert event %d: %w", i, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}

		rows, err := tx.db.Query(ctx,
			`SELECT `+eventColumns+` FROM events WHERE id = ANY($1::uuid[]) ORDER BY date, start_time, id`, ids)
		if err != nil {
			return fmt.Errorf("failed to read created events: %w", err)
		}
		created, err = collectEvents(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// FindEventByID retrieves a single event.
func (s *Store) FindEventByID(ctx context.Context, id string) (*domain.Event, error) {
	eventID, err := parseEventID(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[eventRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: event %s", domain.ErrEventNotFound, id)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return row.toDomain(), nil
}

// FindEvents lists events ordered by date and start time. NULL parameters disable their filter.
func (s *Store) FindEvents(ctx context.Context, params domain.ListEventsParams) ([]*domain.Event, error) {
	rows, err := s.db.Query(ctx, `SELECT `+eventColumns+` FROM events
		WHERE ($1::date IS NULL OR date >= $1)
		  AND ($2::date IS NULL OR date <= $2)
		  AND ($3::text IS NULL OR repeat_id = $3)
		ORDER BY date, start_time, id`,
		datePtrToPgtypeForFilter(params.From),
		datePtrToPgtypeForFilter(params.Until),
		params.RepeatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events, err := collectEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces every mutable field of the event. created_at is kept as stored.
func (s *Store) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	eventID, err := parseEventID(event.ID)
	if err != nil {
		return nil, err
	}

	tag, err := s.db.Exec(ctx, `UPDATE events SET
			title = $2, date = $3, start_time = $4, end_time = $5,
			description = $6, location = $7, category = $8,
			repeat_type = $9, repeat_interval = $10, repeat_end_date = $11, repeat_id = $12,
			notification_time = $13, updated_at = $14
		WHERE id = $1`,
		eventID,
		event.Title,
		dateToPgtype(event.Date),
		event.StartTime,
		event.EndTime,
		event.Description,
		event.Location,
		event.Category,
		string(event.Repeat.Type),
		int32(event.Repeat.Interval),
		optionToPgtypeDate(event.Repeat.EndDate),
		repeatIDToPgtype(event.Repeat.ID),
		int32(event.NotificationTime),
		timeToPgtype(event.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: event %s", domain.ErrEventNotFound, event.ID)
	}

	return s.FindEventByID(ctx, event.ID)
}

// UpdateRecurringGroup applies the content fields to every event of the group in one transaction.
func (s *Store) UpdateRecurringGroup(ctx context.Context, repeatID string, update domain.GroupUpdate) ([]*domain.Event, error) {
	var updated []*domain.Event
	err := s.executeInTransaction(ctx, "update_recurring_group", func(tx *Store) error {
		tag, err := tx.db.Exec(ctx, `UPDATE events SET
				title = $2, start_time = $3, end_time = $4,
				description = $5, location = $6, category = $7,
				notification_time = $8, updated_at = $9
			WHERE repeat_id = $1`,
			repeatID,
			update.Title,
			update.StartTime,
			update.EndTime,
			update.Description,
			update.Location,
			update.Category,
			int32(update.NotificationTime),
			timeToPgtype(update.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to update recurring group: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domain.ErrRecurringGroupNotFound, repeatID)
		}

		updated, err = tx.FindEvents(ctx, domain.ListEventsParams{RepeatID: &repeatID})
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEvent deletes a single event.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := parseEventID(id)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %s", domain.ErrEventNotFound, id)
	}
	return nil
}

// DeleteRecurringGroup deletes every event of the group.
func (s *Store) DeleteRecurringGroup(ctx context.Context, repeatID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE repeat_id = $1`, repeatID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete recurring group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrRecurringGroupNotFound, repeatID)
	}
	return tag.RowsAffected(), nil
}
