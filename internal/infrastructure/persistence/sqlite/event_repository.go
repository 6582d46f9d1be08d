package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/rezkam/calendar/internal/domain"
)

const eventColumns = `id, title, date, start_time, end_time, description, location, category,
	repeat_type, repeat_interval, repeat_end_date, repeat_id, notification_time, created_at, updated_at`

const insertEventSQL = `INSERT INTO events (` + eventColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const timestampLayout = time.RFC3339Nano

func parseEventID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}
	return parsed.String(), nil
}

func nullableDate(o mo.Option[civil.Date]) sql.NullString {
	d, ok := o.Get()
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullableText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e          domain.Event
		date       string
		repeatType string
		endDate    sql.NullString
		repeatID   sql.NullString
		createdAt  string
		updatedAt  string
	)

	err := row.Scan(
		&e.ID, &e.Title, &date, &e.StartTime, &e.EndTime,
		&e.Description, &e.Location, &e.Category,
		&repeatType, &e.Repeat.Interval, &endDate, &repeatID,
		&e.NotificationTime, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if e.Date, err = civil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("corrupt date %q for event %s: %w", date, e.ID, err)
	}

	e.Repeat.Type = domain.RepeatType(repeatType)
	e.Repeat.ID = repeatID.String
	e.Repeat.EndDate = mo.None[civil.Date]()
	if endDate.Valid {
		d, err := civil.ParseDate(endDate.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt repeat end date %q for event %s: %w", endDate.String, e.ID, err)
		}
		e.Repeat.EndDate = mo.Some(d)
	}

	if e.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt created_at for event %s: %w", e.ID, err)
	}
	if e.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("corrupt updated_at for event %s: %w", e.ID, err)
	}

	return &e, nil
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) insert(ctx context.Context, e *domain.Event) error {
	id, err := parseEventID(e.ID)
	if err != nil {
		return err
	}

	_, err = s.conn.ExecContext(ctx, insertEventSQL,
		id,
		e.Title,
		e.Date.String(),
		e.StartTime,
		e.EndTime,
		e.Description,
		e.Location,
		e.Category,
		string(e.Repeat.Type),
		e.Repeat.Interval,
		nullableDate(e.Repeat.EndDate),
		nullableText(e.Repeat.ID),
		e.NotificationTime,
		formatTimestamp(e.CreatedAt),
		formatTimestamp(e.UpdatedAt),
	)
	return err
}

// CreateEvent stores a single event.
func (s *Store) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if err := s.insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return s.FindEventByID(ctx, event.ID)
}

// CreateEvents stores all events in one transaction.
func (s *Store) CreateEvents(ctx context.Context, events []*domain.Event) ([]*domain.Event, error) {
	created := make([]*domain.Event, 0, len(events))
	err := s.executeInTransaction(ctx, "create_events", func(tx *Store) error {
		for i, e := range events {
			if err := tx.insert(ctx, e); err != nil {
				return fmt.Errorf("failed to insert event %d: %w", i, err)
			}
		}
		for _, e := range events {
			stored, err := tx.FindEventByID(ctx, e.ID)
			if err != nil {
				return err
			}
			created = append(created, stored)
		}
		return nil
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

	row := s.conn.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: event %s", domain.ErrEventNotFound, id)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// FindEvents lists events ordered by date and start time.
func (s *Store) FindEvents(ctx context.Context, params domain.ListEventsParams) ([]*domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if params.From != nil {
		where = append(where, "date >= ?")
		args = append(args, params.From.String())
	}
	if params.Until != nil {
		where = append(where, "date <= ?")
		args = append(args, params.Until.String())
	}
	if params.RepeatID != nil {
		where = append(where, "repeat_id = ?")
		args = append(args, *params.RepeatID)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, start_time, id`

	events, err := s.queryEvents(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces every mutable field of the event. created_at is kept as stored.
func (s *Store) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	eventID, err := parseEventID(event.ID)
	if err != nil {
		return nil, err
	}

	res, err := s.conn.ExecContext(ctx, `UPDATE events SET
			title = ?, date = ?, start_time = ?, end_time = ?,
			description = ?, location = ?, category = ?,
			repeat_type = ?, repeat_interval = ?, repeat_end_date = ?, repeat_id = ?,
			notification_time = ?, updated_at = ?
		WHERE id = ?`,
		event.Title,
		event.Date.String(),
		event.StartTime,
		event.EndTime,
		event.Description,
		event.Location,
		event.Category,
		string(event.Repeat.Type),
		event.Repeat.Interval,
		nullableDate(event.Repeat.EndDate),
		nullableText(event.Repeat.ID),
		event.NotificationTime,
		formatTimestamp(event.UpdatedAt),
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	} else if n == 0 {
		return nil, fmt.Errorf("%w: event %s", domain.ErrEventNotFound, event.ID)
	}

	return s.FindEventByID(ctx, eventID)
}

// UpdateRecurringGroup applies the content fields to every event of the group in one transaction.
func (s *Store) UpdateRecurringGroup(ctx context.Context, repeatID string, update domain.GroupUpdate) ([]*domain.Event, error) {
	var updated []*domain.Event
	err := s.executeInTransaction(ctx, "update_recurring_group", func(tx *Store) error {
		res, err := tx.conn.ExecContext(ctx, `UPDATE events SET
				title = ?, start_time = ?, end_time = ?,
				description = ?, location = ?, category = ?,
				notification_time = ?, updated_at = ?
			WHERE repeat_id = ?`,
			update.Title,
			update.StartTime,
			update.EndTime,
			update.Description,
			update.Location,
			update.Category,
			update.NotificationTime,
			formatTimestamp(update.UpdatedAt),
			repeatID,
		)
		if err != nil {
			return fmt.Errorf("failed to update recurring group: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update recurring group: %w", err)
		}
		if n == 0 {
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

	res, err := s.conn.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: event %s", domain.ErrEventNotFound, id)
	}
	return nil
}

// DeleteRecurringGroup deletes every event of the group.
func (s *Store) DeleteRecurringGroup(ctx context.Context, repeatID string) (int64, error) {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM events WHERE repeat_id = ?`, repeatID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete recurring group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete recurring group: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrRecurringGroupNotFound, repeatID)
	}
	return n, nil
}
