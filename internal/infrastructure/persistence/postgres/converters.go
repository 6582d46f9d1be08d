package postgres

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/mo"

	"github.com/rezkam/calendar/internal/domain"
)

// pgtypeToUUIDString converts pgtype.UUID to string (empty if invalid).
func pgtypeToUUIDString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// dateToPgtype converts a civil.Date to pgtype.Date.
func dateToPgtype(d civil.Date) pgtype.Date {
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

// pgtypeToDate converts pgtype.Date to civil.Date (zero if invalid).
func pgtypeToDate(d pgtype.Date) civil.Date {
	if !d.Valid {
		return civil.Date{}
	}
	return civil.DateOf(d.Time)
}

// optionToPgtypeDate stores an absent option as NULL.
func optionToPgtypeDate(o mo.Option[civil.Date]) pgtype.Date {
	d, ok := o.Get()
	if !ok {
		return pgtype.Date{Valid: false}
	}
	return dateToPgtype(d)
}

// pgtypeDateToOption reads NULL as an absent option.
func pgtypeDateToOption(d pgtype.Date) mo.Option[civil.Date] {
	if !d.Valid {
		return mo.None[civil.Date]()
	}
	return mo.Some(pgtypeToDate(d))
}

// datePtrToPgtypeForFilter converts an optional filter bound. nil becomes NULL,
// which the queries read as "no bound".
func datePtrToPgtypeForFilter(d *civil.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{Valid: false}
	}
	return dateToPgtype(*d)
}

// repeatIDToPgtype stores an empty group ID as NULL.
func repeatIDToPgtype(id string) pgtype.Text {
	return pgtype.Text{String: id, Valid: id != ""}
}

func pgtypeToRepeatID(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// timeToPgtype converts time.Time to pgtype.Timestamptz.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// pgtypeToTime converts pgtype.Timestamptz to UTC time.Time (zero if invalid).
func pgtypeToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

// eventRow mirrors one row of the events table.
type eventRow struct {
	ID               pgtype.UUID
	Title            string
	Date             pgtype.Date
	StartTime        string
	EndTime          string
	Description      string
	Location         string
	Category         string
	RepeatType       string
	RepeatInterval   int32
	RepeatEndDate    pgtype.Date
	RepeatID         pgtype.Text
	NotificationTime int32
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func (r eventRow) toDomain() *domain.Event {
	return &domain.Event{
		ID:          pgtypeToUUIDString(r.ID),
		Title:       r.Title,
		Date:        pgtypeToDate(r.Date),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
		Location:    r.Location,
		Category:    r.Category,
		Repeat: domain.RepeatInfo{
			Type:     domain.RepeatType(r.RepeatType),
			Interval: int(r.RepeatInterval),
			EndDate:  pgtypeDateToOption(r.RepeatEndDate),
			ID:       pgtypeToRepeatID(r.RepeatID),
		},
		NotificationTime: int(r.NotificationTime),
		CreatedAt:        pgtypeToTime(r.CreatedAt),
		UpdatedAt:        pgtypeToTime(r.UpdatedAt),
	}
}
