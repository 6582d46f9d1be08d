// Package compliance holds the behavior every calendar.Repository implementation must share.
package compliance

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/calendar/internal/application/calendar"
	"github.com/rezkam/calendar/internal/domain"
)

// RunRepositoryComplianceTest runs the shared repository suite.
// setup must return an empty repository; cleanup is registered by setup via t.Cleanup.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) calendar.Repository) {
	t.Run("CreateAndFind", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		e := newEvent("2025-03-15", "10:00")
		e.Description = "quarterly planning"
		e.Location = "3F"
		e.Category = "업무"
		e.NotificationTime = 60
		e.Repeat = domain.RepeatInfo{
			Type:     domain.RepeatMonthly,
			Interval: 2,
			EndDate:  mo.Some(date("2025-11-30")),
			ID:       "group-a",
		}

		created, err := repo.CreateEvent(ctx, e)
		require.NoError(t, err)
		assertSameEvent(t, e, created)

		found, err := repo.FindEventByID(ctx, e.ID)
		require.NoError(t, err)
		assertSameEvent(t, e, found)
	})

	t.Run("AbsentEndDateAndGroup", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		e := newEvent("2025-03-15", "10:00")
		_, err := repo.CreateEvent(ctx, e)
		require.NoError(t, err)

		found, err := repo.FindEventByID(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, found.Repeat.EndDate.IsAbsent())
		assert.Empty(t, found.Repeat.ID)
		assert.Equal(t, domain.RepeatNone, found.Repeat.Type)
	})

	t.Run("FindMissingAndInvalidID", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		_, err := repo.FindEventByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrEventNotFound)

		_, err = repo.FindEventByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("CreateEventsIsAtomic", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		first := newEvent("2025-01-01", "09:00")
		dup := newEvent("2025-01-02", "09:00")
		dup.ID = first.ID

		_, err := repo.CreateEvents(ctx, []*domain.Event{first, dup})
		require.Error(t, err)

		all, err := repo.FindEvents(ctx, domain.ListEventsParams{})
		require.NoError(t, err)
		assert.Empty(t, all, "a failed batch must not leave partial rows")
	})

	t.Run("CreateEventsReturnsAll", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		batch := group("grp", "2025-01-06", "2025-01-13", "2025-01-20")
		created, err := repo.CreateEvents(ctx, batch)
		require.NoError(t, err)
		require.Len(t, created, 3)
		for i := range batch {
			assertSameEvent(t, batch[i], created[i])
		}
	})

	t.Run("FindEventsOrderAndFilters", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		late := newEvent("2025-02-10", "15:00")
		early := newEvent("2025-02-10", "08:30")
		before := newEvent("2025-01-31", "23:00")
		after := newEvent("2025-03-01", "00:00")
		for _, e := range []*domain.Event{late, early, before, after} {
			_, err := repo.CreateEvent(ctx, e)
			require.NoError(t, err)
		}
		_, err := repo.CreateEvents(ctx, group("grp-x", "2025-02-11", "2025-02-12"))
		require.NoError(t, err)

		all, err := repo.FindEvents(ctx, domain.ListEventsParams{})
		require.NoError(t, err)
		require.Len(t, all, 6)
		assert.Equal(t, before.ID, all[0].ID)
		assert.Equal(t, early.ID, all[1].ID)
		assert.Equal(t, late.ID, all[2].ID)
		assert.Equal(t, after.ID, all[5].ID)

		from, until := date("2025-02-01"), date("2025-02-28")
		feb, err := repo.FindEvents(ctx, domain.ListEventsParams{From: &from, Until: &until})
		require.NoError(t, err)
		assert.Len(t, feb, 4)

		boundary := date("2025-03-01")
		onBoundary, err := repo.FindEvents(ctx, domain.ListEventsParams{From: &boundary, Until: &boundary})
		require.NoError(t, err)
		require.Len(t, onBoundary, 1)
		assert.Equal(t, after.ID, onBoundary[0].ID)

		repeatID := "grp-x"
		members, err := repo.FindEvents(ctx, domain.ListEventsParams{RepeatID: &repeatID})
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("UpdateEvent", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		e := newEvent("2025-04-01", "10:00")
		e.Repeat = domain.RepeatInfo{Type: domain.RepeatWeekly, Interval: 1, ID: "grp"}
		_, err := repo.CreateEvent(ctx, e)
		require.NoError(t, err)

		changed := *e
		changed.Title = "Moved"
		changed.Date = date("2025-04-03")
		changed.Repeat = domain.RepeatInfo{Type: domain.RepeatNone, Interval: 1}
		changed.UpdatedAt = e.UpdatedAt.Add(time.Hour)

		updated, err := repo.UpdateEvent(ctx, &changed)
		require.NoError(t, err)
		assertSameEvent(t, &changed, updated)
		assert.True(t, updated.CreatedAt.Equal(e.CreatedAt))

		missing := changed
		missing.ID = uuid.NewString()
		_, err = repo.UpdateEvent(ctx, &missing)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("UpdateRecurringGroupKeepsDates", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		members := group("grp-u", "2025-05-01", "2025-06-01", "2025-07-01")
		_, err := repo.CreateEvents(ctx, members)
		require.NoError(t, err)
		outsider := newEvent("2025-05-02", "10:00")
		_, err = repo.CreateEvent(ctx, outsider)
		require.NoError(t, err)

		update := domain.GroupUpdate{
			Title:            "Book club",
			StartTime:        "19:00",
			EndTime:          "21:00",
			Description:      "chapter 4",
			Location:         "Library",
			Category:         "개인",
			NotificationTime: 1440,
			UpdatedAt:        timestamp().Add(time.Minute),
		}
		updated, err := repo.UpdateRecurringGroup(ctx, "grp-u", update)
		require.NoError(t, err)
		require.Len(t, updated, 3)

		for i, e := range updated {
			assert.Equal(t, members[i].ID, e.ID)
			assert.Equal(t, members[i].Date, e.Date)
			assert.Equal(t, "Book club", e.Title)
			assert.Equal(t, "19:00", e.StartTime)
			assert.Equal(t, "Library", e.Location)
			assert.Equal(t, 1440, e.NotificationTime)
			assert.Equal(t, "grp-u", e.Repeat.ID)
			assert.True(t, e.UpdatedAt.Equal(update.UpdatedAt))
		}

		untouched, err := repo.FindEventByID(ctx, outsider.ID)
		require.NoError(t, err)
		assert.Equal(t, outsider.Title, untouched.Title)

		_, err = repo.UpdateRecurringGroup(ctx, "missing", update)
		assert.ErrorIs(t, err, domain.ErrRecurringGroupNotFound)
	})

	t.Run("DeleteEvent", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		e := newEvent("2025-04-01", "10:00")
		_, err := repo.CreateEvent(ctx, e)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteEvent(ctx, e.ID))

		_, err = repo.FindEventByID(ctx, e.ID)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)

		assert.ErrorIs(t, repo.DeleteEvent(ctx, e.ID), domain.ErrEventNotFound)
		assert.ErrorIs(t, repo.DeleteEvent(ctx, "bogus"), domain.ErrInvalidID)
	})

	t.Run("DeleteRecurringGroup", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		_, err := repo.CreateEvents(ctx, group("grp-d", "2025-08-01", "2025-08-02", "2025-08-03"))
		require.NoError(t, err)
		keep := newEvent("2025-08-02", "12:00")
		_, err = repo.CreateEvent(ctx, keep)
		require.NoError(t, err)

		n, err := repo.DeleteRecurringGroup(ctx, "grp-d")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		rest, err := repo.FindEvents(ctx, domain.ListEventsParams{})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, keep.ID, rest[0].ID)

		_, err = repo.DeleteRecurringGroup(ctx, "grp-d")
		assert.ErrorIs(t, err, domain.ErrRecurringGroupNotFound)
	})
}

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// timestamp is truncated to the precision every backend stores.
func timestamp() time.Time {
	return time.Date(2025, 1, 1, 9, 30, 0, 123456000, time.UTC)
}

func newEvent(day, start string) *domain.Event {
	return &domain.Event{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Title:     "Event " + day + " " + start,
		Date:      date(day),
		StartTime: start,
		EndTime:   "23:59",
		Repeat:    domain.RepeatInfo{Type: domain.RepeatNone, Interval: 1},
		CreatedAt: timestamp(),
		UpdatedAt: timestamp(),
	}
}

func group(repeatID string, days ...string) []*domain.Event {
	events := make([]*domain.Event, 0, len(days))
	for _, d := range days {
		e := newEvent(d, "07:00")
		e.Title = "Run"
		e.Repeat = domain.RepeatInfo{Type: domain.RepeatDaily, Interval: 1, ID: repeatID}
		events = append(events, e)
	}
	return events
}

func assertSameEvent(t *testing.T, want, got *domain.Event) {
	t.Helper()

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.StartTime, got.StartTime)
	assert.Equal(t, want.EndTime, got.EndTime)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Location, got.Location)
	assert.Equal(t, want.Category, got.Category)
	assert.Equal(t, want.Repeat.Type, got.Repeat.Type)
	assert.Equal(t, want.Repeat.Interval, got.Repeat.Interval)
	assert.Equal(t, want.Repeat.EndDate, got.Repeat.EndDate)
	assert.Equal(t, want.Repeat.ID, got.Repeat.ID)
	assert.Equal(t, want.NotificationTime, got.NotificationTime)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %s != %s", want.UpdatedAt, got.UpdatedAt)
}
