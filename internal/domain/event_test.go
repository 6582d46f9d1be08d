package domain

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *Event {
	return &Event{
		Title:     "  Standup  ",
		Date:      civil.Date{Year: 2025, Month: time.October, Day: 15},
		StartTime: "10:00",
		EndTime:   "11:00",
		Category:  "업무",
		Repeat:    RepeatInfo{Type: RepeatWeekly, Interval: 1, ID: "grp-1"},
	}
}

func TestEvent_Validate(t *testing.T) {
	t.Run("valid event normalizes title", func(t *testing.T) {
		e := validEvent()
		require.NoError(t, e.Validate())
		assert.Equal(t, "Standup", e.Title)
	})

	t.Run("empty repeat type becomes none", func(t *testing.T) {
		e := validEvent()
		e.Repeat = RepeatInfo{}
		require.NoError(t, e.Validate())
		assert.Equal(t, RepeatNone, e.Repeat.Type)
	})

	testCases := []struct {
		name    string
		mutate  func(e *Event)
		wantErr error
	}{
		{"blank title", func(e *Event) { e.Title = "   " }, ErrTitleRequired},
		{"invalid date", func(e *Event) { e.Date = civil.Date{Year: 2025, Month: time.February, Day: 30} }, ErrInvalidDate},
		{"malformed start time", func(e *Event) { e.StartTime = "9am" }, ErrInvalidTime},
		{"end before start", func(e *Event) { e.EndTime = "09:30" }, ErrInvalidTimeRange},
		{"end equals start", func(e *Event) { e.EndTime = "10:00" }, ErrInvalidTimeRange},
		{"negative notification", func(e *Event) { e.NotificationTime = -1 }, ErrInvalidNotice},
		{"unknown repeat type", func(e *Event) { e.Repeat.Type = "hourly" }, ErrInvalidRepeatType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEvent()
			tc.mutate(e)
			err := e.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestEvent_WithDateDoesNotMutateSeed(t *testing.T) {
	seed := *validEvent()
	next := civil.Date{Year: 2025, Month: time.October, Day: 22}

	moved := seed.WithDate(next)

	assert.Equal(t, next, moved.Date)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.October, Day: 15}, seed.Date)
	assert.Equal(t, seed.Title, moved.Title)
	assert.Equal(t, seed.Repeat, moved.Repeat)
}

func TestEvent_Detach(t *testing.T) {
	e := validEvent()
	e.Repeat.EndDate = mo.Some(civil.Date{Year: 2025, Month: time.December, Day: 31})

	e.Detach()

	assert.Equal(t, RepeatNone, e.Repeat.Type)
	assert.Empty(t, e.Repeat.ID)
	assert.False(t, e.IsRecurring())
	assert.Equal(t, 1, e.Repeat.Interval)
}

func TestEvent_ApplyKeepsIdentityAndDate(t *testing.T) {
	e := validEvent()
	e.ID = "evt-1"
	date := e.Date

	e.Apply(GroupUpdate{
		Title:            "Retro",
		StartTime:        "14:00",
		EndTime:          "15:00",
		Location:         "Room 3",
		NotificationTime: 60,
	})

	assert.Equal(t, "evt-1", e.ID)
	assert.Equal(t, date, e.Date)
	assert.Equal(t, "Retro", e.Title)
	assert.Equal(t, "14:00", e.StartTime)
	assert.Equal(t, "Room 3", e.Location)
	assert.Equal(t, 60, e.NotificationTime)
	assert.Equal(t, "grp-1", e.Repeat.ID)
}

func TestNewRepeatType(t *testing.T) {
	testCases := []struct {
		input    string
		expected RepeatType
	}{
		{"", RepeatNone},
		{"none", RepeatNone},
		{"DAILY", RepeatDaily},
		{"Weekly", RepeatWeekly},
		{"monthly", RepeatMonthly},
		{"yearly", RepeatYearly},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := NewRepeatType(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := NewRepeatType("biweekly")
	assert.ErrorIs(t, err, ErrInvalidRepeatType)
}

func TestNewScope(t *testing.T) {
	for input, expected := range map[string]Scope{"": ScopeDefault, "single": ScopeSingle, "ALL": ScopeAll} {
		got, err := NewScope(input)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}

	_, err := NewScope("future")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestNewClockTime(t *testing.T) {
	c, err := NewClockTime("09:05")
	require.NoError(t, err)
	assert.Equal(t, 545, c.Minutes())
	assert.Equal(t, "09:05", c.String())

	for _, bad := range []string{"", "24:00", "9:5", "12:60", "noon"} {
		_, err := NewClockTime(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestNewDate(t *testing.T) {
	d, err := NewDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, d)

	for _, bad := range []string{"2025-02-29", "2025-13-01", "2025/01/01", ""} {
		_, err := NewDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestGroupUpdate_Validate(t *testing.T) {
	u := GroupUpdate{Title: " Weekly review ", StartTime: "16:00", EndTime: "17:00"}
	require.NoError(t, u.Validate())
	assert.Equal(t, "Weekly review", u.Title)

	bad := GroupUpdate{Title: "x", StartTime: "17:00", EndTime: "16:00"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTimeRange)

	bad = GroupUpdate{Title: "", StartTime: "16:00", EndTime: "17:00"}
	assert.ErrorIs(t, bad.Validate(), ErrTitleRequired)
}
