package ical_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	goical "github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/calendar/internal/domain"
	"github.com/rezkam/calendar/internal/infrastructure/ical"
)

func TestEncode(t *testing.T) {
	events := []*domain.Event{
		{
			ID:               "0192f0c4-0000-7000-8000-000000000001",
			Title:            "주간 회의",
			Date:             civil.Date{Year: 2025, Month: time.October, Day: 15},
			StartTime:        "09:30",
			EndTime:          "10:45",
			Description:      "sprint review, demos",
			Location:         "회의실 B",
			Category:         "업무",
			NotificationTime: 10,
			Repeat:           domain.RepeatInfo{Type: domain.RepeatWeekly, Interval: 1, ID: "grp-1"},
			UpdatedAt:        time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:        "0192f0c4-0000-7000-8000-000000000002",
			Title:     "Dentist",
			Date:      civil.Date{Year: 2025, Month: time.December, Day: 31},
			StartTime: "23:00",
			EndTime:   "23:30",
			Repeat:    domain.RepeatInfo{Type: domain.RepeatNone, Interval: 1},
		},
	}

	var buf bytes.Buffer
	stamp := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ical.Encode(&buf, events, stamp))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.NotContains(t, out, "RRULE")

	cal, err := goical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)

	prodID, err := cal.Props.Text(goical.PropProductID)
	require.NoError(t, err)
	assert.Equal(t, ical.ProductID, prodID)

	vevents := cal.Events()
	require.Len(t, vevents, 2)

	first := vevents[0]
	uid, err := first.Props.Text(goical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, events[0].ID, uid)

	summary, err := first.Props.Text(goical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "주간 회의", summary)

	description, err := first.Props.Text(goical.PropDescription)
	require.NoError(t, err)
	assert.Equal(t, "sprint review, demos", description)

	assert.Equal(t, "20251015T093000", first.Props.Get(goical.PropDateTimeStart).Value)
	assert.Equal(t, "20251015T104500", first.Props.Get(goical.PropDateTimeEnd).Value)
	assert.Equal(t, "grp-1", first.Props.Get(goical.PropRelatedTo).Value)

	require.Len(t, first.Children, 1)
	alarm := first.Children[0]
	assert.Equal(t, goical.CompAlarm, alarm.Name)
	assert.Equal(t, "-PT10M", alarm.Props.Get(goical.PropTrigger).Value)

	second := vevents[1]
	assert.Equal(t, "20251231T230000", second.Props.Get(goical.PropDateTimeStart).Value)
	assert.Nil(t, second.Props.Get(goical.PropLocation))
	assert.Nil(t, second.Props.Get(goical.PropRelatedTo))
	assert.Empty(t, second.Children)
}

func TestEncode_RejectsMalformedTime(t *testing.T) {
	var buf bytes.Buffer
	err := ical.Encode(&buf, []*domain.Event{{
		ID:        "bad",
		Title:     "x",
		Date:      civil.Date{Year: 2025, Month: time.January, Day: 1},
		StartTime: "9am",
		EndTime:   "10:00",
	}}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTime)
}
