package recurrence

import (
	"context"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/rezkam/calendar/internal/domain"
)

func seedEvent(start string, t domain.RepeatType, interval int, end string) domain.Event {
	e := domain.Event{
		Title:     "Team sync",
		Date:      date(start),
		StartTime: "09:00",
		EndTime:   "10:00",
		Location:  "회의실 A",
		Category:  "업무",
		Repeat:    domain.RepeatInfo{Type: t, Interval: interval},
	}
	if end != "" {
		e.Repeat.EndDate = mo.Some(date(end))
	}
	return e
}

func isoDates(dates []civil.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}

func assertContract(t *testing.T, p Policy, seed domain.Event, dates []civil.Date) {
	t.Helper()

	require.NotEmpty(t, dates)
	assert.Equal(t, seed.Date, dates[0], "first occurrence must be the seed date")

	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]), "dates not strictly ascending at %d: %s, %s", i, dates[i-1], dates[i])
	}

	if seed.Repeat.Type.IsRepeating() && len(dates) > 1 {
		end := p.EffectiveEndDate(seed.Repeat.EndDate)
		assert.False(t, dates[len(dates)-1].After(end), "last date %s after end %s", dates[len(dates)-1], end)
	}
}

func TestGenerator_MonthlyScenarios(t *testing.T) {
	g := NewGenerator(DefaultPolicy())

	t.Run("31st skips short months", func(t *testing.T) {
		seed := seedEvent("2025-01-31", domain.RepeatMonthly, 1, "2025-12-31")
		dates := g.Dates(seed)

		assert.Equal(t, []string{
			"2025-01-31", "2025-03-31", "2025-05-31", "2025-07-31",
			"2025-08-31", "2025-10-31", "2025-12-31",
		}, isoDates(dates))
		assertContract(t, g.Policy(), seed, dates)
	})

	t.Run("30th skips only February", func(t *testing.T) {
		seed := seedEvent("2025-01-30", domain.RepeatMonthly, 1, "2025-12-31")
		dates := isoDates(g.Dates(seed))

		assert.Len(t, dates, 11)
		assert.NotContains(t, dates, "2025-02-30")
		assert.NotContains(t, dates, "2025-03-02")
		assert.Contains(t, dates, "2025-03-30")
	})

	t.Run("interval carries into next year", func(t *testing.T) {
		p := NewPolicy(date("2026-12-31"))
		g := NewGenerator(p)
		seed := seedEvent("2025-08-15", domain.RepeatMonthly, 5, "")

		assert.Equal(t, []string{"2025-08-15", "2026-01-15", "2026-06-15", "2026-11-15"}, isoDates(g.Dates(seed)))
	})

	t.Run("29th in a leap year keeps February", func(t *testing.T) {
		p := NewPolicy(date("2024-04-30"))
		g := NewGenerator(p)
		seed := seedEvent("2024-01-29", domain.RepeatMonthly, 1, "")

		assert.Equal(t, []string{"2024-01-29", "2024-02-29", "2024-03-29", "2024-04-29"}, isoDates(g.Dates(seed)))
	})

	t.Run("end date between nominal and real date", func(t *testing.T) {
		// nominal April 31 equals May 1, past the end date
		seed := seedEvent("2025-03-31", domain.RepeatMonthly, 1, "2025-04-30")

		assert.Equal(t, []string{"2025-03-31"}, isoDates(g.Dates(seed)))
	})
}

func TestGenerator_YearlyScenarios(t *testing.T) {
	g := NewGenerator(DefaultPolicy())

	t.Run("leap day recurs only in leap years", func(t *testing.T) {
		seed := seedEvent("2024-02-29", domain.RepeatYearly, 1, "2025-12-31")
		assert.Equal(t, []string{"2024-02-29"}, isoDates(g.Dates(seed)))
	})

	t.Run("leap day over a longer horizon", func(t *testing.T) {
		g := NewGenerator(NewPolicy(date("2033-12-31")))
		seed := seedEvent("2024-02-29", domain.RepeatYearly, 1, "")
		assert.Equal(t, []string{"2024-02-29", "2028-02-29", "2032-02-29"}, isoDates(g.Dates(seed)))
	})

	t.Run("common year February 28 skips leap years", func(t *testing.T) {
		g := NewGenerator(NewPolicy(date("2030-12-31")))
		seed := seedEvent("2025-02-28", domain.RepeatYearly, 1, "2028-12-31")
		assert.Equal(t, []string{"2025-02-28", "2026-02-28", "2027-02-28"}, isoDates(g.Dates(seed)))
	})

	t.Run("leap year February 28 recurs every year", func(t *testing.T) {
		g := NewGenerator(NewPolicy(date("2027-12-31")))
		seed := seedEvent("2024-02-28", domain.RepeatYearly, 1, "")
		assert.Equal(t, []string{"2024-02-28", "2025-02-28", "2026-02-28", "2027-02-28"}, isoDates(g.Dates(seed)))
	})

	t.Run("ordinary date with interval", func(t *testing.T) {
		g := NewGenerator(NewPolicy(date("2031-12-31")))
		seed := seedEvent("2025-07-04", domain.RepeatYearly, 3, "")
		assert.Equal(t, []string{"2025-07-04", "2028-07-04", "2031-07-04"}, isoDates(g.Dates(seed)))
	})
}

func rruleDates(t *testing.T, freq rrule.Frequency, interval int, start, until civil.Date) []civil.Date {
	t.Helper()

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  start.In(time.UTC),
		Until:    until.In(time.UTC),
	})
	require.NoError(t, err)

	var dates []civil.Date
	for _, tm := range r.All() {
		dates = append(dates, civil.DateOf(tm))
	}
	return dates
}

func TestGenerator_DailyAndWeeklyMatchRRule(t *testing.T) {
	testCases := []struct {
		name     string
		repeat   domain.RepeatType
		freq     rrule.Frequency
		start    string
		interval int
		end      string
		horizon  string
	}{
		{"daily", domain.RepeatDaily, rrule.DAILY, "2025-01-01", 1, "2025-03-01", ""},
		{"every third day across leap February", domain.RepeatDaily, rrule.DAILY, "2024-02-20", 3, "", "2024-03-31"},
		{"daily clamped to horizon", domain.RepeatDaily, rrule.DAILY, "2025-11-15", 2, "2026-05-01", ""},
		{"weekly", domain.RepeatWeekly, rrule.WEEKLY, "2025-01-06", 1, "2025-06-30", ""},
		{"biweekly across year end", domain.RepeatWeekly, rrule.WEEKLY, "2024-11-29", 2, "2025-02-28", ""},
		{"weekly large interval", domain.RepeatWeekly, rrule.WEEKLY, "2025-01-01", 10, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPolicy()
			if tc.horizon != "" {
				p = NewPolicy(date(tc.horizon))
			}
			g := NewGenerator(p)
			seed := seedEvent(tc.start, tc.repeat, tc.interval, tc.end)

			got := g.Dates(seed)

			end := p.EffectiveEndDate(seed.Repeat.EndDate)
			assert.Equal(t, rruleDates(t, tc.freq, tc.interval, seed.Date, end), got)
			assertContract(t, p, seed, got)
		})
	}
}

func TestGenerator_NonRepeatingReturnsSeed(t *testing.T) {
	g := NewGenerator(DefaultPolicy())

	for _, rt := range []domain.RepeatType{domain.RepeatNone, "", "hourly"} {
		seed := seedEvent("2030-01-01", rt, 1, "")
		assert.Equal(t, []civil.Date{seed.Date}, g.Dates(seed), "repeat type %q", rt)
	}
}

func TestGenerator_SeedAfterEndReturnsSeed(t *testing.T) {
	g := NewGenerator(DefaultPolicy())

	for _, rt := range []domain.RepeatType{domain.RepeatDaily, domain.RepeatWeekly, domain.RepeatMonthly, domain.RepeatYearly} {
		t.Run(string(rt)+" beyond horizon", func(t *testing.T) {
			seed := seedEvent("2026-03-01", rt, 1, "")
			assert.Equal(t, []civil.Date{seed.Date}, g.Dates(seed))
		})

		t.Run(string(rt)+" end before start", func(t *testing.T) {
			seed := seedEvent("2025-06-10", rt, 1, "2025-06-01")
			assert.Equal(t, []civil.Date{seed.Date}, g.Dates(seed))
		})
	}
}

func TestGenerator_IntervalFlooredToOne(t *testing.T) {
	g := NewGenerator(DefaultPolicy())

	for _, interval := range []int{0, -3} {
		seed := seedEvent("2025-12-28", domain.RepeatDaily, interval, "")
		assert.Equal(t, []string{"2025-12-28", "2025-12-29", "2025-12-30", "2025-12-31"}, isoDates(g.Dates(seed)))
	}

	seed := seedEvent("2025-10-15", domain.RepeatMonthly, 0, "")
	assert.Equal(t, []string{"2025-10-15", "2025-11-15", "2025-12-15"}, isoDates(g.Dates(seed)))
}

func TestGenerator_GenerateCopiesSeed(t *testing.T) {
	g := NewGenerator(DefaultPolicy())
	seed := seedEvent("2025-10-31", domain.RepeatMonthly, 1, "")
	seed.ID = "seed-id"
	seed.Repeat.ID = "group-1"
	original := seed

	events := g.Generate(context.Background(), seed)

	require.Len(t, events, 2)
	assert.Equal(t, date("2025-10-31"), events[0].Date)
	assert.Equal(t, date("2025-12-31"), events[1].Date)
	for _, e := range events {
		assert.Equal(t, seed.Title, e.Title)
		assert.Equal(t, seed.StartTime, e.StartTime)
		assert.Equal(t, seed.Location, e.Location)
		assert.Equal(t, seed.Repeat, e.Repeat)
	}
	assert.Equal(t, original, seed, "seed must not be modified")
}

func TestGenerator_ConcurrentUse(t *testing.T) {
	g := NewGenerator(DefaultPolicy())
	seed := seedEvent("2025-01-31", domain.RepeatMonthly, 1, "")
	want := g.Dates(seed)

	var wg sync.WaitGroup
	results := make([][]civil.Date, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Dates(seed)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerator_RecordsOccurrenceMetric(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	g := NewGenerator(DefaultPolicy())
	ctx := context.Background()
	g.Generate(ctx, seedEvent("2025-01-31", domain.RepeatMonthly, 1, "2025-12-31"))
	g.Generate(ctx, seedEvent("2025-05-01", domain.RepeatNone, 1, ""))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	m := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "calendar.recurrence.occurrences", m.Name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	byType := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("repeat.type"))
		byType[v.AsString()] = dp.Value
	}
	assert.Equal(t, int64(7), byType["monthly"])
	assert.Equal(t, int64(1), byType["none"])
}
