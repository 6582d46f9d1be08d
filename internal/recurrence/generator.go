package recurrence

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/rezkam/calendar/internal/domain"
)

const meterName = "github.com/rezkam/calendar/internal/recurrence"

// expander emits occurrence dates from start through end inclusive.
// start is never after end when an expander is called.
type expander func(start, end civil.Date, interval int) []civil.Date

// expanderFor returns the stepping policy for a repeat type, or nil when the
// type produces only the seed occurrence.
func expanderFor(t domain.RepeatType) expander {
	switch t {
	case domain.RepeatDaily:
		return expandDaily
	case domain.RepeatWeekly:
		return expandWeekly
	case domain.RepeatMonthly:
		return expandMonthly
	case domain.RepeatYearly:
		return expandYearly
	default:
		return nil
	}
}

// Generator expands seed events into occurrences. It holds no per-call state
// and is safe for concurrent use.
type Generator struct {
	policy      Policy
	occurrences metric.Int64Counter
}

// NewGenerator creates a generator bounded by policy.
func NewGenerator(policy Policy) *Generator {
	counter, err := otel.Meter(meterName).Int64Counter(
		"calendar.recurrence.occurrences",
		metric.WithDescription("Number of occurrences produced by recurrence expansion"),
		metric.WithUnit("{occurrence}"),
	)
	if err != nil {
		otel.Handle(err)
		counter = noop.Int64Counter{}
	}

	return &Generator{
		policy:      policy,
		occurrences: counter,
	}
}

// Policy returns the bounds the generator applies.
func (g *Generator) Policy() Policy {
	return g.policy
}

// Generate returns copies of seed, one per occurrence date, in ascending date order.
// The first occurrence is always the seed date. The seed is not modified.
func (g *Generator) Generate(ctx context.Context, seed domain.Event) []domain.Event {
	dates := g.Dates(seed)

	events := make([]domain.Event, 0, len(dates))
	for _, d := range dates {
		events = append(events, seed.WithDate(d))
	}

	g.occurrences.Add(ctx, int64(len(events)),
		metric.WithAttributes(attribute.String("repeat.type", string(seed.Repeat.Type))))

	return events
}

// Dates returns the occurrence dates of seed without copying the event.
//
// A seed dated after the effective end date yields the seed date alone, the
// same as a non-repeating event. Intervals below 1 are treated as 1.
func (g *Generator) Dates(seed domain.Event) []civil.Date {
	start := seed.Date

	expand := expanderFor(seed.Repeat.Type)
	if expand == nil {
		return []civil.Date{start}
	}

	end := g.policy.EffectiveEndDate(seed.Repeat.EndDate)
	if start.After(end) {
		return []civil.Date{start}
	}

	return expand(start, end, max(seed.Repeat.Interval, 1))
}

func expandDaily(start, end civil.Date, interval int) []civil.Date {
	return stepDays(start, end, interval)
}

func expandWeekly(start, end civil.Date, interval int) []civil.Date {
	return stepDays(start, end, 7*interval)
}

func stepDays(start, end civil.Date, days int) []civil.Date {
	var dates []civil.Date
	for d := start; !d.After(end); d = d.AddDays(days) {
		dates = append(dates, d)
	}
	return dates
}

// expandMonthly keeps the seed's day of month and skips months that lack it.
// The loop tests the nominal date, so a skipped month does not stop iteration.
func expandMonthly(start, end civil.Date, interval int) []civil.Date {
	endKey := keyOf(end)
	day := start.Day

	var dates []civil.Date
	year, month := start.Year, start.Month
	for DateKey(year, month, day) <= endKey {
		if day <= DaysInMonth(year, month) {
			dates = append(dates, civil.Date{Year: year, Month: month, Day: day})
		}

		month += time.Month(interval)
		for month > time.December {
			month -= 12
			year++
		}
	}
	return dates
}

// expandYearly keeps the seed's month and day. A Feb 29 seed recurs in leap
// years only; a Feb 28 seed from a common year recurs in common years only.
func expandYearly(start, end civil.Date, interval int) []civil.Date {
	endKey := keyOf(end)
	month, day := start.Month, start.Day

	leapDay := month == time.February && day == 29
	commonFeb28 := month == time.February && day == 28 && !IsLeapYear(start.Year)

	var dates []civil.Date
	for year := start.Year; DateKey(year, month, day) <= endKey; year += interval {
		switch {
		case leapDay:
			if !IsLeapYear(year) {
				continue
			}
		case commonFeb28:
			if IsLeapYear(year) {
				continue
			}
		default:
			if day > DaysInMonth(year, month) {
				continue
			}
		}
		dates = append(dates, civil.Date{Year: year, Month: month, Day: day})
	}
	return dates
}
