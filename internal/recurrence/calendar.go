// Package recurrence expands a seed event and its repeat rule into the
// ordered list of occurrences, and validates repeat rules against a horizon policy.
package recurrence

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rezkam/calendar/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// IsLeapYear applies the Gregorian leap year rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DateKey returns days since 1970-01-01 for the given date, in UTC.
// Days past the end of the month roll forward, so the key of a nominal
// date like April 31 equals the key of May 1.
func DateKey(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// FormatISO zero-pads to YYYY-MM-DD. The input is not validated.
func FormatISO(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate parses a strict YYYY-MM-DD date, rejecting days the month does not have.
func ParseDate(s string) (civil.Date, error) {
	return domain.NewDate(s)
}

func keyOf(d civil.Date) int64 {
	return DateKey(d.Year, d.Month, d.Day)
}
