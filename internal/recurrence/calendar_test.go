package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/calendar/internal/domain"
)

func TestIsLeapYear(t *testing.T) {
	testCases := []struct {
		year int
		leap bool
	}{
		{2024, true},
		{2025, false},
		{1900, false},
		{2000, true},
		{2100, false},
		{2400, true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.leap, IsLeapYear(tc.year), "year %d", tc.year)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(1900, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
	assert.Equal(t, 30, DaysInMonth(2025, time.November))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))

	// agrees with time package normalization for every month of a 400-year cycle sample
	for _, year := range []int{1999, 2000, 2023, 2024, 2100} {
		for m := time.January; m <= time.December; m++ {
			want := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
			assert.Equal(t, want, DaysInMonth(year, m), "%d-%02d", year, m)
		}
	}
}

func TestDateKey(t *testing.T) {
	t.Run("epoch", func(t *testing.T) {
		assert.Equal(t, int64(0), DateKey(1970, time.January, 1))
		assert.Equal(t, int64(-1), DateKey(1969, time.December, 31))
	})

	t.Run("ordering follows calendar order", func(t *testing.T) {
		assert.Less(t, DateKey(2025, time.January, 31), DateKey(2025, time.February, 1))
		assert.Less(t, DateKey(2024, time.December, 31), DateKey(2025, time.January, 1))
		assert.Equal(t, DateKey(2025, time.March, 3), DateKey(2025, time.March, 3))
	})

	t.Run("nominal day rolls forward", func(t *testing.T) {
		assert.Equal(t, DateKey(2025, time.May, 1), DateKey(2025, time.April, 31))
		assert.Equal(t, DateKey(2025, time.March, 1), DateKey(2025, time.February, 29))
	})
}

func TestFormatISO(t *testing.T) {
	assert.Equal(t, "2025-01-05", FormatISO(2025, time.January, 5))
	assert.Equal(t, "2025-12-31", FormatISO(2025, time.December, 31))
	assert.Equal(t, "2025-04-31", FormatISO(2025, time.April, 31))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatISO(d.Year, d.Month, d.Day))

	_, err = ParseDate("2025-02-29")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = ParseDate("not-a-date")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
