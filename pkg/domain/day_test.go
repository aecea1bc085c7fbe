package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "conduct/pkg/domain-errors"
)

func TestParseDay(t *testing.T) {
	t.Run("accepts canonical dates", func(t *testing.T) {
		d, err := ParseDay("2026-03-01")
		require.NoError(t, err)
		assert.Equal(t, Day("2026-03-01"), d)
	})

	t.Run("rejects non-canonical and garbage input", func(t *testing.T) {
		for _, input := range []string{"", "2026-3-1", "01-03-2026", "2026-03-01T00:00:00Z", "not-a-day", "2026-02-30"} {
			_, err := ParseDay(input)
			require.Error(t, err, "input %q", input)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestDayOf_ZoneBoundary(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on March 1st is already March 2nd in Berlin.
	ts := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, Day("2026-03-01"), DayOf(ts, time.UTC))
	assert.Equal(t, Day("2026-03-02"), DayOf(ts, berlin))
}

func TestDay_Ordering(t *testing.T) {
	a := Day("2026-02-28")
	b := Day("2026-03-01")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.False(t, a.Before(a))
}

func TestDay_Time(t *testing.T) {
	d := Day("2026-03-01")
	got := d.Time(time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
}
