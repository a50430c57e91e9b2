package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtent(t *testing.T) {
	t.Run("stay parses check-in and check-out", func(t *testing.T) {
		extent, err := ParseExtent("STAY", "2026-10-01", "2026-10-04", "", "")
		require.NoError(t, err)
		assert.Equal(t, ExtentStay, extent.Kind)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), extent.CheckIn)
		assert.Equal(t, time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC), extent.CheckOut)
	})

	t.Run("event parses a single date", func(t *testing.T) {
		extent, err := ParseExtent("EVENT", "", "", "2026-11-20", "")
		require.NoError(t, err)
		assert.Equal(t, ExtentEvent, extent.Kind)
		assert.Equal(t, time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC), extent.Date)
	})

	t.Run("slot requires a time slot", func(t *testing.T) {
		_, err := ParseExtent("SLOT", "", "", "2026-11-20", "")
		assert.ErrorIs(t, err, ErrInvalidRequest)

		extent, err := ParseExtent("SLOT", "", "", "2026-11-20", "DINNER")
		require.NoError(t, err)
		assert.Equal(t, "DINNER", extent.TimeSlot)
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		_, err := ParseExtent("STAY", "not-a-date", "2026-10-04", "", "")
		assert.ErrorIs(t, err, ErrInvalidRequest)

		_, err = ParseExtent("EVENT", "", "", "20-11-2026", "")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := ParseExtent("WEEKLY", "", "", "2026-11-20", "")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestExtentValidate(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

	t.Run("check-out must be after check-in", func(t *testing.T) {
		extent, err := ParseExtent("STAY", "2026-10-04", "2026-10-04", "", "")
		require.NoError(t, err)
		assert.ErrorIs(t, extent.Validate(now), ErrInvalidRequest)
	})

	t.Run("past check-in is rejected", func(t *testing.T) {
		extent, err := ParseExtent("STAY", "2026-08-30", "2026-09-02", "", "")
		require.NoError(t, err)
		assert.ErrorIs(t, extent.Validate(now), ErrInvalidRequest)
	})

	t.Run("same-day booking is allowed", func(t *testing.T) {
		extent, err := ParseExtent("EVENT", "", "", "2026-09-01", "")
		require.NoError(t, err)
		assert.NoError(t, extent.Validate(now))
	})

	t.Run("past event date is rejected", func(t *testing.T) {
		extent, err := ParseExtent("SLOT", "", "", "2026-08-31", "LUNCH")
		require.NoError(t, err)
		assert.ErrorIs(t, extent.Validate(now), ErrInvalidRequest)
	})
}

func TestExtentOverlaps(t *testing.T) {
	stay := func(in, out string) *TemporalExtent {
		extent, err := ParseExtent("STAY", in, out, "", "")
		require.NoError(t, err)
		return extent
	}

	t.Run("stay ranges are half-open", func(t *testing.T) {
		a := stay("2026-10-01", "2026-10-04")

		// Back-to-back: checkout day equals next check-in, no overlap
		assert.False(t, a.Overlaps(stay("2026-10-04", "2026-10-06")))
		assert.False(t, stay("2026-09-28", "2026-10-01").Overlaps(a))

		// One shared night overlaps
		assert.True(t, a.Overlaps(stay("2026-10-03", "2026-10-05")))
		assert.True(t, a.Overlaps(stay("2026-09-30", "2026-10-02")))

		// Containment overlaps
		assert.True(t, a.Overlaps(stay("2026-10-02", "2026-10-03")))
		assert.True(t, stay("2026-10-02", "2026-10-03").Overlaps(a))
	})

	t.Run("events overlap only on the same date", func(t *testing.T) {
		a, _ := ParseExtent("EVENT", "", "", "2026-11-20", "")
		b, _ := ParseExtent("EVENT", "", "", "2026-11-20", "")
		c, _ := ParseExtent("EVENT", "", "", "2026-11-21", "")

		assert.True(t, a.Overlaps(b))
		assert.False(t, a.Overlaps(c))
	})

	t.Run("slots need date and slot to match", func(t *testing.T) {
		lunch, _ := ParseExtent("SLOT", "", "", "2026-11-20", "LUNCH")
		dinner, _ := ParseExtent("SLOT", "", "", "2026-11-20", "DINNER")
		lunchNextDay, _ := ParseExtent("SLOT", "", "", "2026-11-21", "LUNCH")
		sameLunch, _ := ParseExtent("SLOT", "", "", "2026-11-20", "LUNCH")

		assert.True(t, lunch.Overlaps(sameLunch))
		assert.False(t, lunch.Overlaps(dinner))
		assert.False(t, lunch.Overlaps(lunchNextDay))
	})

	t.Run("different kinds never overlap", func(t *testing.T) {
		a := stay("2026-11-19", "2026-11-22")
		b, _ := ParseExtent("EVENT", "", "", "2026-11-20", "")

		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})
}

func TestExtentNights(t *testing.T) {
	extent, err := ParseExtent("STAY", "2026-10-01", "2026-10-04", "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, extent.Nights())

	event, err := ParseExtent("EVENT", "", "", "2026-10-01", "")
	require.NoError(t, err)
	assert.Equal(t, 0, event.Nights())
}

func TestExtentHasBegun(t *testing.T) {
	now := time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)

	started, _ := ParseExtent("STAY", "2026-10-01", "2026-10-05", "", "")
	assert.True(t, started.HasBegun(now))

	today, _ := ParseExtent("STAY", "2026-10-02", "2026-10-05", "", "")
	assert.True(t, today.HasBegun(now))

	future, _ := ParseExtent("STAY", "2026-10-03", "2026-10-05", "", "")
	assert.False(t, future.HasBegun(now))

	futureSlot, _ := ParseExtent("SLOT", "", "", "2026-10-03", "DINNER")
	assert.False(t, futureSlot.HasBegun(now))
}

func TestExpectedKind(t *testing.T) {
	assert.Equal(t, ExtentStay, ExpectedKind("ROOM"))
	assert.Equal(t, ExtentEvent, ExpectedKind("BANQUET"))
	assert.Equal(t, ExtentSlot, ExpectedKind("TABLE"))
	assert.Equal(t, ExtentKind(""), ExpectedKind("CABANA"))
}
