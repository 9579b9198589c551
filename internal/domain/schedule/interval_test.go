//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"resource-booking/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"identical intervals", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"containment", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"touching endpoints do not overlap", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, schedule.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Symmetry
			assert.Equal(t, tc.expected, schedule.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestEnumerateSlots(t *testing.T) {
	t.Run("empty blocked list yields floor((end-start)/d) consecutive slots", func(t *testing.T) {
		slots := schedule.EnumerateSlots(at(9, 0), at(18, 0), time.Hour, nil)
		require.Len(t, slots, 9)

		for i, s := range slots {
			assert.Equal(t, at(9+i, 0), s.Start)
			assert.Equal(t, at(10+i, 0), s.End)
		}
	})

	t.Run("trailing remainder shorter than duration is dropped", func(t *testing.T) {
		slots := schedule.EnumerateSlots(at(9, 0), at(10, 30), time.Hour, nil)
		require.Len(t, slots, 1)
		assert.Equal(t, at(9, 0), slots[0].Start)
	})

	t.Run("blocked intervals remove overlapping slots only", func(t *testing.T) {
		blocked := []schedule.Interval{{Start: at(10, 30), End: at(11, 30)}}
		slots := schedule.EnumerateSlots(at(9, 0), at(13, 0), time.Hour, blocked)

		// 10:00-11:00 and 11:00-12:00 both overlap the booking
		require.Len(t, slots, 2)
		assert.Equal(t, at(9, 0), slots[0].Start)
		assert.Equal(t, at(12, 0), slots[1].Start)
	})

	t.Run("booking touching a slot boundary does not block it", func(t *testing.T) {
		blocked := []schedule.Interval{{Start: at(10, 0), End: at(11, 0)}}
		slots := schedule.EnumerateSlots(at(9, 0), at(12, 0), time.Hour, blocked)

		require.Len(t, slots, 2)
		assert.Equal(t, at(9, 0), slots[0].Start)
		assert.Equal(t, at(11, 0), slots[1].Start)
	})

	t.Run("non-positive duration yields empty sequence", func(t *testing.T) {
		assert.Empty(t, schedule.EnumerateSlots(at(9, 0), at(18, 0), 0, nil))
		assert.Empty(t, schedule.EnumerateSlots(at(9, 0), at(18, 0), -time.Hour, nil))
	})

	t.Run("empty window yields empty sequence", func(t *testing.T) {
		assert.Empty(t, schedule.EnumerateSlots(at(9, 0), at(9, 0), time.Hour, nil))
		assert.Empty(t, schedule.EnumerateSlots(at(10, 0), at(9, 0), time.Hour, nil))
	})

	t.Run("pure function of inputs", func(t *testing.T) {
		first := schedule.EnumerateSlots(at(9, 0), at(18, 0), time.Hour, nil)
		second := schedule.EnumerateSlots(at(9, 0), at(18, 0), time.Hour, nil)
		assert.Equal(t, first, second)
	})
}

func TestClipToDay(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("window inside day is unchanged", func(t *testing.T) {
		clipped, ok := schedule.ClipToDay(at(9, 0), at(18, 0), day)
		require.True(t, ok)
		assert.Equal(t, at(9, 0), clipped.Start)
		assert.Equal(t, at(18, 0), clipped.End)
	})

	t.Run("window spanning midnight is clipped to day boundaries", func(t *testing.T) {
		start := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 3, 2, 0, 0, 0, time.UTC)

		clipped, ok := schedule.ClipToDay(start, end, day)
		require.True(t, ok)
		assert.Equal(t, day, clipped.Start)
		assert.Equal(t, day.Add(24*time.Hour), clipped.End)
	})

	t.Run("window on another day does not intersect", func(t *testing.T) {
		start := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC)

		_, ok := schedule.ClipToDay(start, end, day)
		assert.False(t, ok)
	})

	t.Run("window ending at midnight does not intersect the next day", func(t *testing.T) {
		start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
		end := day

		_, ok := schedule.ClipToDay(start, end, day)
		assert.False(t, ok)
	})
}
