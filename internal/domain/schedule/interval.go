package schedule

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

func (i Interval) OverlapsAny(blocked []Interval) bool {
	for _, b := range blocked {
		if i.Overlaps(b) {
			return true
		}
	}
	return false
}

// EnumerateSlots produces consecutive candidate slots of exactly duration,
// starting at windowStart and advancing by duration (no sliding window).
// A slot is included only if it overlaps none of the blocked intervals.
// A non-positive duration or an empty window yields no slots.
func EnumerateSlots(windowStart, windowEnd time.Time, duration time.Duration, blocked []Interval) []Interval {
	if duration <= 0 || !windowStart.Before(windowEnd) {
		return nil
	}

	var slots []Interval
	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(duration) {
		slot := Interval{Start: cur, End: cur.Add(duration)}
		if !slot.OverlapsAny(blocked) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// ClipToDay restricts [start,end) to the calendar day beginning at
// midnight of day in day's location. Returns false when the interval does
// not intersect the day.
func ClipToDay(start, end time.Time, day time.Time) (Interval, bool) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	if !Overlaps(start, end, dayStart, dayEnd) {
		return Interval{}, false
	}

	clipped := Interval{Start: start, End: end}
	if clipped.Start.Before(dayStart) {
		clipped.Start = dayStart
	}
	if clipped.End.After(dayEnd) {
		clipped.End = dayEnd
	}
	return clipped, true
}
