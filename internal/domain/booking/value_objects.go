package booking

import (
	"errors"
	"fmt"
	"time"

	"resource-booking/internal/domain/schedule"
)

var ErrInvalidRange = errors.New("start time must be before end time")

// TimeSlot is the half-open interval [start, end) a booking occupies.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidRange
	}
	return TimeSlot{start: start, end: end}, nil
}

func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Interval() schedule.Interval {
	return schedule.Interval{Start: ts.start, End: ts.end}
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return schedule.Overlaps(ts.start, ts.end, other.start, other.end)
}

// ToTstzrange renders the slot in PostgreSQL range literal form.
func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// Money is an amount in whole cents, two-decimal currency semantics.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}
