package booking

import (
	"math"
	"time"
)

// QuoteCents prices a slot as wall-clock hours times the resource's hourly
// rate, rounded half-up to whole cents. Business-hours calendars are not
// consulted.
func QuoteCents(hourlyRateCents int64, slot TimeSlot) int64 {
	return quoteCents(hourlyRateCents, slot.Duration())
}

// QuoteCentsForDuration prices an arbitrary duration, used by the free-slot
// generator where no TimeSlot value exists yet.
func QuoteCentsForDuration(hourlyRateCents int64, d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return quoteCents(hourlyRateCents, d)
}

func quoteCents(hourlyRateCents int64, d time.Duration) int64 {
	amount := float64(hourlyRateCents) * d.Hours()
	return int64(math.Floor(amount + 0.5))
}
