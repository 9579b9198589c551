package queries

import (
	"context"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/schedule"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	// CheckAvailability is advisory only: the storage layer re-enforces
	// the overlap invariant at booking insert time.
	CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (*AvailabilityCheck, error)
	GetFreeSlots(ctx context.Context, resourceID uuid.UUID, date time.Time, duration time.Duration) ([]FreeSlot, error)
	ListWindows(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]WindowView, error)
}

type availabilityQueriesImpl struct {
	reads    shared.Reads
	currency string
}

func NewAvailabilityQueries(reads shared.Reads, currency string) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: reads, currency: currency}
}

func (a *availabilityQueriesImpl) CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (*AvailabilityCheck, error) {
	if !start.Before(end) {
		return nil, errs.ErrInvalidRange
	}

	res, err := a.resourceByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	active, err := a.reads.ActiveBookingsOverlapping(ctx, resourceID, start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	conflicts := make([]Conflict, 0, len(active))
	for _, b := range active {
		conflicts = append(conflicts, Conflict{
			BookingID: b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    b.Status,
		})
	}

	slot := booking.ReconstructTimeSlot(start, end)
	return &AvailabilityCheck{
		Free:       len(conflicts) == 0,
		Conflicts:  conflicts,
		QuoteCents: booking.QuoteCents(res.HourlyRateCents, slot),
		Currency:   a.currency,
	}, nil
}

// GetFreeSlots clips each window intersecting the day to the day
// boundary, subtracts active bookings, and prices each slot. Windows
// yield independent sequences: two disjoint windows on one day are not
// merged.
func (a *availabilityQueriesImpl) GetFreeSlots(ctx context.Context, resourceID uuid.UUID, date time.Time, duration time.Duration) ([]FreeSlot, error) {
	res, err := a.resourceByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return []FreeSlot{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	windows, err := a.reads.WindowsIntersecting(ctx, resourceID, dayStart, dayEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	active, err := a.reads.ActiveBookingsOverlapping(ctx, resourceID, dayStart, dayEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	blocked := make([]schedule.Interval, 0, len(active))
	for _, b := range active {
		blocked = append(blocked, schedule.Interval{Start: b.StartTime, End: b.EndTime})
	}

	costCents := booking.QuoteCentsForDuration(res.HourlyRateCents, duration)

	slots := []FreeSlot{}
	for _, w := range windows {
		if !w.IsAvailable {
			continue
		}
		clipped, ok := schedule.ClipToDay(w.StartTime, w.EndTime, date)
		if !ok {
			continue
		}
		for _, s := range schedule.EnumerateSlots(clipped.Start, clipped.End, duration, blocked) {
			slots = append(slots, FreeSlot{
				StartTime: s.Start,
				EndTime:   s.End,
				CostCents: costCents,
			})
		}
	}
	return slots, nil
}

func (a *availabilityQueriesImpl) ListWindows(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]WindowView, error) {
	if _, err := a.resourceByID(ctx, resourceID); err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	windows, err := a.reads.WindowsIntersecting(ctx, resourceID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]WindowView, 0, len(windows))
	for _, w := range windows {
		views = append(views, WindowView{
			ID:          w.ID,
			ResourceID:  w.ResourceID,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: w.IsAvailable,
		})
	}
	return views, nil
}

func (a *availabilityQueriesImpl) resourceByID(ctx context.Context, resourceID uuid.UUID) (*shared.ResourceSnapshot, error) {
	res, err := a.reads.ResourceByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}
