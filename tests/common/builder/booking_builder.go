//go:build unit || e2e

package builder

import (
	"time"

	dombooking "resource-booking/internal/domain/booking"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	ResourceID       uuid.UUID
	ResourceName     string
	UserID           uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	Status           string
	AmountCents      int64
	Currency         string
	PaymentMethodRef string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(48 * time.Hour)
	return &BookingBuilder{
		ID:               uuid.New(),
		ResourceID:       uuid.New(),
		ResourceName:     "Conference Room A",
		UserID:           uuid.New(),
		StartTime:        start,
		EndTime:          start.Add(2 * time.Hour),
		Status:           dombooking.StatusConfirmed.String(),
		AmountCents:      10000,
		Currency:         "usd",
		PaymentMethodRef: "pm_test_visa",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	return dombooking.ReconstructBooking(
		b.ID,
		b.ResourceID,
		b.UserID,
		dombooking.ReconstructTimeSlot(b.StartTime, b.EndTime),
		dombooking.Status(b.Status),
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	amount := b.AmountCents
	currency := b.Currency
	return &queries.BookingView{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		UserID:       b.UserID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status,
		AmountCents:  &amount,
		Currency:     &currency,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildCreateParams() commands.CreateBookingParams {
	ref := b.PaymentMethodRef
	return commands.CreateBookingParams{
		UserID:           b.UserID,
		ResourceID:       b.ResourceID,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		PaymentMethodRef: &ref,
	}
}

type ResourceBuilder struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	Capacity        int
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:              uuid.New(),
		Name:            "Conference Room A",
		HourlyRateCents: 5000,
		Capacity:        1,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

func (r *ResourceBuilder) BuildSnapshot() *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:              r.ID,
		Name:            r.Name,
		HourlyRateCents: r.HourlyRateCents,
		Capacity:        r.Capacity,
	}
}

type WindowBuilder struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	IsAvailable bool
}

func NewWindowBuilder() *WindowBuilder {
	day := time.Now().UTC().AddDate(0, 0, 2).Truncate(24 * time.Hour)
	return &WindowBuilder{
		ID:          uuid.New(),
		ResourceID:  uuid.New(),
		StartTime:   day.Add(9 * time.Hour),
		EndTime:     day.Add(18 * time.Hour),
		IsAvailable: true,
	}
}

func (w *WindowBuilder) With(mutate func(*WindowBuilder)) *WindowBuilder {
	mutate(w)
	return w
}

func (w *WindowBuilder) BuildSnapshot() shared.WindowSnapshot {
	return shared.WindowSnapshot{
		ID:          w.ID,
		ResourceID:  w.ResourceID,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}
