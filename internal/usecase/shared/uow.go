package shared

import (
	"context"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/payment"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: pool-bound reads for command validation outside transactions
	Reads() Reads
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Windows() AvailabilityWindowRepository
	PaymentMethods() PaymentMethodRepository
	// Reads bound to this transaction, for re-validation before writes
	Reads() Reads
}

// Reads is the command-side read surface. The availability answers here
// are advisory: the bookings exclusion constraint is the authoritative
// guard against overlapping inserts.
type Reads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	ActiveBookingsOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]BookingSnapshot, error)
	WindowsIntersecting(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]WindowSnapshot, error)
	PaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	CreateRefund(ctx context.Context, r *payment.Refund) error
}

type AvailabilityWindowRepository interface {
	Create(ctx context.Context, w *WindowSnapshot) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentMethodRepository caches gateway payment-method metadata keyed by
// the gateway's opaque reference.
type PaymentMethodRepository interface {
	Upsert(ctx context.Context, m *PaymentMethodRecord) error
}

type PaymentMethodRecord struct {
	Ref      string
	UserID   uuid.UUID
	Type     string
	Brand    *string
	Last4    *string
	ExpMonth *int32
	ExpYear  *int32
}
