package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	timeSlot   TimeSlot
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewConfirmedBooking creates a booking directly in CONFIRMED status. The
// saga persists a booking only after a successful charge, so no PENDING
// hold row ever exists for the happy path.
func NewConfirmedBooking(resourceID, userID uuid.UUID, slot TimeSlot) *Booking {
	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		userID:     userID,
		timeSlot:   slot,
		status:     StatusConfirmed,
	}
}

func ReconstructBooking(
	id, resourceID, userID uuid.UUID,
	slot TimeSlot,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		timeSlot:   slot,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// TransitionTo validates the status machine. The slot itself is immutable
// after creation; rescheduling is a cancel plus a new booking.
func (b *Booking) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) TimeSlot() TimeSlot    { return b.timeSlot }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
