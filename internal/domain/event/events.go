package event

import "github.com/google/uuid"

// Kind tags the lifecycle event union.
type Kind string

const (
	KindBookingCreated   Kind = "booking.created"
	KindBookingConfirmed Kind = "booking.confirmed"
	KindBookingCanceled  Kind = "booking.canceled"
)

// LifecycleEvent is published on the in-process bus after a booking state
// change. Events are ephemeral: not persisted, delivered at most once per
// subscriber per publish.
type LifecycleEvent interface {
	Kind() Kind
	BookingID() uuid.UUID
}

type BookingCreated struct {
	Booking  uuid.UUID
	Resource uuid.UUID
	User     uuid.UUID
}

func (e BookingCreated) Kind() Kind           { return KindBookingCreated }
func (e BookingCreated) BookingID() uuid.UUID { return e.Booking }

type BookingConfirmed struct {
	Booking  uuid.UUID
	Resource uuid.UUID
	User     uuid.UUID
	// PaymentTransactionID is the gateway transaction id, empty when the
	// confirmation did not involve a charge (manual status change).
	PaymentTransactionID string
}

func (e BookingConfirmed) Kind() Kind           { return KindBookingConfirmed }
func (e BookingConfirmed) BookingID() uuid.UUID { return e.Booking }

type BookingCanceled struct {
	Booking  uuid.UUID
	Resource uuid.UUID
	User     uuid.UUID
	Reason   string
}

func (e BookingCanceled) Kind() Kind           { return KindBookingCanceled }
func (e BookingCanceled) BookingID() uuid.UUID { return e.Booking }
