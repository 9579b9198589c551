package notification

import (
	"context"
	"log/slog"

	"resource-booking/internal/domain/event"
	"resource-booking/internal/pkg/eventbus"
)

// Listener turns booking lifecycle events into notification dispatches.
// Delivery here is a structured log line standing in for an email or push
// provider; the subscription contract (async, failure never reaches the
// publisher) is the part that matters.
type Listener struct {
	logger *slog.Logger
}

func NewListener(logger *slog.Logger) *Listener {
	return &Listener{logger: logger}
}

func (l *Listener) Register(bus *eventbus.Bus) {
	bus.Subscribe(event.KindBookingCreated, l.onBookingCreated)
	bus.Subscribe(event.KindBookingConfirmed, l.onBookingConfirmed)
	bus.Subscribe(event.KindBookingCanceled, l.onBookingCanceled)
}

func (l *Listener) onBookingCreated(_ context.Context, ev event.LifecycleEvent) error {
	e, ok := ev.(event.BookingCreated)
	if !ok {
		return nil
	}
	l.logger.Info("notification: booking created",
		"booking_id", e.Booking.String(),
		"resource_id", e.Resource.String(),
		"user_id", e.User.String())
	return nil
}

func (l *Listener) onBookingConfirmed(_ context.Context, ev event.LifecycleEvent) error {
	e, ok := ev.(event.BookingConfirmed)
	if !ok {
		return nil
	}
	l.logger.Info("notification: booking confirmed",
		"booking_id", e.Booking.String(),
		"resource_id", e.Resource.String(),
		"user_id", e.User.String(),
		"transaction_id", e.PaymentTransactionID)
	return nil
}

func (l *Listener) onBookingCanceled(_ context.Context, ev event.LifecycleEvent) error {
	e, ok := ev.(event.BookingCanceled)
	if !ok {
		return nil
	}
	l.logger.Info("notification: booking canceled",
		"booking_id", e.Booking.String(),
		"resource_id", e.Resource.String(),
		"user_id", e.User.String(),
		"reason", e.Reason)
	return nil
}
