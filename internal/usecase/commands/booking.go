package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/event"
	"resource-booking/internal/domain/payment"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	UserID           uuid.UUID
	ResourceID       uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	PaymentMethodRef *string
}

// CreateBookingResult is the saga's three-way outcome: a confirmed
// booking, a request for payment details, or a gateway continuation. The
// latter two carry the quote and persist nothing.
type CreateBookingResult struct {
	Booking               *ConfirmedBooking
	RequiresPaymentMethod *PaymentRequired
	RequiresAction        *ActionRequired
}

type ConfirmedBooking struct {
	BookingID     uuid.UUID
	ResourceID    uuid.UUID
	UserID        uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	AmountCents   int64
	Currency      string
	PaymentID     uuid.UUID
	TransactionID string
}

type PaymentRequired struct {
	AmountCents int64
	Currency    string
	ResourceID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
}

type ActionRequired struct {
	AmountCents  int64
	Currency     string
	ClientSecret string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status booking.Status, reason string) (*shared.BookingSnapshot, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	payments PaymentCommands
	events   EventPublisher
	clk      clock.Clock
	currency string
	logger   *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	payments PaymentCommands,
	events EventPublisher,
	clk clock.Clock,
	currency string,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		payments: payments,
		events:   events,
		clk:      clk,
		currency: currency,
		logger:   logger,
	}
}

// CreateBooking runs the reservation saga: check, price, charge, persist,
// publish. The charge happens before any row exists, so a confirmed
// booking always has its money; the price paid is the OrphanedPayment
// window when persistence fails after a successful charge.
func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	slot, err := booking.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRange)
	}
	if slot.Start().Before(b.clk.Now()) {
		return nil, errs.Mark(fmt.Errorf("slot starts in the past"), errs.ErrInvalidRange)
	}

	// Resource snapshot is read once; pricing uses this rate for the whole
	// saga even if the catalog changes mid-flight.
	res, err := b.uow.Reads().ResourceByID(ctx, params.ResourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Advisory fast path: reject before spending a gateway round-trip. The
	// exclusion constraint re-validates at insert time.
	conflicts, err := b.uow.Reads().ActiveBookingsOverlapping(ctx, params.ResourceID, slot.Start(), slot.End())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(conflicts) > 0 {
		return nil, errs.ErrUnavailable
	}

	amountCents := booking.QuoteCents(res.HourlyRateCents, slot)

	if params.PaymentMethodRef == nil || *params.PaymentMethodRef == "" {
		return &CreateBookingResult{
			RequiresPaymentMethod: &PaymentRequired{
				AmountCents: amountCents,
				Currency:    b.currency,
				ResourceID:  params.ResourceID,
				StartTime:   slot.Start(),
				EndTime:     slot.End(),
			},
		}, nil
	}

	charge, err := b.gateway.Charge(ctx, ChargeRequest{
		AmountCents:      amountCents,
		Currency:         b.currency,
		PaymentMethodRef: *params.PaymentMethodRef,
		IdempotencyKey:   chargeIdempotencyKey(params),
		Metadata: map[string]string{
			"requester_id": params.UserID.String(),
			"resource_id":  params.ResourceID.String(),
		},
	})
	if err != nil {
		// Indeterminate and unavailable sentinels pass through untouched;
		// the caller must not blindly retry an indeterminate charge.
		return nil, err
	}

	switch charge.Outcome {
	case OutcomeFailed:
		b.logger.Warn("charge declined",
			"resource_id", params.ResourceID.String(),
			"reason", charge.FailureReason)
		return nil, errs.Mark(fmt.Errorf("gateway: %s", charge.FailureReason), errs.ErrPaymentFailed)

	case OutcomeRequiresAction:
		return &CreateBookingResult{
			RequiresAction: &ActionRequired{
				AmountCents:  amountCents,
				Currency:     b.currency,
				ClientSecret: charge.ClientSecret,
			},
		}, nil

	case OutcomeSucceeded:
		// continue below

	default:
		return nil, errs.New("unknown charge outcome: " + string(charge.Outcome))
	}

	confirmed, err := b.persistConfirmedBooking(ctx, params, slot, amountCents, charge)
	if err != nil {
		return nil, err
	}

	b.events.Publish(ctx, event.BookingConfirmed{
		Booking:              confirmed.BookingID,
		Resource:             confirmed.ResourceID,
		User:                 confirmed.UserID,
		PaymentTransactionID: confirmed.TransactionID,
	})

	// Cache the payment method's metadata for later display. Best effort:
	// the booking is already confirmed and paid.
	if err := b.payments.SyncPaymentMethod(ctx, params.UserID, *params.PaymentMethodRef); err != nil {
		b.logger.Warn("payment method sync failed after booking",
			"booking_id", confirmed.BookingID.String(),
			"payment_method_ref", *params.PaymentMethodRef,
			"error", err.Error())
	}

	return &CreateBookingResult{Booking: confirmed}, nil
}

func (b *bookingCommandsImpl) persistConfirmedBooking(
	ctx context.Context,
	params CreateBookingParams,
	slot booking.TimeSlot,
	amountCents int64,
	charge *ChargeResult,
) (*ConfirmedBooking, error) {
	entity := booking.NewConfirmedBooking(params.ResourceID, params.UserID, slot)

	amount, err := booking.NewMoney(amountCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrOrphanedPayment)
	}
	pay, err := payment.NewCompletedPayment(entity.ID(), charge.TransactionID, amount, b.currency, *params.PaymentMethodRef)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrOrphanedPayment)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, entity); err != nil {
			return err
		}
		return tx.Payments().Create(ctx, pay)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Lost the race: another saga confirmed an overlapping slot
			// between our advisory check and this insert. The charge went
			// through, so give the money back before reporting Unavailable.
			b.refundLostRace(ctx, charge.TransactionID)
			return nil, errs.Mark(err, errs.ErrUnavailable)
		}

		// Money taken, no record. Alert path, never a plain user error.
		b.logger.Error("orphaned payment: booking persistence failed after successful charge",
			"transaction_id", charge.TransactionID,
			"resource_id", params.ResourceID.String(),
			"requester_id", params.UserID.String(),
			"amount_cents", amountCents,
			"error", err.Error())
		return nil, errs.Mark(err, errs.ErrOrphanedPayment)
	}

	return &ConfirmedBooking{
		BookingID:     entity.ID(),
		ResourceID:    entity.ResourceID(),
		UserID:        entity.UserID(),
		StartTime:     slot.Start(),
		EndTime:       slot.End(),
		Status:        entity.Status().String(),
		AmountCents:   amountCents,
		Currency:      b.currency,
		PaymentID:     pay.ID(),
		TransactionID: charge.TransactionID,
	}, nil
}

func (b *bookingCommandsImpl) refundLostRace(ctx context.Context, transactionID string) {
	refund, err := b.gateway.Refund(ctx, transactionID, nil)
	if err != nil {
		b.logger.Error("refund after lost booking race failed; manual reconciliation required",
			"transaction_id", transactionID,
			"error", err.Error())
		return
	}
	b.logger.Info("refunded charge after lost booking race",
		"transaction_id", transactionID,
		"refund_id", refund.RefundID)
}

// UpdateBookingStatus is a direct status transition. It does not touch the
// interval, so it never serializes against the overlap invariant, and it
// never triggers a charge or refund by itself.
func (b *bookingCommandsImpl) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status booking.Status, reason string) (*shared.BookingSnapshot, error) {
	if !status.IsValid() {
		return nil, errs.Mark(booking.ErrInvalidStatus, errs.ErrInvalidTransition)
	}

	var snap *shared.BookingSnapshot
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if !booking.Status(current.Status).CanTransitionTo(status) {
			return errs.Mark(
				fmt.Errorf("%s -> %s", current.Status, status),
				errs.ErrInvalidTransition,
			)
		}

		if err := tx.Bookings().UpdateStatus(ctx, bookingID, status); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		updated := *current
		updated.Status = status.String()
		snap = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.publishStatusEvent(ctx, snap, status, reason)
	return snap, nil
}

func (b *bookingCommandsImpl) publishStatusEvent(ctx context.Context, snap *shared.BookingSnapshot, status booking.Status, reason string) {
	switch status {
	case booking.StatusConfirmed:
		b.events.Publish(ctx, event.BookingConfirmed{
			Booking:  snap.ID,
			Resource: snap.ResourceID,
			User:     snap.UserID,
		})
	case booking.StatusCanceled:
		b.events.Publish(ctx, event.BookingCanceled{
			Booking:  snap.ID,
			Resource: snap.ResourceID,
			User:     snap.UserID,
			Reason:   reason,
		})
	}
}

// chargeIdempotencyKey derives the gateway idempotency key from the
// booking intent, so retrying the identical request retries the identical
// charge and any change to the intent produces a fresh key.
func chargeIdempotencyKey(params CreateBookingParams) string {
	ref := ""
	if params.PaymentMethodRef != nil {
		ref = *params.PaymentMethodRef
	}
	payload := fmt.Sprintf("%s|%s|%d|%d|%s",
		params.UserID, params.ResourceID,
		params.StartTime.UTC().Unix(), params.EndTime.UTC().Unix(),
		ref)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
