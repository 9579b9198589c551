package commands

import (
	"context"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/payment"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RefundBookingResult struct {
	RefundID    string
	Status      string
	AmountCents int64
}

type PaymentCommands interface {
	// RefundBooking is caller-invoked; cancellation never refunds
	// automatically.
	RefundBooking(ctx context.Context, bookingID uuid.UUID, amountCents *int64) (*RefundBookingResult, error)
	// SyncPaymentMethod caches gateway payment-method metadata locally.
	SyncPaymentMethod(ctx context.Context, userID uuid.UUID, ref string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, gateway: gateway}
}

func (p *paymentCommandsImpl) RefundBooking(ctx context.Context, bookingID uuid.UUID, amountCents *int64) (*RefundBookingResult, error) {
	pay, err := p.uow.Reads().PaymentByBookingID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPaymentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	refundAmount := pay.AmountCents
	if amountCents != nil {
		refundAmount = *amountCents
	}
	if refundAmount <= 0 || refundAmount > pay.AmountCents {
		return nil, errs.ErrInvalidRange
	}

	result, err := p.gateway.Refund(ctx, pay.TransactionID, amountCents)
	if err != nil {
		return nil, err
	}

	amount, err := booking.NewMoney(refundAmount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Payment rows are append-only: the refund becomes its own record.
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Payments().CreateRefund(ctx, &payment.Refund{
			ID:        uuid.New(),
			PaymentID: pay.ID,
			RefundID:  result.RefundID,
			Amount:    amount,
			Status:    result.Status,
		})
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &RefundBookingResult{
		RefundID:    result.RefundID,
		Status:      result.Status,
		AmountCents: refundAmount,
	}, nil
}

func (p *paymentCommandsImpl) SyncPaymentMethod(ctx context.Context, userID uuid.UUID, ref string) error {
	info, err := p.gateway.GetPaymentMethod(ctx, ref)
	if err != nil {
		return err
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.PaymentMethods().Upsert(ctx, &shared.PaymentMethodRecord{
			Ref:      info.Ref,
			UserID:   userID,
			Type:     info.Type,
			Brand:    info.Brand,
			Last4:    info.Last4,
			ExpMonth: info.ExpMonth,
			ExpYear:  info.ExpYear,
		})
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
