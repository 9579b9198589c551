package repository

import (
	"context"

	"resource-booking/internal/domain/payment"
	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	const query = `
		INSERT INTO payments (id, booking_id, transaction_id, amount_cents, currency, status, payment_method_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	`

	_, err := r.db.Exec(ctx, query,
		p.ID(),
		p.BookingID(),
		p.TransactionID(),
		p.Amount().Cents(),
		p.Currency(),
		p.Status().String(),
		p.MethodRef(),
	)
	if err != nil {
		return infra.ClassifyPgError("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) CreateRefund(ctx context.Context, rf *payment.Refund) error {
	const query = `
		INSERT INTO refunds (id, payment_id, refund_id, amount_cents, status, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`

	_, err := r.db.Exec(ctx, query,
		rf.ID,
		rf.PaymentID,
		rf.RefundID,
		rf.Amount.Cents(),
		rf.Status,
	)
	if err != nil {
		return infra.ClassifyPgError("failed to create refund", err)
	}
	return nil
}
