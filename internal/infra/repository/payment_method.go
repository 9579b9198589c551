package repository

import (
	"context"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/usecase/shared"
)

type PaymentMethodRepository struct {
	db db.DBTX
}

func NewPaymentMethodRepository(dbtx db.DBTX) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: dbtx}
}

func (r *PaymentMethodRepository) Upsert(ctx context.Context, m *shared.PaymentMethodRecord) error {
	const query = `
		INSERT INTO payment_methods (ref, user_id, type, brand, last4, exp_month, exp_year, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (ref) DO UPDATE SET
			type = EXCLUDED.type,
			brand = EXCLUDED.brand,
			last4 = EXCLUDED.last4,
			exp_month = EXCLUDED.exp_month,
			exp_year = EXCLUDED.exp_year,
			updated_at = now()
	`

	_, err := r.db.Exec(ctx, query,
		m.Ref,
		m.UserID,
		m.Type,
		m.Brand,
		m.Last4,
		m.ExpMonth,
		m.ExpYear,
	)
	if err != nil {
		return infra.ClassifyPgError("failed to upsert payment method", err)
	}
	return nil
}
