package readstore

import (
	"context"
	"errors"

	"resource-booking/internal/infra"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) queries.BookingQueries {
	return &BookingReadStore{pool: pool}
}

const bookingViewSelect = `
	SELECT
		b.id,
		b.resource_id,
		r.name,
		b.user_id,
		lower(b.slot),
		upper(b.slot),
		b.status,
		p.amount_cents,
		p.currency,
		b.created_at,
		b.updated_at
	FROM bookings b
	JOIN resources r ON r.id = b.resource_id
	LEFT JOIN payments p ON p.booking_id = b.id
`

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID,
		&v.ResourceID,
		&v.ResourceName,
		&v.UserID,
		&v.StartTime,
		&v.EndTime,
		&v.Status,
		&v.AmountCents,
		&v.Currency,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *BookingReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.id = $1`

	v, err := scanBookingView(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.ClassifyPgError("failed to get booking", err)
	}
	return v, nil
}

func (s *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.user_id = $1 ORDER BY lower(b.slot) DESC`
	return s.list(ctx, query, userID)
}

func (s *BookingReadStore) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*queries.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.resource_id = $1 ORDER BY lower(b.slot) DESC`
	return s.list(ctx, query, resourceID)
}

func (s *BookingReadStore) list(ctx context.Context, query string, arg any) ([]*queries.BookingView, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.ClassifyPgError("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingView
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.ClassifyPgError("failed to scan booking row", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgError("failed to iterate booking rows", err)
	}
	return out, nil
}
