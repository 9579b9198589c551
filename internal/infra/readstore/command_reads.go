package readstore

import (
	"context"
	"errors"
	"time"

	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the command-side read surface. It is bound either to
// the pool (pre-transaction validation) or to a live transaction
// (re-validation before writes); the SQL is identical in both cases.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	const query = `
		SELECT id, name, hourly_rate_cents, capacity
		FROM resources
		WHERE id = $1
	`

	var (
		resID    uuid.UUID
		name     string
		rate     int64
		capacity int
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&resID, &name, &rate, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "resource not found", err)
		}
		return nil, infra.ClassifyPgError("failed to get resource", err)
	}

	// Catalog rows are written externally; reject anything that would
	// break pricing instead of quoting off bad data.
	res, err := resource.NewResource(resID, name, rate, capacity)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid resource row", err)
	}

	return &shared.ResourceSnapshot{
		ID:              res.ID(),
		Name:            res.Name(),
		HourlyRateCents: res.HourlyRateCents(),
		Capacity:        res.Capacity(),
	}, nil
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, resource_id, user_id, lower(slot), upper(slot), status
		FROM bookings
		WHERE id = $1
	`

	var s shared.BookingSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.ResourceID, &s.UserID, &s.StartTime, &s.EndTime, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.ClassifyPgError("failed to get booking", err)
	}
	return &s, nil
}

func (r *CommandReads) ActiveBookingsOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]shared.BookingSnapshot, error) {
	const query = `
		SELECT id, resource_id, user_id, lower(slot), upper(slot), status
		FROM bookings
		WHERE resource_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND slot && tstzrange($2, $3, '[)')
		ORDER BY lower(slot)
	`

	rows, err := r.db.Query(ctx, query, resourceID, start, end)
	if err != nil {
		return nil, infra.ClassifyPgError("failed to list overlapping bookings", err)
	}
	defer rows.Close()

	var out []shared.BookingSnapshot
	for rows.Next() {
		var s shared.BookingSnapshot
		if err := rows.Scan(&s.ID, &s.ResourceID, &s.UserID, &s.StartTime, &s.EndTime, &s.Status); err != nil {
			return nil, infra.ClassifyPgError("failed to scan booking row", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgError("failed to iterate booking rows", err)
	}
	return out, nil
}

func (r *CommandReads) WindowsIntersecting(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]shared.WindowSnapshot, error) {
	const query = `
		SELECT id, resource_id, start_time, end_time, is_available
		FROM availability_windows
		WHERE resource_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, resourceID, from, to)
	if err != nil {
		return nil, infra.ClassifyPgError("failed to list availability windows", err)
	}
	defer rows.Close()

	var out []shared.WindowSnapshot
	for rows.Next() {
		var w shared.WindowSnapshot
		if err := rows.Scan(&w.ID, &w.ResourceID, &w.StartTime, &w.EndTime, &w.IsAvailable); err != nil {
			return nil, infra.ClassifyPgError("failed to scan window row", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgError("failed to iterate window rows", err)
	}
	return out, nil
}

func (r *CommandReads) PaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	const query = `
		SELECT id, booking_id, transaction_id, amount_cents, currency, status
		FROM payments
		WHERE booking_id = $1
	`

	var s shared.PaymentSnapshot
	err := r.db.QueryRow(ctx, query, bookingID).Scan(&s.ID, &s.BookingID, &s.TransactionID, &s.AmountCents, &s.Currency, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "payment not found", err)
		}
		return nil, infra.ClassifyPgError("failed to get payment", err)
	}
	return &s, nil
}
