package repository

import (
	"context"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// Create inserts a booking row. The bookings exclusion constraint on
// (resource_id, slot) over active statuses is the authoritative overlap
// guard; a violation surfaces as KindConflict regardless of what the
// advisory availability check said earlier.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, resource_id, user_id, slot, status, created_at, updated_at)
		VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6, now(), now())
	`

	_, err := r.db.Exec(ctx, query,
		b.ID(),
		b.ResourceID(),
		b.UserID(),
		b.TimeSlot().Start(),
		b.TimeSlot().End(),
		b.Status().String(),
	)
	if err != nil {
		return infra.ClassifyPgError("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	const query = `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.ClassifyPgError("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "booking not found", pgx.ErrNoRows)
	}
	return nil
}
