package queries

import (
	"context"

	"github.com/google/uuid"
)

// BookingQueries is implemented by the read store against the bookings,
// resources and payments tables.
type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*BookingView, error)
}
