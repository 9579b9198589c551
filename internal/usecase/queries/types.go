package queries

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityCheck struct {
	Free      bool
	Conflicts []Conflict
	// QuoteCents prices the requested range at the resource's current rate.
	QuoteCents int64
	Currency   string
}

type Conflict struct {
	BookingID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

type FreeSlot struct {
	StartTime time.Time
	EndTime   time.Time
	CostCents int64
}

type WindowView struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	IsAvailable bool
}

type BookingView struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	UserID       uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	AmountCents  *int64
	Currency     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
