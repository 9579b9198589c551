package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types
type ResourceSnapshot struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	Capacity        int
}

type BookingSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	UserID     uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     string
}

type WindowSnapshot struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	IsAvailable bool
}

type PaymentSnapshot struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	TransactionID string
	AmountCents   int64
	Currency      string
	Status        string
}
