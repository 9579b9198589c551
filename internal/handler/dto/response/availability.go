package response

import (
	"time"

	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityCheckResponse struct {
	Free       bool               `json:"free"`
	Conflicts  []ConflictResponse `json:"conflicts"`
	QuoteCents int64              `json:"quoteCents"`
	Currency   string             `json:"currency"`
}

type ConflictResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type FreeSlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CostCents int64     `json:"costCents"`
}

type WindowResponse struct {
	ID          uuid.UUID `json:"id"`
	ResourceID  uuid.UUID `json:"resourceId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
}

func FromAvailabilityCheck(check *queries.AvailabilityCheck) *AvailabilityCheckResponse {
	conflicts := make([]ConflictResponse, len(check.Conflicts))
	for i, c := range check.Conflicts {
		conflicts[i] = ConflictResponse{
			BookingID: c.BookingID,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Status:    c.Status,
		}
	}
	return &AvailabilityCheckResponse{
		Free:       check.Free,
		Conflicts:  conflicts,
		QuoteCents: check.QuoteCents,
		Currency:   check.Currency,
	}
}

func FromFreeSlots(slots []queries.FreeSlot) []FreeSlotResponse {
	out := make([]FreeSlotResponse, len(slots))
	for i, s := range slots {
		out[i] = FreeSlotResponse{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			CostCents: s.CostCents,
		}
	}
	return out
}

func FromWindowViews(views []queries.WindowView) []WindowResponse {
	out := make([]WindowResponse, len(views))
	for i, w := range views {
		out[i] = WindowResponse{
			ID:          w.ID,
			ResourceID:  w.ResourceID,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: w.IsAvailable,
		}
	}
	return out
}

func FromWindowSnapshot(w *shared.WindowSnapshot) *WindowResponse {
	return &WindowResponse{
		ID:          w.ID,
		ResourceID:  w.ResourceID,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}
