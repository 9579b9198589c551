package request

import (
	"time"

	"github.com/google/uuid"
)

type AddWindowRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	// IsAvailable defaults to true; false declares a blackout window.
	IsAvailable *bool `json:"is_available,omitempty"`
}

func (r AddWindowRequest) GetIsAvailable() bool {
	if r.IsAvailable == nil {
		return true
	}
	return *r.IsAvailable
}

type CheckAvailabilityQuery struct {
	ResourceID uuid.UUID `form:"resource_id" binding:"required"`
	StartTime  time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime    time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type FreeSlotsQuery struct {
	Date            string `form:"date" binding:"required"`
	DurationMinutes int    `form:"duration" binding:"required,min=1"`
}

type ListWindowsQuery struct {
	Date string `form:"date" binding:"required"`
}
