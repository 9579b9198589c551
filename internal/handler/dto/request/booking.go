package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID       uuid.UUID `json:"resource_id" binding:"required"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	EndTime          time.Time `json:"end_time" binding:"required"`
	PaymentMethodRef *string   `json:"payment_method_ref,omitempty"`
}

// GetPaymentMethodRef normalizes an empty or whitespace-only reference to
// absent, which the saga answers with a payment-required response.
func (r CreateBookingRequest) GetPaymentMethodRef() *string {
	if r.PaymentMethodRef == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PaymentMethodRef)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

func (r UpdateBookingStatusRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}

type RefundBookingRequest struct {
	AmountCents *int64 `json:"amount_cents,omitempty"`
}
