package response

import (
	"time"

	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	ResourceID    uuid.UUID `json:"resourceId"`
	UserID        uuid.UUID `json:"userId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amountCents"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transactionId"`
}

// PaymentRequiredResponse quotes the booking without creating anything;
// the client retries with a payment method reference.
type PaymentRequiredResponse struct {
	RequiresPaymentMethod bool      `json:"requiresPaymentMethod"`
	AmountCents           int64     `json:"amountCents"`
	Currency              string    `json:"currency"`
	ResourceID            uuid.UUID `json:"resourceId"`
	StartTime             time.Time `json:"startTime"`
	EndTime               time.Time `json:"endTime"`
}

type ActionRequiredResponse struct {
	RequiresAction bool   `json:"requiresAction"`
	AmountCents    int64  `json:"amountCents"`
	Currency       string `json:"currency"`
	ClientSecret   string `json:"clientSecret"`
}

type BookingViewResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	UserID       uuid.UUID `json:"userId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	AmountCents  *int64    `json:"amountCents,omitempty"`
	Currency     *string   `json:"currency,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BookingStatusResponse struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resourceId"`
	Status     string    `json:"status"`
}

type RefundResponse struct {
	RefundID    string `json:"refundId"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amountCents"`
}

func FromConfirmedBooking(b *commands.ConfirmedBooking) *BookingResponse {
	return &BookingResponse{
		ID:            b.BookingID,
		ResourceID:    b.ResourceID,
		UserID:        b.UserID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		AmountCents:   b.AmountCents,
		Currency:      b.Currency,
		TransactionID: b.TransactionID,
	}
}

func FromPaymentRequired(p *commands.PaymentRequired) *PaymentRequiredResponse {
	return &PaymentRequiredResponse{
		RequiresPaymentMethod: true,
		AmountCents:           p.AmountCents,
		Currency:              p.Currency,
		ResourceID:            p.ResourceID,
		StartTime:             p.StartTime,
		EndTime:               p.EndTime,
	}
}

func FromActionRequired(a *commands.ActionRequired) *ActionRequiredResponse {
	return &ActionRequiredResponse{
		RequiresAction: true,
		AmountCents:    a.AmountCents,
		Currency:       a.Currency,
		ClientSecret:   a.ClientSecret,
	}
}

func FromBookingView(v *queries.BookingView) *BookingViewResponse {
	return &BookingViewResponse{
		ID:           v.ID,
		ResourceID:   v.ResourceID,
		ResourceName: v.ResourceName,
		UserID:       v.UserID,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		Status:       v.Status,
		AmountCents:  v.AmountCents,
		Currency:     v.Currency,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromBookingSnapshot(s *shared.BookingSnapshot) *BookingStatusResponse {
	return &BookingStatusResponse{
		ID:         s.ID,
		ResourceID: s.ResourceID,
		Status:     s.Status,
	}
}

func FromRefundResult(r *commands.RefundBookingResult) *RefundResponse {
	return &RefundResponse{
		RefundID:    r.RefundID,
		Status:      r.Status,
		AmountCents: r.AmountCents,
	}
}
