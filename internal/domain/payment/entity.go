package payment

import (
	"errors"
	"time"

	"resource-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var ErrMissingTransactionID = errors.New("payment requires a gateway transaction id")

// Payment records the settled side of exactly one booking. Rows are never
// deleted; refunds append Refund records instead.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	transactionID string
	amount        booking.Money
	currency      string
	status        Status
	methodRef     string
	createdAt     time.Time
}

func NewCompletedPayment(bookingID uuid.UUID, transactionID string, amount booking.Money, currency, methodRef string) (*Payment, error) {
	if transactionID == "" {
		return nil, ErrMissingTransactionID
	}
	return &Payment{
		id:            uuid.New(),
		bookingID:     bookingID,
		transactionID: transactionID,
		amount:        amount,
		currency:      currency,
		status:        StatusCompleted,
		methodRef:     methodRef,
	}, nil
}

func ReconstructPayment(
	id, bookingID uuid.UUID,
	transactionID string,
	amount booking.Money,
	currency string,
	status Status,
	methodRef string,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		transactionID: transactionID,
		amount:        amount,
		currency:      currency,
		status:        status,
		methodRef:     methodRef,
		createdAt:     createdAt,
	}
}

func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) Amount() booking.Money { return p.amount }
func (p *Payment) Currency() string      { return p.currency }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) MethodRef() string     { return p.methodRef }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }

// Refund is an append-only record of money returned against a payment.
type Refund struct {
	ID        uuid.UUID
	PaymentID uuid.UUID
	RefundID  string
	Amount    booking.Money
	Status    string
	CreatedAt time.Time
}
