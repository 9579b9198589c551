package commands

import (
	"context"

	"resource-booking/internal/domain/event"
)

// ChargeOutcome is a closed variant so every branch's side effects are
// handled exhaustively: persist on Succeeded, return the continuation on
// RequiresAction, abort on Failed.
type ChargeOutcome string

const (
	OutcomeSucceeded      ChargeOutcome = "SUCCEEDED"
	OutcomeRequiresAction ChargeOutcome = "REQUIRES_ACTION"
	OutcomeFailed         ChargeOutcome = "FAILED"
)

type ChargeRequest struct {
	AmountCents      int64
	Currency         string
	PaymentMethodRef string
	// IdempotencyKey makes a retried charge safe: the gateway must not
	// execute the same key twice.
	IdempotencyKey string
	Metadata       map[string]string
}

type ChargeResult struct {
	TransactionID string
	Outcome       ChargeOutcome
	// ClientSecret is the gateway's continuation token when the outcome is
	// RequiresAction.
	ClientSecret  string
	FailureReason string
}

type RefundResult struct {
	RefundID string
	Status   string
}

type PaymentMethodInfo struct {
	Ref      string
	Type     string
	Brand    *string
	Last4    *string
	ExpMonth *int32
	ExpYear  *int32
}

// PaymentGateway is the contract around the external settlement service.
// Implementations must map an unknown outcome after dispatch (timeout,
// connection dropped mid-request) to errs.ErrPaymentIndeterminate and a
// pre-dispatch transient failure to errs.ErrGatewayUnavailable.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, transactionID string, amountCents *int64) (*RefundResult, error)
	GetPaymentMethod(ctx context.Context, ref string) (*PaymentMethodInfo, error)
}

// EventPublisher decouples the saga from the bus implementation.
// Publication is fire-and-forget; subscribers cannot fail the saga.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.LifecycleEvent)
}
