//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"sync"

	"resource-booking/internal/usecase/commands"
)

// FakeGateway stands in for the real settlement service. Charges succeed
// by default; tests flip the knobs to exercise decline and refund paths.
// Idempotency keys are honored the way the real gateway honors them: the
// same key returns the same transaction.
type FakeGateway struct {
	mu sync.Mutex

	DeclineAll bool

	charges map[string]string // idempotency key -> transaction id
	refunds []string          // refunded transaction ids
	seq     int64
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		charges: make(map[string]string),
	}
}

func (g *FakeGateway) Charge(_ context.Context, req commands.ChargeRequest) (*commands.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.DeclineAll {
		return &commands.ChargeResult{
			Outcome:       commands.OutcomeFailed,
			FailureReason: "card_declined",
		}, nil
	}

	if txID, ok := g.charges[req.IdempotencyKey]; ok {
		return &commands.ChargeResult{
			TransactionID: txID,
			Outcome:       commands.OutcomeSucceeded,
		}, nil
	}

	g.seq++
	txID := fmt.Sprintf("pi_fake_%d", g.seq)
	g.charges[req.IdempotencyKey] = txID
	return &commands.ChargeResult{
		TransactionID: txID,
		Outcome:       commands.OutcomeSucceeded,
	}, nil
}

func (g *FakeGateway) Refund(_ context.Context, transactionID string, _ *int64) (*commands.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refunds = append(g.refunds, transactionID)
	g.seq++
	return &commands.RefundResult{
		RefundID: fmt.Sprintf("re_fake_%d", g.seq),
		Status:   "succeeded",
	}, nil
}

func (g *FakeGateway) GetPaymentMethod(_ context.Context, ref string) (*commands.PaymentMethodInfo, error) {
	brand := "visa"
	last4 := "4242"
	return &commands.PaymentMethodInfo{
		Ref:   ref,
		Type:  "card",
		Brand: &brand,
		Last4: &last4,
	}, nil
}

func (g *FakeGateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

func (g *FakeGateway) Refunds() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.refunds))
	copy(out, g.refunds)
	return out
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.DeclineAll = false
	g.charges = make(map[string]string)
	g.refunds = nil
	g.seq = 0
}
