package gateway

import (
	"context"
	"errors"
	"log/slog"

	"resource-booking/internal/pkg/config"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeGateway charges through PaymentIntents with confirm-on-create, so a
// single round trip yields a terminal (or requires_action) state.
type StripeGateway struct {
	api    *client.API
	logger *slog.Logger
	cfg    config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig, logger *slog.Logger) commands.PaymentGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{
		api:    api,
		logger: logger,
		cfg:    cfg,
	}
}

func (g *StripeGateway) Charge(ctx context.Context, req commands.ChargeRequest) (*commands.ChargeResult, error) {
	chargeCtx, cancel := context.WithTimeout(ctx, g.cfg.ChargeTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: chargeCtx,
		},
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethodRef),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.SetIdempotencyKey(req.IdempotencyKey)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, g.classifyChargeError(ctx, err)
	}

	return g.mapIntent(intent), nil
}

// classifyChargeError separates "the charge definitely did not happen" from
// "the charge may have happened". A timeout or canceled context after
// dispatch means the intent state is unknown; callers must not retry with a
// fresh idempotency key.
func (g *StripeGateway) classifyChargeError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return errs.Mark(err, errs.ErrPaymentIndeterminate)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeCard {
			// Declines come back as errors from confirm-on-create; the saga
			// treats them the same as a FAILED intent status.
			return errs.Mark(err, errs.ErrPaymentFailed)
		}
		if stripeErr.HTTPStatusCode >= 500 {
			return errs.Mark(err, errs.ErrGatewayUnavailable)
		}
		return errs.Mark(err, errs.ErrPaymentFailed)
	}

	// Connection-level failures before a response: could not reach the
	// gateway at all.
	return errs.Mark(err, errs.ErrGatewayUnavailable)
}

func (g *StripeGateway) mapIntent(intent *stripe.PaymentIntent) *commands.ChargeResult {
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		if intent.ID == "" {
			// A success without a transaction id cannot be refunded or
			// reconciled later, so it is not treated as a success.
			g.logger.Error("gateway reported success without a transaction id")
			return &commands.ChargeResult{
				Outcome:       commands.OutcomeFailed,
				FailureReason: "gateway returned success without transaction id",
			}
		}
		return &commands.ChargeResult{
			TransactionID: intent.ID,
			Outcome:       commands.OutcomeSucceeded,
		}
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		return &commands.ChargeResult{
			TransactionID: intent.ID,
			Outcome:       commands.OutcomeRequiresAction,
			ClientSecret:  intent.ClientSecret,
		}
	default:
		reason := string(intent.Status)
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			reason = intent.LastPaymentError.Msg
		}
		return &commands.ChargeResult{
			TransactionID: intent.ID,
			Outcome:       commands.OutcomeFailed,
			FailureReason: reason,
		}
	}
}

func (g *StripeGateway) Refund(ctx context.Context, transactionID string, amountCents *int64) (*commands.RefundResult, error) {
	params := &stripe.RefundParams{
		Params: stripe.Params{
			Context: ctx,
		},
		PaymentIntent: stripe.String(transactionID),
	}
	if amountCents != nil {
		params.Amount = stripe.Int64(*amountCents)
	}

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 500 {
			return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
		}
		return nil, errs.Wrap(err, "failed to refund payment")
	}

	return &commands.RefundResult{
		RefundID: refund.ID,
		Status:   string(refund.Status),
	}, nil
}

func (g *StripeGateway) GetPaymentMethod(ctx context.Context, ref string) (*commands.PaymentMethodInfo, error) {
	params := &stripe.PaymentMethodParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}

	pm, err := g.api.PaymentMethods.Get(ref, params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to get payment method")
	}

	info := &commands.PaymentMethodInfo{
		Ref:  pm.ID,
		Type: string(pm.Type),
	}
	if pm.Card != nil {
		brand := string(pm.Card.Brand)
		last4 := pm.Card.Last4
		expMonth := int32(pm.Card.ExpMonth)
		expYear := int32(pm.Card.ExpYear)
		info.Brand = &brand
		info.Last4 = &last4
		info.ExpMonth = &expMonth
		info.ExpYear = &expYear
	}
	return info, nil
}
