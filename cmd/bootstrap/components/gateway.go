package components

import (
	"log/slog"

	"resource-booking/internal/infra/gateway"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) commands.PaymentGateway {
	return gateway.NewStripeGateway(cfg.Stripe, logger)
}
