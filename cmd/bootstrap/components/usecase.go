package components

import (
	"log/slog"

	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		newBookingCommands,
		commands.NewAvailabilityCommands,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		newAvailabilityQueries,
	),
)

func newBookingCommands(
	uow shared.UnitOfWork,
	gateway commands.PaymentGateway,
	payments commands.PaymentCommands,
	events commands.EventPublisher,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.BookingCommands {
	return commands.NewBookingCommands(uow, gateway, payments, events, clk, cfg.Stripe.Currency, logger)
}

func newAvailabilityQueries(reads shared.Reads, cfg config.Config) queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(reads, cfg.Stripe.Currency)
}
