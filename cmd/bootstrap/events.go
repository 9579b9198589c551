package bootstrap

import (
	"context"
	"log/slog"

	"resource-booking/internal/notification"
	"resource-booking/internal/pkg/eventbus"
	"resource-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventBus,
		func(bus *eventbus.Bus) commands.EventPublisher { return bus },
		notification.NewListener,
	),
	fx.Invoke(RegisterListeners),
)

func NewEventBus(lc fx.Lifecycle, logger *slog.Logger) *eventbus.Bus {
	bus := eventbus.New(logger)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			bus.Drain()
			return nil
		},
	})

	return bus
}

func RegisterListeners(bus *eventbus.Bus, listener *notification.Listener) {
	listener.Register(bus)
}
