package components

import (
	"resource-booking/internal/handler"
	"resource-booking/internal/handler/api"
	"resource-booking/internal/handler/middleware"
	"resource-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(s *jwt.Service) middleware.TokenValidator { return s },
		middleware.NewAuthMiddleware,
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
	),
	fx.Invoke(handler.NewRouter),
)
