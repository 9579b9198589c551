package components

import (
	"resource-booking/internal/infra/readstore"
	"resource-booking/internal/infra/uow"
	"resource-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Pool-bound reads for the query side
		func(u shared.UnitOfWork) shared.Reads { return u.Reads() },
		readstore.NewBookingReadStore,
	),
)
