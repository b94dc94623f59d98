package components

import (
	"bookcore/internal/infra/holdstore"
	"bookcore/internal/infra/readstore"
	"bookcore/internal/infra/uow"
	"bookcore/internal/usecase/commands"
	"bookcore/internal/usecase/queries"
	"bookcore/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			holdstore.NewRedisStore,
			fx.As(new(commands.HoldStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewBalanceReadStore,
			fx.As(new(queries.BalanceReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) shared.DBTX {
	return pool
}
