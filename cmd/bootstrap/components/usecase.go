package components

import (
	"bookcore/internal/pkg/clock"
	"bookcore/internal/pkg/config"
	"bookcore/internal/usecase/commands"
	"bookcore/internal/usecase/queries"
	"bookcore/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewHoldCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewBalanceQueries,
	),
)

func NewHoldCommands(
	cfg config.Config,
	store commands.HoldStore,
	unitOfWork shared.UnitOfWork,
	clk clock.Clock,
) commands.HoldCommands {
	return commands.NewHoldCommands(store, unitOfWork, clk, cfg.Hold.TTL)
}
