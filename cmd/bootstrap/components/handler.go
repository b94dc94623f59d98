package components

import (
	"bookcore/internal/handler"
	"bookcore/internal/handler/api"
	"bookcore/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewHoldHandler,
		api.NewBalanceHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
