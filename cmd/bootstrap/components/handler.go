package components

import (
	"kitchenhub/internal/handler"
	"kitchenhub/internal/handler/api"
	"kitchenhub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewStorageHandler,
		api.NewOverstayHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
