package components

import (
	"kitchenhub/internal/pkg/clock"
	"kitchenhub/internal/usecase/commands"
	"kitchenhub/internal/usecase/queries"

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

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAccessGate,
		commands.NewBookingCommands,
		commands.NewExtensionCommands,
		commands.NewOverstayCommands,
	),
)
