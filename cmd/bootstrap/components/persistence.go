package components

import (
	"kitchenhub/internal/infra/readstore"
	"kitchenhub/internal/infra/repository"
	"kitchenhub/internal/usecase/commands"
	"kitchenhub/internal/usecase/queries"
	"kitchenhub/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Kitchen
		fx.Annotate(
			readstore.NewKitchenReadStore,
			fx.As(new(commands.KitchenReads)),
			fx.As(new(shared.ScheduleReads)),
		),
		// Listing
		fx.Annotate(
			readstore.NewListingReadStore,
			fx.As(new(commands.ListingReads)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		shared.NewPgxTxRunner,
		// Booking
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		// Storage
		fx.Annotate(
			repository.NewStorageBookingRepository,
			fx.As(new(commands.StorageBookingRepository)),
		),
		// Equipment
		fx.Annotate(
			repository.NewEquipmentBookingRepository,
			fx.As(new(commands.EquipmentBookingRepository)),
		),
		// Access
		fx.Annotate(
			repository.NewAccessRepository,
			fx.As(new(commands.AccessRepository)),
		),
		// Overstay
		fx.Annotate(
			repository.NewOverstayRepository,
			fx.As(new(commands.OverstayRepository)),
		),
		// Extension
		fx.Annotate(
			repository.NewExtensionRepository,
			fx.As(new(commands.ExtensionRepository)),
		),
	),
)
