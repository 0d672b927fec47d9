package components

import (
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/readstore"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/writerepo"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	writerepoModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Resource
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceStore)),
		),
		// Schedule
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleStore)),
		),
		// Booking views double as the occupancy source for slot assembly
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewStore)),
			fx.As(new(queries.OccupancyStore)),
		),
		// Credit
		fx.Annotate(
			readstore.NewCreditReadStore,
			fx.As(new(queries.CreditViewStore)),
		),
		// Conflict reads run inside the commit transaction
		fx.Annotate(
			readstore.NewConflictReadStore,
			fx.As(new(shared.ConflictReads)),
		),
	),
)

var writerepoModule = fx.Module("persistence/writerepo",
	fx.Provide(
		fx.Annotate(
			writerepo.NewResourceRepository,
			fx.As(new(commands.ResourceRepository)),
		),
		fx.Annotate(
			writerepo.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			writerepo.NewHoldRepository,
			fx.As(new(commands.HoldRepository)),
		),
		fx.Annotate(
			writerepo.NewCreditRepository,
			fx.As(new(commands.CreditRepository)),
		),
	),
)
