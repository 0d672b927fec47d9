package components

import (
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/clock"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	shared.NewConflictChecker,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(
			resources queries.ResourceStore,
			schedules queries.ScheduleStore,
			occupancy queries.OccupancyStore,
			clk clock.Clock,
			cfg config.BookingConfig,
		) queries.AvailabilityQueries {
			return queries.NewAvailabilityQueries(resources, schedules, occupancy, clk, cfg.SlotGridMinutes)
		},
		queries.NewBookingQueries,
		queries.NewCreditQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewHoldCommands,
	),
)
