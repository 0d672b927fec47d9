package components

import (
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/api"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/middleware"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewHoldHandler,
		api.NewCreditHandler,
		func(holdCommands commands.HoldCommands, cfg config.Config) *api.WebhookHandler {
			return api.NewWebhookHandler(holdCommands, cfg.Payment.WebhookSecret)
		},
		middleware.NewAuthMiddleware,
		middleware.NewMetrics,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	availability *api.AvailabilityHandler,
	bookings *api.BookingHandler,
	holds *api.HoldHandler,
	webhooks *api.WebhookHandler,
	credits *api.CreditHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Bookings:     bookings,
		Holds:        holds,
		Webhooks:     webhooks,
		Credits:      credits,
	}
}
