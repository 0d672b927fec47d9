package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/api"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/middleware"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/config"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Bookings     *api.BookingHandler
	Holds        *api.HoldHandler
	Webhooks     *api.WebhookHandler
	Credits      *api.CreditHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, metrics *middleware.Metrics) {
	setupMiddleware(engine, cfg, metrics)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, metrics *middleware.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(metrics.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		// Availability reads are public: the booking widget queries them
		// before the client signs in.
		availability := apiGroup.Group("/availability")
		{
			addRoutes(availability, []route{
				{Method: http.MethodGet, Path: "/slots", Handler: h.Availability.GetSlots},
				{Method: http.MethodGet, Path: "/resources/:id/windows", Handler: h.Availability.GetOpenWindows},
			})
		}

		// Payment provider callback, authenticated by HMAC signature.
		apiGroup.POST("/webhooks/payment", h.Webhooks.ConfirmPayment)

		holds := apiGroup.Group("/holds")
		holds.Use(authMiddleware.RequireAuth())
		{
			addRoutes(holds, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Holds.CreateHold},
				{Method: http.MethodDelete, Path: "/:token", Handler: h.Holds.CancelHold},
				{
					Method: http.MethodPost, Path: "/sweep", Handler: h.Holds.SweepExpired,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(jwt.RoleStaff)},
				},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Bookings.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: h.Bookings.ListBookings},
				{
					Method: http.MethodGet, Path: "/schedule", Handler: h.Bookings.GetDaySchedule,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(jwt.RoleStaff)},
				},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.GetBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Bookings.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Bookings.RescheduleBooking},
			})
		}

		credits := apiGroup.Group("/credits")
		credits.Use(authMiddleware.RequireAuth())
		{
			addRoutes(credits, []route{
				{Method: http.MethodGet, Path: "/balance", Handler: h.Credits.GetBalance},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
