//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/credit"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/api"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/errs"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/jwt"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	cmds     *stubBookingCommands
	views    *stubBookingQueries
	actorID  uuid.UUID
	staffRtr *gin.Engine
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.actorID = uuid.New()
	s.cmds = &stubBookingCommands{}
	s.views = &stubBookingQueries{}

	handler := api.NewBookingHandler(s.cmds, s.views)

	s.router = gin.New()
	clientAuth := stubAuth(s.actorID, jwt.RoleClient)
	s.router.POST("/bookings", clientAuth, handler.CreateBooking)
	s.router.GET("/bookings/:id", clientAuth, handler.GetBooking)
	s.router.GET("/bookings", clientAuth, handler.ListBookings)
	s.router.DELETE("/bookings/:id", clientAuth, handler.CancelBooking)
	s.router.POST("/bookings/:id/reschedule", clientAuth, handler.RescheduleBooking)

	s.staffRtr = gin.New()
	staffAuth := stubAuth(s.actorID, jwt.RoleStaff)
	s.staffRtr.POST("/bookings", staffAuth, handler.CreateBooking)
	s.staffRtr.GET("/bookings/schedule", staffAuth, handler.GetDaySchedule)
	s.staffRtr.DELETE("/bookings/:id", staffAuth, handler.CancelBooking)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func sampleView(id, clientID uuid.UUID) *queries.BookingView {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &queries.BookingView{
		ID:         id,
		ClientID:   clientID,
		Category:   "simulator",
		BayID:      uuid.New(),
		BayName:    "Bay 3",
		Start:      start,
		End:        start.Add(time.Hour),
		Status:     "confirmed",
		PriceCents: 4500,
		CreatedAt:  start.Add(-24 * time.Hour),
		UpdatedAt:  start.Add(-24 * time.Hour),
	}
}

func (s *BookingHandlerTestSuite) validBody() map[string]any {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return map[string]any{
		"category": "simulator",
		"bay_id":   uuid.New().String(),
		"start":    start.Format(time.RFC3339),
		"end":      start.Add(time.Hour).Format(time.RFC3339),
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("returns 201 for a valid request", func() {
		view := sampleView(uuid.New(), s.actorID)
		s.cmds.createFn = func(_ context.Context, p commands.CreateBookingParams) (*queries.BookingView, error) {
			s.Equal(s.actorID, p.ClientID)
			return view, nil
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", s.validBody(), true)

		s.Equal(http.StatusCreated, rec.Code)
		body := decodeBody(s.T(), rec)
		s.Equal(view.ID.String(), body["id"])
	})

	s.Run("client cannot book on behalf of another client", func() {
		other := uuid.New()
		reqBody := s.validBody()
		reqBody["client_id"] = other.String()

		s.cmds.createFn = func(_ context.Context, p commands.CreateBookingParams) (*queries.BookingView, error) {
			// Non-staff actors always book for themselves.
			s.Equal(s.actorID, p.ClientID)
			return sampleView(uuid.New(), s.actorID), nil
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, true)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("staff books on behalf of a client", func() {
		member := uuid.New()
		reqBody := s.validBody()
		reqBody["client_id"] = member.String()

		s.cmds.createFn = func(_ context.Context, p commands.CreateBookingParams) (*queries.BookingView, error) {
			s.Equal(member, p.ClientID)
			return sampleView(uuid.New(), member), nil
		}

		rec := performRequest(s.T(), s.staffRtr, http.MethodPost, "/bookings", reqBody, true)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("returns 402 with amounts when credit is short", func() {
		s.cmds.createFn = func(_ context.Context, _ commands.CreateBookingParams) (*queries.BookingView, error) {
			return nil, &credit.InsufficientError{
				RequestedMinutes: 60,
				AvailableMinutes: 45,
			}
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", s.validBody(), true)

		s.Equal(http.StatusPaymentRequired, rec.Code)
		body := decodeBody(s.T(), rec)
		detail := body["detail"].(map[string]any)
		s.Equal(float64(60), detail["requested_minutes"])
		s.Equal(float64(45), detail["available_minutes"])
	})

	s.Run("returns 422 when a closure rule covers the interval", func() {
		ruleID := uuid.New()
		s.cmds.createFn = func(_ context.Context, _ commands.CreateBookingParams) (*queries.BookingView, error) {
			return nil, &shared.ClosedError{RuleID: ruleID, RuleTitle: "maintenance week"}
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", s.validBody(), true)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(s.T(), rec)
		detail := body["detail"].(map[string]any)
		s.Equal("maintenance week", detail["rule_title"])
	})

	s.Run("returns 409 when another booking holds the slot", func() {
		s.cmds.createFn = func(_ context.Context, _ commands.CreateBookingParams) (*queries.BookingView, error) {
			return nil, &shared.ConflictError{ResourceID: uuid.New(), Source: shared.ConflictSourceBooking}
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", s.validBody(), true)

		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("returns the booking for its owner", func() {
		id := uuid.New()
		s.views.getByIDFn = func(_ context.Context, actorID uuid.UUID, _ bool, gotID uuid.UUID) (*queries.BookingView, error) {
			s.Equal(id, gotID)
			return sampleView(id, actorID), nil
		}

		rec := performRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, true)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("returns 403 for another client's booking", func() {
		s.views.getByIDFn = func(_ context.Context, _ uuid.UUID, _ bool, _ uuid.UUID) (*queries.BookingView, error) {
			return nil, queries.ErrForbidden
		}

		rec := performRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.New().String(), nil, true)

		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("returns 204 and forwards the override flag", func() {
		id := uuid.New()
		s.cmds.cancelFn = func(_ context.Context, actorID uuid.UUID, actorIsStaff bool, bookingID uuid.UUID, forceOverride bool) error {
			s.Equal(id, bookingID)
			s.True(actorIsStaff)
			s.True(forceOverride)
			return nil
		}

		rec := performRequest(s.T(), s.staffRtr, http.MethodDelete, "/bookings/"+id.String(),
			map[string]any{"force_override": true}, true)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("returns 409 inside the lock window", func() {
		s.cmds.cancelFn = func(_ context.Context, _ uuid.UUID, _ bool, _ uuid.UUID, _ bool) error {
			return errs.ErrBookingLocked
		}

		rec := performRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+uuid.New().String(), nil, true)

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("returns 404 when the booking is not visible to the actor", func() {
		s.cmds.cancelFn = func(_ context.Context, _ uuid.UUID, _ bool, _ uuid.UUID, _ bool) error {
			return errs.ErrBookingNotFound
		}

		rec := performRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+uuid.New().String(), nil, true)

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestRescheduleBooking() {
	id := uuid.New()
	start := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	reqBody := map[string]any{
		"start": start.Format(time.RFC3339),
		"end":   start.Add(time.Hour).Format(time.RFC3339),
	}

	s.Run("returns the updated booking", func() {
		s.cmds.rescheduleFn = func(_ context.Context, _ uuid.UUID, _ bool, p commands.RescheduleParams) (*queries.BookingView, error) {
			s.Equal(id, p.BookingID)
			s.Equal(start, p.Start.UTC())
			return sampleView(id, s.actorID), nil
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/reschedule", reqBody, true)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("returns 409 when the new slot conflicts", func() {
		s.cmds.rescheduleFn = func(_ context.Context, _ uuid.UUID, _ bool, _ commands.RescheduleParams) (*queries.BookingView, error) {
			return nil, &shared.ConflictError{ResourceID: uuid.New(), Source: shared.ConflictSourceBooking}
		}

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/reschedule", reqBody, true)

		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.views.listFn = func(_ context.Context, clientID uuid.UUID, limit, offset int) ([]*queries.BookingListItem, error) {
		s.Equal(s.actorID, clientID)
		return []*queries.BookingListItem{
			{ID: uuid.New(), Category: "simulator", BayName: "Bay 1", Status: "confirmed"},
			{ID: uuid.New(), Category: "coaching", BayName: "Bay 2", Status: "completed"},
		}, nil
	}

	rec := performRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, true)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *BookingHandlerTestSuite) TestGetDaySchedule() {
	s.Run("returns bookings for the requested date", func() {
		s.views.dayFn = func(_ context.Context, day time.Time) ([]*queries.BookingView, error) {
			s.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day)
			return []*queries.BookingView{sampleView(uuid.New(), uuid.New())}, nil
		}

		rec := performRequest(s.T(), s.staffRtr, http.MethodGet, "/bookings/schedule?date=2026-03-02", nil, true)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("returns 400 for a malformed date", func() {
		rec := performRequest(s.T(), s.staffRtr, http.MethodGet, "/bookings/schedule?date=March-2", nil, true)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
