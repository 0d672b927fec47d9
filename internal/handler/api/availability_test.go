//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/api"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	availability *stubAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.availability = &stubAvailabilityQueries{}

	handler := api.NewAvailabilityHandler(s.availability)
	s.router.GET("/availability/slots", handler.GetSlots)
	s.router.GET("/availability/resources/:id/windows", handler.GetOpenWindows)
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetSlots() {
	s.Run("passes parsed params through and returns the day view", func() {
		bayID := uuid.New()
		s.availability.slotsFn = func(_ context.Context, p queries.SlotsParams) (*queries.DayAvailabilityView, error) {
			s.Equal(booking.CategorySimulator, p.Category)
			s.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), p.Date)
			s.Equal(60, p.DurationMinutes)
			s.NotNil(p.BayID)
			s.Equal(bayID, *p.BayID)
			return &queries.DayAvailabilityView{
				Date:            "2026-03-02",
				Category:        "simulator",
				DurationMinutes: 60,
				Slots: []queries.SlotView{
					{
						Start:        time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
						End:          time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
						FitsDuration: true,
						BayIDs:       []uuid.UUID{bayID},
					},
				},
			}, nil
		}

		url := "/availability/slots?date=2026-03-02&category=simulator&duration_minutes=60&bay_id=" + bayID.String()
		rec := performRequest(s.T(), s.router, http.MethodGet, url, nil, false)

		s.Equal(http.StatusOK, rec.Code)
		body := decodeBody(s.T(), rec)
		s.Equal("2026-03-02", body["date"])
		s.Len(body["slots"], 1)
	})

	s.Run("rejects malformed dates", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet,
			"/availability/slots?date=02-03-2026&category=simulator&duration_minutes=60", nil, false)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects unknown categories", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet,
			"/availability/slots?date=2026-03-02&category=lessons&duration_minutes=60", nil, false)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects missing duration", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet,
			"/availability/slots?date=2026-03-02&category=simulator", nil, false)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetOpenWindows() {
	resourceID := uuid.New()

	s.Run("returns the windows for the resource", func() {
		s.availability.windowsFn = func(_ context.Context, gotID uuid.UUID, date time.Time) ([]queries.OpenWindowView, error) {
			s.Equal(resourceID, gotID)
			s.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), date)
			return []queries.OpenWindowView{
				{
					Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
					End:   time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC),
				},
			}, nil
		}

		rec := performRequest(s.T(), s.router, http.MethodGet,
			"/availability/resources/"+resourceID.String()+"/windows?date=2026-03-02", nil, false)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("rejects malformed resource IDs", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet,
			"/availability/resources/not-a-uuid/windows?date=2026-03-02", nil, false)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
