//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/api"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/jwt"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CreditHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	credits *stubCreditQueries
	actorID uuid.UUID
}

func (s *CreditHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.actorID = uuid.New()
	s.credits = &stubCreditQueries{}

	handler := api.NewCreditHandler(s.credits)
	s.router.GET("/credits/balance", stubAuth(s.actorID, jwt.RoleClient), handler.GetBalance)
}

func TestCreditHandlerSuite(t *testing.T) {
	suite.Run(t, new(CreditHandlerTestSuite))
}

func (s *CreditHandlerTestSuite) TestGetBalance() {
	s.Run("returns the acting client's balance", func() {
		s.credits.balanceFn = func(_ context.Context, clientID uuid.UUID) (*queries.CreditBalanceView, error) {
			s.Equal(s.actorID, clientID)
			return &queries.CreditBalanceView{
				ClientID:        clientID,
				SessionsLeft:    4,
				HourMinutesLeft: 150,
				Purchases: []queries.PurchaseView{
					{ID: uuid.New(), Type: "normal", Kind: "combo", SessionsLeft: 4, HourMinutesLeft: 150, PurchasedAt: time.Now()},
				},
			}, nil
		}

		rec := performRequest(s.T(), s.router, http.MethodGet, "/credits/balance", nil, true)

		s.Equal(http.StatusOK, rec.Code)
		body := decodeBody(s.T(), rec)
		s.Equal(float64(4), body["sessionsLeft"])
		s.Equal(float64(150), body["hourMinutesLeft"])
	})

	s.Run("requires authentication", func() {
		rec := performRequest(s.T(), s.router, http.MethodGet, "/credits/balance", nil, false)

		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
