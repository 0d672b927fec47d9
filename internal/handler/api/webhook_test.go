//go:build unit

package api_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ronygeorgen/golf-backend-sub000/internal/handler/api"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/errs"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const webhookSecret = "test-webhook-secret"

type WebhookHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	holds  *stubHoldCommands
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.holds = &stubHoldCommands{}

	handler := api.NewWebhookHandler(s.holds, webhookSecret)
	s.router.POST("/webhooks/payment", handler.ConfirmPayment)
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) post(t *testing.T, payload map[string]any, sign bool) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if sign {
		mac := hmac.New(sha256.New, []byte(webhookSecret))
		mac.Write(raw)
		req.Header.Set("X-Payment-Signature", hex.EncodeToString(mac.Sum(nil)))
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *WebhookHandlerTestSuite) TestConfirmPayment() {
	token := uuid.New()
	payload := map[string]any{
		"token":       token.String(),
		"payment_ref": "ch_12345",
	}

	s.Run("first delivery creates the booking and returns 201", func() {
		bookingID := uuid.New()
		s.holds.confirmFn = func(_ context.Context, gotToken uuid.UUID, paymentRef string) (*commands.ConfirmResult, error) {
			s.Equal(token, gotToken)
			s.Equal("ch_12345", paymentRef)
			return &commands.ConfirmResult{BookingID: bookingID}, nil
		}

		rec := s.post(s.T(), payload, true)

		s.Equal(http.StatusCreated, rec.Code)
		body := decodeBody(s.T(), rec)
		s.Equal(bookingID.String(), body["bookingId"])
		s.Equal(false, body["replayed"])
	})

	s.Run("redelivery of the same payment_ref returns 200 with the original booking", func() {
		bookingID := uuid.New()
		s.holds.confirmFn = func(_ context.Context, _ uuid.UUID, _ string) (*commands.ConfirmResult, error) {
			return &commands.ConfirmResult{BookingID: bookingID, Replayed: true}, nil
		}

		rec := s.post(s.T(), payload, true)

		s.Equal(http.StatusOK, rec.Code)
		body := decodeBody(s.T(), rec)
		s.Equal(true, body["replayed"])
	})

	s.Run("expired hold returns 410", func() {
		s.holds.confirmFn = func(_ context.Context, _ uuid.UUID, _ string) (*commands.ConfirmResult, error) {
			return nil, errs.ErrHoldExpired
		}

		rec := s.post(s.T(), payload, true)

		s.Equal(http.StatusGone, rec.Code)
	})

	s.Run("missing signature returns 401", func() {
		rec := s.post(s.T(), payload, false)

		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("missing payment_ref returns 400", func() {
		rec := s.post(s.T(), map[string]any{"token": token.String()}, true)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
