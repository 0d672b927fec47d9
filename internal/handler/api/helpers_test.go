//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/jwt"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubAuth mimics the auth middleware: any request carrying an
// Authorization header is treated as the given actor.
func stubAuth(actorID uuid.UUID, role jwt.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", actorID)
		c.Set("user_role", role)
		c.Next()
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, url string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ---- stubs ----

type stubHoldCommands struct {
	createFn  func(ctx context.Context, p commands.CreateHoldParams) (*commands.HoldResult, error)
	confirmFn func(ctx context.Context, token uuid.UUID, paymentRef string) (*commands.ConfirmResult, error)
	cancelFn  func(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, token uuid.UUID) error
	sweepFn   func(ctx context.Context) (int64, error)
}

func (s *stubHoldCommands) Create(ctx context.Context, p commands.CreateHoldParams) (*commands.HoldResult, error) {
	return s.createFn(ctx, p)
}

func (s *stubHoldCommands) ConfirmPayment(ctx context.Context, token uuid.UUID, paymentRef string) (*commands.ConfirmResult, error) {
	return s.confirmFn(ctx, token, paymentRef)
}

func (s *stubHoldCommands) Cancel(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, token uuid.UUID) error {
	return s.cancelFn(ctx, actorID, actorIsStaff, token)
}

func (s *stubHoldCommands) SweepExpired(ctx context.Context) (int64, error) {
	return s.sweepFn(ctx)
}

type stubBookingCommands struct {
	createFn     func(ctx context.Context, p commands.CreateBookingParams) (*queries.BookingView, error)
	cancelFn     func(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, bookingID uuid.UUID, forceOverride bool) error
	rescheduleFn func(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, p commands.RescheduleParams) (*queries.BookingView, error)
}

func (s *stubBookingCommands) Create(ctx context.Context, p commands.CreateBookingParams) (*queries.BookingView, error) {
	return s.createFn(ctx, p)
}

func (s *stubBookingCommands) Cancel(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, bookingID uuid.UUID, forceOverride bool) error {
	return s.cancelFn(ctx, actorID, actorIsStaff, bookingID, forceOverride)
}

func (s *stubBookingCommands) Reschedule(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, p commands.RescheduleParams) (*queries.BookingView, error) {
	return s.rescheduleFn(ctx, actorID, actorIsStaff, p)
}

type stubBookingQueries struct {
	getByIDFn func(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*queries.BookingView, error)
	listFn    func(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*queries.BookingListItem, error)
	dayFn     func(ctx context.Context, day time.Time) ([]*queries.BookingView, error)
}

func (s *stubBookingQueries) GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByIDFn(ctx, actorID, actorIsStaff, id)
}

func (s *stubBookingQueries) GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByIDFn(ctx, uuid.Nil, true, id)
}

func (s *stubBookingQueries) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*queries.BookingListItem, error) {
	return s.listFn(ctx, clientID, limit, offset)
}

func (s *stubBookingQueries) ListForDay(ctx context.Context, day time.Time) ([]*queries.BookingView, error) {
	return s.dayFn(ctx, day)
}

type stubAvailabilityQueries struct {
	windowsFn func(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]queries.OpenWindowView, error)
	slotsFn   func(ctx context.Context, p queries.SlotsParams) (*queries.DayAvailabilityView, error)
}

func (s *stubAvailabilityQueries) OpenWindows(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]queries.OpenWindowView, error) {
	return s.windowsFn(ctx, resourceID, date)
}

func (s *stubAvailabilityQueries) Slots(ctx context.Context, p queries.SlotsParams) (*queries.DayAvailabilityView, error) {
	return s.slotsFn(ctx, p)
}

type stubCreditQueries struct {
	balanceFn func(ctx context.Context, clientID uuid.UUID) (*queries.CreditBalanceView, error)
}

func (s *stubCreditQueries) Balance(ctx context.Context, clientID uuid.UUID) (*queries.CreditBalanceView, error) {
	return s.balanceFn(ctx, clientID)
}
