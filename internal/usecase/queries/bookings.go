package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/errs"
)

var ErrForbidden = errs.New("booking belongs to another client")

type BookingViewStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	FindForDay(ctx context.Context, day time.Time) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*BookingView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*BookingListItem, error)
	ListForDay(ctx context.Context, day time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingViewStore
}

func NewBookingQueries(store BookingViewStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorIsStaff bool, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorIsStaff && view.ClientID != actorID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.store.FindByClient(ctx, clientID, int32(limit), int32(offset))
}

func (q *bookingQueriesImpl) ListForDay(ctx context.Context, day time.Time) ([]*BookingView, error) {
	return q.store.FindForDay(ctx, day)
}
