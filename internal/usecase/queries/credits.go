package queries

import (
	"context"

	"github.com/google/uuid"
)

type CreditViewStore interface {
	FindPurchasesByClient(ctx context.Context, clientID uuid.UUID) ([]*PurchaseView, error)
}

type CreditQueries interface {
	Balance(ctx context.Context, clientID uuid.UUID) (*CreditBalanceView, error)
}

type creditQueriesImpl struct {
	store CreditViewStore
}

func NewCreditQueries(store CreditViewStore) CreditQueries {
	return &creditQueriesImpl{store: store}
}

// Balance sums the spendable remainder across a client's purchases.
// Unclaimed gifts are listed but excluded from the totals.
func (q *creditQueriesImpl) Balance(ctx context.Context, clientID uuid.UUID) (*CreditBalanceView, error) {
	purchases, err := q.store.FindPurchasesByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	view := &CreditBalanceView{ClientID: clientID, Purchases: make([]PurchaseView, 0, len(purchases))}
	for _, p := range purchases {
		view.Purchases = append(view.Purchases, *p)
		if p.GiftPending {
			continue
		}
		view.SessionsLeft += p.SessionsLeft
		view.HourMinutesLeft += p.HourMinutesLeft
	}
	return view, nil
}
