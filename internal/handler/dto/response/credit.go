package response

import (
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	ID               uuid.UUID `json:"id"`
	Type             string    `json:"type"`
	Kind             string    `json:"kind"`
	SessionsLeft     int       `json:"sessionsLeft"`
	SessionsTotal    int       `json:"sessionsTotal"`
	HourMinutesLeft  int       `json:"hourMinutesLeft"`
	HourMinutesTotal int       `json:"hourMinutesTotal"`
	GiftPending      bool      `json:"giftPending"`
	PurchasedAt      time.Time `json:"purchasedAt"`
}

type CreditBalanceResponse struct {
	ClientID        uuid.UUID          `json:"clientId"`
	SessionsLeft    int                `json:"sessionsLeft"`
	HourMinutesLeft int                `json:"hourMinutesLeft"`
	Purchases       []PurchaseResponse `json:"purchases"`
}

func FromCreditBalance(v *queries.CreditBalanceView) *CreditBalanceResponse {
	purchases := make([]PurchaseResponse, len(v.Purchases))
	for i, p := range v.Purchases {
		purchases[i] = PurchaseResponse{
			ID:               p.ID,
			Type:             p.Type,
			Kind:             p.Kind,
			SessionsLeft:     p.SessionsLeft,
			SessionsTotal:    p.SessionsTotal,
			HourMinutesLeft:  p.HourMinutesLeft,
			HourMinutesTotal: p.HourMinutesTotal,
			GiftPending:      p.GiftPending,
			PurchasedAt:      p.PurchasedAt,
		}
	}
	return &CreditBalanceResponse{
		ClientID:        v.ClientID,
		SessionsLeft:    v.SessionsLeft,
		HourMinutesLeft: v.HourMinutesLeft,
		Purchases:       purchases,
	}
}
