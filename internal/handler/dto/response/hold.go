package response

import (
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type HoldCreatedResponse struct {
	Token      uuid.UUID `json:"token"`
	PriceCents int64     `json:"priceCents"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func FromHoldResult(r *commands.HoldResult) *HoldCreatedResponse {
	return &HoldCreatedResponse{
		Token:      r.Token,
		PriceCents: r.PriceCents,
		ExpiresAt:  r.ExpiresAt,
	}
}

type PaymentConfirmedResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	Replayed  bool      `json:"replayed"`
}

func FromConfirmResult(r *commands.ConfirmResult) *PaymentConfirmedResponse {
	return &PaymentConfirmedResponse{
		BookingID: r.BookingID,
		Replayed:  r.Replayed,
	}
}

type SweepResponse struct {
	Expired int64 `json:"expired"`
}
