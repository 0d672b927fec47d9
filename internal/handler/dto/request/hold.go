package request

import (
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	Category string     `json:"category" binding:"required"`
	BayID    uuid.UUID  `json:"bay_id" binding:"required"`
	CoachID  *uuid.UUID `json:"coach_id,omitempty"`
	EventID  *uuid.UUID `json:"event_id,omitempty"`
	Start    time.Time  `json:"start" binding:"required"`
	End      time.Time  `json:"end" binding:"required"`
}

func (r CreateHoldRequest) ToParams(clientID uuid.UUID) (commands.CreateHoldParams, error) {
	category := booking.Category(r.Category)
	if !category.IsValid() {
		return commands.CreateHoldParams{}, ErrInvalidCategory
	}
	return commands.CreateHoldParams{
		ClientID: clientID,
		Category: category,
		BayID:    r.BayID,
		CoachID:  r.CoachID,
		EventID:  r.EventID,
		Start:    r.Start,
		End:      r.End,
	}, nil
}

// PaymentWebhookRequest is the payload the payment provider posts once a
// checkout settles. PaymentRef is the provider-side charge identifier and
// doubles as the idempotency key for redeliveries.
type PaymentWebhookRequest struct {
	Token      uuid.UUID `json:"token" binding:"required"`
	PaymentRef string    `json:"payment_ref" binding:"required"`
}
