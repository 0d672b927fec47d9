package request

import (
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	// ClientID lets staff book on a member's behalf; regular clients book
	// for themselves and the field is ignored.
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	Category  string     `json:"category" binding:"required"`
	BayID     uuid.UUID  `json:"bay_id" binding:"required"`
	CoachID   *uuid.UUID `json:"coach_id,omitempty"`
	Start     time.Time  `json:"start" binding:"required"`
	End       time.Time  `json:"end" binding:"required"`
	UseCredit bool       `json:"use_credit"`
}

func (r CreateBookingRequest) ToParams(actorID uuid.UUID, actorIsStaff bool) (commands.CreateBookingParams, error) {
	category := booking.Category(r.Category)
	if !category.IsValid() {
		return commands.CreateBookingParams{}, ErrInvalidCategory
	}

	clientID := actorID
	if actorIsStaff && r.ClientID != nil {
		clientID = *r.ClientID
	}

	return commands.CreateBookingParams{
		ClientID:  clientID,
		Category:  category,
		BayID:     r.BayID,
		CoachID:   r.CoachID,
		Start:     r.Start,
		End:       r.End,
		UseCredit: r.UseCredit,
	}, nil
}

type CancelBookingRequest struct {
	ForceOverride bool `json:"force_override"`
}

type RescheduleBookingRequest struct {
	Start   time.Time  `json:"start" binding:"required"`
	End     time.Time  `json:"end" binding:"required"`
	BayID   *uuid.UUID `json:"bay_id,omitempty"`
	CoachID *uuid.UUID `json:"coach_id,omitempty"`
}

func (r RescheduleBookingRequest) ToParams(bookingID uuid.UUID) commands.RescheduleParams {
	return commands.RescheduleParams{
		BookingID: bookingID,
		Start:     r.Start,
		End:       r.End,
		BayID:     r.BayID,
		CoachID:   r.CoachID,
	}
}
