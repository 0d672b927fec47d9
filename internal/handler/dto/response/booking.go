package response

import (
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID  `json:"id"`
	ClientID   uuid.UUID  `json:"clientId"`
	Category   string     `json:"category"`
	BayID      uuid.UUID  `json:"bayId"`
	BayName    string     `json:"bayName"`
	CoachID    *uuid.UUID `json:"coachId,omitempty"`
	CoachName  *string    `json:"coachName,omitempty"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Status     string     `json:"status"`
	PriceCents int64      `json:"priceCents"`
	PurchaseID *uuid.UUID `json:"purchaseId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	BayName   string    `json:"bayName"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:         v.ID,
		ClientID:   v.ClientID,
		Category:   v.Category,
		BayID:      v.BayID,
		BayName:    v.BayName,
		CoachID:    v.CoachID,
		CoachName:  v.CoachName,
		Start:      v.Start,
		End:        v.End,
		Status:     v.Status,
		PriceCents: v.PriceCents,
		PurchaseID: v.PurchaseID,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:        v.ID,
		Category:  v.Category,
		BayName:   v.BayName,
		Start:     v.Start,
		End:       v.End,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}
}
