package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type SlotView struct {
	Start        time.Time   `json:"start"`
	End          time.Time   `json:"end"`
	FitsDuration bool        `json:"fits_duration"`
	BayIDs       []uuid.UUID `json:"bay_ids"`
	OptimalBayID *uuid.UUID  `json:"optimal_bay_id,omitempty"`
}

type DayAvailabilityView struct {
	Date            string     `json:"date"`
	Category        string     `json:"category"`
	DurationMinutes int        `json:"duration_minutes"`
	Slots           []SlotView `json:"slots"`
}

type OpenWindowView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ResourceView struct {
	ID              uuid.UUID `json:"id"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	BayNumber       int       `json:"bay_number,omitempty"`
	IsActive        bool      `json:"is_active"`
	IsCoachingBay   bool      `json:"is_coaching_bay,omitempty"`
	HourlyRateCents int64     `json:"hourly_rate_cents,omitempty"`
}

type BookingView struct {
	ID         uuid.UUID  `json:"id"`
	ClientID   uuid.UUID  `json:"client_id"`
	Category   string     `json:"category"`
	BayID      uuid.UUID  `json:"bay_id"`
	BayName    string     `json:"bay_name"`
	CoachID    *uuid.UUID `json:"coach_id,omitempty"`
	CoachName  *string    `json:"coach_name,omitempty"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Status     string     `json:"status"`
	PriceCents int64      `json:"price_cents"`
	PurchaseID *uuid.UUID `json:"purchase_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	BayName   string    `json:"bay_name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type HoldView struct {
	ID         uuid.UUID `json:"id"`
	Token      uuid.UUID `json:"token"`
	Category   string    `json:"category"`
	BayID      uuid.UUID `json:"bay_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type PurchaseView struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Kind            string    `json:"kind"`
	SessionsLeft    int       `json:"sessions_left"`
	SessionsTotal   int       `json:"sessions_total"`
	HourMinutesLeft int       `json:"hour_minutes_left"`
	HourMinutesTotal int      `json:"hour_minutes_total"`
	GiftPending     bool      `json:"gift_pending"`
	PurchasedAt     time.Time `json:"purchased_at"`
}

type CreditBalanceView struct {
	ClientID        uuid.UUID      `json:"client_id"`
	SessionsLeft    int            `json:"sessions_left"`
	HourMinutesLeft int            `json:"hour_minutes_left"`
	Purchases       []PurchaseView `json:"purchases"`
}
