package response

import (
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Start        time.Time   `json:"start"`
	End          time.Time   `json:"end"`
	FitsDuration bool        `json:"fitsDuration"`
	BayIDs       []uuid.UUID `json:"bayIds"`
	OptimalBayID *uuid.UUID  `json:"optimalBayId,omitempty"`
}

type DayAvailabilityResponse struct {
	Date            string         `json:"date"`
	Category        string         `json:"category"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

type OpenWindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func FromDayAvailability(v *queries.DayAvailabilityView) *DayAvailabilityResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{
			Start:        s.Start,
			End:          s.End,
			FitsDuration: s.FitsDuration,
			BayIDs:       s.BayIDs,
			OptimalBayID: s.OptimalBayID,
		}
	}
	return &DayAvailabilityResponse{
		Date:            v.Date,
		Category:        v.Category,
		DurationMinutes: v.DurationMinutes,
		Slots:           slots,
	}
}

func FromOpenWindows(vs []queries.OpenWindowView) []OpenWindowResponse {
	out := make([]OpenWindowResponse, len(vs))
	for i, v := range vs {
		out[i] = OpenWindowResponse{Start: v.Start, End: v.End}
	}
	return out
}
