package request

import (
	"errors"
	"time"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidCategory = errors.New("category must be simulator or coaching")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

type SlotsQuery struct {
	Date            string  `form:"date" binding:"required"`
	Category        string  `form:"category" binding:"required"`
	DurationMinutes int     `form:"duration_minutes" binding:"required"`
	BayID           *string `form:"bay_id"`
	CoachID         *string `form:"coach_id"`
}

func (q SlotsQuery) ToParams() (queries.SlotsParams, error) {
	date, err := time.ParseInLocation("2006-01-02", q.Date, time.UTC)
	if err != nil {
		return queries.SlotsParams{}, ErrInvalidDate
	}

	category := booking.Category(q.Category)
	if !category.IsValid() {
		return queries.SlotsParams{}, ErrInvalidCategory
	}

	if q.DurationMinutes <= 0 {
		return queries.SlotsParams{}, ErrInvalidDuration
	}

	p := queries.SlotsParams{
		Category:        category,
		Date:            date,
		DurationMinutes: q.DurationMinutes,
	}

	if p.BayID, err = parseOptionalUUID(q.BayID); err != nil {
		return queries.SlotsParams{}, err
	}
	if p.CoachID, err = parseOptionalUUID(q.CoachID); err != nil {
		return queries.SlotsParams{}, err
	}
	return p, nil
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, errors.New("invalid UUID format")
	}
	return &id, nil
}
