package resource

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("resource name cannot be empty")
	ErrInvalidBayNumber = errors.New("bay number must be positive")
	ErrInvalidKind      = errors.New("invalid resource kind")
)

type Kind string

const (
	KindBay   Kind = "bay"
	KindCoach Kind = "coach"
)

func (k Kind) IsValid() bool {
	return k == KindBay || k == KindCoach
}

// Resource is a schedulable unit: a simulator bay or a coach. The core
// treats resources as read-only configuration; mutation happens through
// administrative collaborators outside this module.
type Resource struct {
	id              uuid.UUID
	kind            Kind
	name            string
	bayNumber       int
	isActive        bool
	isCoachingBay   bool
	hourlyRateCents int64
}

func NewBay(id uuid.UUID, name string, bayNumber int, isActive, isCoachingBay bool, hourlyRateCents int64) (*Resource, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if bayNumber <= 0 {
		return nil, ErrInvalidBayNumber
	}
	return &Resource{
		id:              id,
		kind:            KindBay,
		name:            name,
		bayNumber:       bayNumber,
		isActive:        isActive,
		isCoachingBay:   isCoachingBay,
		hourlyRateCents: hourlyRateCents,
	}, nil
}

func NewCoach(id uuid.UUID, name string, isActive bool) (*Resource, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Resource{
		id:       id,
		kind:     KindCoach,
		name:     name,
		isActive: isActive,
	}, nil
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) Kind() Kind             { return r.kind }
func (r *Resource) Name() string           { return r.name }
func (r *Resource) BayNumber() int         { return r.bayNumber }
func (r *Resource) IsActive() bool         { return r.isActive }
func (r *Resource) IsCoachingBay() bool    { return r.isCoachingBay }
func (r *Resource) HourlyRateCents() int64 { return r.hourlyRateCents }

// PriceCents computes the prepaid-free price for a bay session. Coaching
// bays and coaches are priced through packages, not hourly rates.
func (r *Resource) PriceCents(durationMinutes int) int64 {
	if r.kind != KindBay || r.isCoachingBay || r.hourlyRateCents == 0 {
		return 0
	}
	return r.hourlyRateCents * int64(durationMinutes) / 60
}
