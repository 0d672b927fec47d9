package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CountsTowardCapacity reports whether a booking in this status occupies
// its resource for conflict purposes.
func (s Status) CountsTowardCapacity() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// Category selects the booking variant. Each category carries its own hold
// TTL and credit-selection strategy rather than branching on strings
// through the codebase.
type Category string

const (
	CategorySimulator Category = "simulator"
	CategoryCoaching  Category = "coaching"
)

func (c Category) IsValid() bool {
	return c == CategorySimulator || c == CategoryCoaching
}

func (c Category) String() string {
	return string(c)
}
