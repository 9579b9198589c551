package booking

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsActive reports whether a booking in this status counts against
// availability.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo encodes the status machine:
// PENDING → CONFIRMED, PENDING → CANCELED, CONFIRMED → CANCELED.
// No transition leaves CANCELED.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCanceled
	default:
		return false
	}
}
