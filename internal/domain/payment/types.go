package payment

// Status mirrors the gateway's terminal state for a charge.
type Status string

const (
	StatusCompleted      Status = "COMPLETED"
	StatusFailed         Status = "FAILED"
	StatusRequiresAction Status = "REQUIRES_ACTION"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRequiresAction:
		return true
	default:
		return false
	}
}
