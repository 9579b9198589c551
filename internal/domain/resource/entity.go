package resource

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrNegativeHourlyRate  = errors.New("hourly rate cannot be negative")
	ErrNonPositiveCapacity = errors.New("capacity must be positive")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const MaxResourceNameLength = 255

// Resource is a read-only snapshot of a bookable entity. The catalog
// collaborator owns the write path; pricing reads one snapshot per saga
// execution.
type Resource struct {
	id              uuid.UUID
	name            string
	hourlyRateCents int64
	capacity        int
}

func NewResource(id uuid.UUID, name string, hourlyRateCents int64, capacity int) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return nil, ErrResourceNameTooLong
	}
	if hourlyRateCents < 0 {
		return nil, ErrNegativeHourlyRate
	}
	if capacity <= 0 {
		return nil, ErrNonPositiveCapacity
	}

	return &Resource{
		id:              id,
		name:            name,
		hourlyRateCents: hourlyRateCents,
		capacity:        capacity,
	}, nil
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) Name() string           { return r.name }
func (r *Resource) HourlyRateCents() int64 { return r.hourlyRateCents }
func (r *Resource) Capacity() int          { return r.capacity }
