package commands

import (
	"context"
	"time"

	"resource-booking/internal/domain/schedule"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddWindowParams struct {
	ResourceID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	IsAvailable bool
}

type AvailabilityCommands interface {
	AddWindow(ctx context.Context, params AddWindowParams) (*shared.WindowSnapshot, error)
	RemoveWindow(ctx context.Context, windowID uuid.UUID) error
}

type availabilityCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityCommands(uow shared.UnitOfWork) AvailabilityCommands {
	return &availabilityCommandsImpl{uow: uow}
}

// AddWindow declares an administrator window. Windows for one resource
// must not strictly overlap; shared endpoints are allowed. Windows are
// immutable once created, deletion excepted.
func (a *availabilityCommandsImpl) AddWindow(ctx context.Context, params AddWindowParams) (*shared.WindowSnapshot, error) {
	if !params.StartTime.Before(params.EndTime) {
		return nil, errs.ErrInvalidRange
	}

	var created *shared.WindowSnapshot
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ResourceByID(ctx, params.ResourceID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrResourceNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		existing, err := tx.Reads().WindowsIntersecting(ctx, params.ResourceID, params.StartTime, params.EndTime)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, w := range existing {
			if schedule.Overlaps(w.StartTime, w.EndTime, params.StartTime, params.EndTime) {
				return errs.ErrWindowOverlap
			}
		}

		snap := &shared.WindowSnapshot{
			ResourceID:  params.ResourceID,
			StartTime:   params.StartTime,
			EndTime:     params.EndTime,
			IsAvailable: params.IsAvailable,
		}
		id, err := tx.Windows().Create(ctx, snap)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				// Lost a race with a concurrent declaration; the exclusion
				// constraint caught what the read above missed.
				return errs.Mark(err, errs.ErrWindowOverlap)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		snap.ID = id
		created = snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (a *availabilityCommandsImpl) RemoveWindow(ctx context.Context, windowID uuid.UUID) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Windows().Delete(ctx, windowID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrWindowNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
