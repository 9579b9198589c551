package repository

import (
	"context"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AvailabilityWindowRepository struct {
	db db.DBTX
}

func NewAvailabilityWindowRepository(dbtx db.DBTX) *AvailabilityWindowRepository {
	return &AvailabilityWindowRepository{db: dbtx}
}

func (r *AvailabilityWindowRepository) Create(ctx context.Context, w *shared.WindowSnapshot) (uuid.UUID, error) {
	const query = `
		INSERT INTO availability_windows (id, resource_id, start_time, end_time, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id
	`

	id := w.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var created uuid.UUID
	err := r.db.QueryRow(ctx, query, id, w.ResourceID, w.StartTime, w.EndTime, w.IsAvailable).Scan(&created)
	if err != nil {
		return uuid.Nil, infra.ClassifyPgError("failed to create availability window", err)
	}
	return created, nil
}

func (r *AvailabilityWindowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM availability_windows WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.ClassifyPgError("failed to delete availability window", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "availability window not found", pgx.ErrNoRows)
	}
	return nil
}
