package repository

import (
	"context"
	"database/sql"
	"time"

	"go-interview-crm/core/database"
	"go-interview-crm/core/logger"
	"go-interview-crm/modules/scheduling/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BlockRepositoryInterface defines the administrative blackout store contract.
type BlockRepositoryInterface interface {
	FindByStartAndLocation(ctx context.Context, startAt time.Time, locationKey string) (*entity.SlotBlock, error)
	// FindByInstants is the batched variant used by the alternative finder.
	FindByInstants(ctx context.Context, instants []time.Time, locationKey string) ([]entity.SlotBlock, error)
	Create(ctx context.Context, block *entity.SlotBlock) error
	ListUpcoming(ctx context.Context, from time.Time) ([]entity.SlotBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlockRepository struct {
	db database.IDatabase
}

func NewBlockRepository(db database.IDatabase) BlockRepositoryInterface {
	return &BlockRepository{db: db}
}

func (r *BlockRepository) FindByStartAndLocation(ctx context.Context, startAt time.Time, locationKey string) (*entity.SlotBlock, error) {
	query := `
		SELECT id, start_at, location, location_key, reason, created_at
		FROM slot_blocks
		WHERE start_at = $1 AND location_key = $2
	`

	var block entity.SlotBlock
	err := r.db.GetContext(ctx, &block, query, startAt, locationKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BlockRepository:FindByStartAndLocation:Error", "error", err)
		return nil, err
	}

	return &block, nil
}

func (r *BlockRepository) FindByInstants(ctx context.Context, instants []time.Time, locationKey string) ([]entity.SlotBlock, error) {
	if len(instants) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, start_at, location, location_key, reason, created_at
		FROM slot_blocks
		WHERE location_key = $1 AND start_at = ANY($2)
	`

	var blocks []entity.SlotBlock
	err := r.db.SelectContext(ctx, &blocks, query, locationKey, pq.Array(instants))
	if err != nil {
		logger.Error("BlockRepository:FindByInstants:Error", "error", err)
		return nil, err
	}

	return blocks, nil
}

func (r *BlockRepository) Create(ctx context.Context, block *entity.SlotBlock) error {
	query := `
		INSERT INTO slot_blocks (start_at, location, location_key, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		block.StartAt, block.Location, block.LocationKey, block.Reason,
	).Scan(&block.ID, &block.CreatedAt)
	if err != nil {
		logger.Error("BlockRepository:Create:Error", "error", err)
		return err
	}

	return nil
}

func (r *BlockRepository) ListUpcoming(ctx context.Context, from time.Time) ([]entity.SlotBlock, error) {
	query := `
		SELECT id, start_at, location, location_key, reason, created_at
		FROM slot_blocks
		WHERE start_at >= $1
		ORDER BY start_at
	`

	var blocks []entity.SlotBlock
	err := r.db.SelectContext(ctx, &blocks, query, from)
	if err != nil {
		logger.Error("BlockRepository:ListUpcoming:Error", "error", err)
		return nil, err
	}

	return blocks, nil
}

func (r *BlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM slot_blocks WHERE id = $1`

	err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("BlockRepository:Delete:Error", "error", err, "id", id)
		return err
	}
	return nil
}
