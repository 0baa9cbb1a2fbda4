package repository

import (
	"context"

	"go-interview-crm/core/database"
	"go-interview-crm/core/logger"
	"go-interview-crm/modules/settings/entity"
)

type SettingsRepository struct {
	db database.IDatabase
}

type SettingsRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.Setting, error)
	Upsert(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func NewSettingsRepository(db database.IDatabase) SettingsRepositoryInterface {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetAll(ctx context.Context) ([]entity.Setting, error) {
	query := `SELECT key, value, updated_at FROM scheduling_settings ORDER BY key`

	var settings []entity.Setting
	err := r.db.SelectContext(ctx, &settings, query)
	if err != nil {
		logger.Error("SettingsRepository:GetAll:Error", "error", err)
		return nil, err
	}

	return settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO scheduling_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`

	err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		logger.Error("SettingsRepository:Upsert:Error", "error", err, "key", key)
		return err
	}
	return nil
}

func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM scheduling_settings WHERE key = $1`

	err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		logger.Error("SettingsRepository:Delete:Error", "error", err, "key", key)
		return err
	}
	return nil
}
