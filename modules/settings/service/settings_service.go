package service

import (
	"context"
	"strings"

	"go-interview-crm/core/cache"
	"go-interview-crm/core/errors"
	"go-interview-crm/core/logger"
	"go-interview-crm/modules/settings/entity"
	"go-interview-crm/modules/settings/repository"
)

// SettingsService is the tenant configuration provider. Reads go through a
// redis cache with a short TTL; writes invalidate it.
type SettingsService struct {
	repo  repository.SettingsRepositoryInterface
	cache *cache.Cache
}

type SettingsServiceInterface interface {
	// RawScheduleConfig returns the settings as an opaque key/value map.
	// Failures degrade to an empty map: the scheduling engine falls back to
	// its defaults rather than refusing to book.
	RawScheduleConfig(ctx context.Context) map[string]string
	List(ctx context.Context) ([]entity.Setting, *errors.AppError)
	Update(ctx context.Context, key, value string) *errors.AppError
	Delete(ctx context.Context, key string) *errors.AppError
}

func NewSettingsService(repo repository.SettingsRepositoryInterface, c *cache.Cache) SettingsServiceInterface {
	return &SettingsService{repo: repo, cache: c}
}

func (s *SettingsService) RawScheduleConfig(ctx context.Context) map[string]string {
	if s.cache != nil {
		if cached := s.cache.GetScheduleSettings(ctx); cached != nil {
			return cached
		}
	}

	settings, err := s.repo.GetAll(ctx)
	if err != nil {
		logger.Error("SettingsService:RawScheduleConfig:GetAll:Error", "error", err)
		return map[string]string{}
	}

	raw := make(map[string]string, len(settings))
	for _, st := range settings {
		raw[st.Key] = st.Value
	}

	if s.cache != nil {
		s.cache.SetScheduleSettings(ctx, raw)
	}
	return raw
}

func (s *SettingsService) List(ctx context.Context) ([]entity.Setting, *errors.AppError) {
	settings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load settings", err)
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, key, value string) *errors.AppError {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Setting key is required", nil)
	}

	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save setting", err)
	}

	if s.cache != nil {
		s.cache.InvalidateScheduleSettings(ctx)
	}

	logger.Info("SettingsService:Update:Success", "key", key)
	return nil
}

func (s *SettingsService) Delete(ctx context.Context, key string) *errors.AppError {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Setting key is required", nil)
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete setting", err)
	}

	if s.cache != nil {
		s.cache.InvalidateScheduleSettings(ctx)
	}

	logger.Info("SettingsService:Delete:Success", "key", key)
	return nil
}
