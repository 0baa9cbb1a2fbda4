package dto

import (
	"time"

	"go-interview-crm/modules/settings/entity"
)

// UpdateSettingRequest for upserting one configuration entry
type UpdateSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// SettingResponse for a single configuration entry
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToSettingResponse(s *entity.Setting) SettingResponse {
	return SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}
