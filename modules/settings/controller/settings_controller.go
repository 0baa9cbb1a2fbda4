package controller

import (
	"go-interview-crm/core/controller"
	"go-interview-crm/core/errors"
	"go-interview-crm/modules/settings/dto"
	"go-interview-crm/modules/settings/service"

	"github.com/labstack/echo/v4"
)

// SettingsController handles tenant scheduling configuration HTTP requests
type SettingsController struct {
	controller.BaseController
	SettingsService service.SettingsServiceInterface
}

func NewSettingsController(svc service.SettingsServiceInterface) *SettingsController {
	return &SettingsController{
		BaseController:  controller.NewBaseController(),
		SettingsService: svc,
	}
}

// ListSettings handles GET /settings
func (c *SettingsController) ListSettings(ctx echo.Context) error {
	settings, appErr := c.SettingsService.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	result := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		result = append(result, dto.ToSettingResponse(&settings[i]))
	}

	return c.SuccessResponse(ctx, result, "Settings retrieved successfully")
}

// UpdateSetting handles PUT /settings
func (c *SettingsController) UpdateSetting(ctx echo.Context) error {
	var req dto.UpdateSettingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Setting key is required")
	}

	if appErr := c.SettingsService.Update(ctx.Request().Context(), req.Key, req.Value); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Setting saved successfully")
}

// DeleteSetting handles DELETE /settings/:key
func (c *SettingsController) DeleteSetting(ctx echo.Context) error {
	if appErr := c.SettingsService.Delete(ctx.Request().Context(), ctx.Param("key")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Setting deleted successfully")
}
