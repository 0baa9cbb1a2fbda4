package router

import (
	"go-interview-crm/core/middleware"
	"go-interview-crm/modules/settings/controller"

	"github.com/labstack/echo/v4"
)

// SettingsRouter handles settings routes
type SettingsRouter struct {
	SettingsController *controller.SettingsController
}

func NewSettingsRouter(settingsController *controller.SettingsController) *SettingsRouter {
	return &SettingsRouter{
		SettingsController: settingsController,
	}
}

// Setup registers settings routes
func (r *SettingsRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	settingsRoutes := privateRoutes.Group("/settings", mw.AuthMiddleware())
	settingsRoutes.GET("", r.SettingsController.ListSettings)
	settingsRoutes.PUT("", r.SettingsController.UpdateSetting)
	settingsRoutes.DELETE("/:key", r.SettingsController.DeleteSetting)
}
