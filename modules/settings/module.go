package settings

import (
	"go-interview-crm/core/cache"
	"go-interview-crm/core/database"
	"go-interview-crm/core/middleware"
	"go-interview-crm/modules/settings/controller"
	"go-interview-crm/modules/settings/repository"
	"go-interview-crm/modules/settings/router"
	"go-interview-crm/modules/settings/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the settings module and registers routes. The returned
// service is the tenant configuration provider consumed by scheduling.
func Init(e *echo.Echo, db database.IDatabase, c *cache.Cache, mw *middleware.Middleware) service.SettingsServiceInterface {
	repo := repository.NewSettingsRepository(db)
	svc := service.NewSettingsService(repo, c)
	ctrl := controller.NewSettingsController(svc)
	rtr := router.NewSettingsRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
