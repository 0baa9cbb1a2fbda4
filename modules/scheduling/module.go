package scheduling

import (
	"go-interview-crm/core/clock"
	"go-interview-crm/core/database"
	"go-interview-crm/core/middleware"
	notifservice "go-interview-crm/modules/notification/service"
	"go-interview-crm/modules/scheduling/controller"
	"go-interview-crm/modules/scheduling/repository"
	"go-interview-crm/modules/scheduling/router"
	"go-interview-crm/modules/scheduling/service"
	settingsservice "go-interview-crm/modules/settings/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the scheduling module and registers routes.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	mw *middleware.Middleware,
	settings settingsservice.SettingsServiceInterface,
	notifications notifservice.NotificationServiceInterface,
) {
	reservations := repository.NewReservationRepository(db)
	blocks := repository.NewBlockRepository(db)
	svc := service.NewSchedulingService(reservations, blocks, settings, notifications, clock.System())
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Setup(e, mw)
}
