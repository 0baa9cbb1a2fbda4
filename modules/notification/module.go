package notification

import (
	"go-interview-crm/core/database"
	"go-interview-crm/core/middleware"
	"go-interview-crm/modules/notification/controller"
	"go-interview-crm/modules/notification/repository"
	"go-interview-crm/modules/notification/router"
	"go-interview-crm/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The returned
// service is consumed by scheduling to record reservation lifecycle events.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, tasks *asynq.Client) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, tasks)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
