package router

import (
	"go-interview-crm/core/middleware"
	"go-interview-crm/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

// NotificationRouter handles notification routes
type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{
		NotificationController: notificationController,
	}
}

// Setup registers notification routes
func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	notifRoutes := privateRoutes.Group("/conversations/:conversationId/notifications", mw.AuthMiddleware())
	notifRoutes.GET("", r.NotificationController.GetNotifications)
	notifRoutes.POST("/read", r.NotificationController.MarkAsRead)
	notifRoutes.GET("/unread-count", r.NotificationController.CountUnread)
}
