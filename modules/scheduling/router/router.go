package router

import (
	"go-interview-crm/core/middleware"
	"go-interview-crm/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

// SchedulingRouter handles scheduling routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{
		SchedulingController: schedulingController,
	}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	schedulingRoutes := privateRoutes.Group("/scheduling", mw.AuthMiddleware())

	// Booking attempts and the per-conversation reservation lifecycle
	schedulingRoutes.POST("/attempts", r.SchedulingController.AttemptSchedule)
	schedulingRoutes.GET("/conversations/:conversationId/reservation", r.SchedulingController.GetActiveReservation)
	schedulingRoutes.POST("/conversations/:conversationId/confirm", r.SchedulingController.ConfirmReservation)
	schedulingRoutes.POST("/conversations/:conversationId/release", r.SchedulingController.ReleaseReservation)

	// Open-slot discovery
	schedulingRoutes.GET("/alternatives", r.SchedulingController.GetAlternatives)

	// Administrative blackouts
	schedulingRoutes.POST("/blocks", r.SchedulingController.CreateBlock)
	schedulingRoutes.GET("/blocks", r.SchedulingController.ListBlocks)
	schedulingRoutes.DELETE("/blocks/:id", r.SchedulingController.DeleteBlock)
}
