package controller

import (
	"go-interview-crm/core/controller"
	"go-interview-crm/core/errors"
	"go-interview-crm/core/params"
	"go-interview-crm/modules/notification/dto"
	"go-interview-crm/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// NotificationController handles notification HTTP requests
type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

// GetNotifications handles GET /conversations/:conversationId/notifications
func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	conversationID := ctx.Param("conversationId")
	if conversationID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "conversationId is required")
	}

	var queryParams params.QueryParams
	if err := ctx.Bind(&queryParams); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.NotificationService.GetByConversation(ctx.Request().Context(), conversationID, queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// MarkAsRead handles POST /conversations/:conversationId/notifications/read
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	conversationID := ctx.Param("conversationId")
	if conversationID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "conversationId is required")
	}

	var req dto.MarkAsReadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "ids must not be empty")
	}

	if appErr := c.NotificationService.MarkAsRead(ctx.Request().Context(), conversationID, req.IDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Notifications marked as read")
}

// CountUnread handles GET /conversations/:conversationId/notifications/unread-count
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	conversationID := ctx.Param("conversationId")
	if conversationID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "conversationId is required")
	}

	count, appErr := c.NotificationService.CountUnread(ctx.Request().Context(), conversationID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.UnreadCountResponse{Count: count}, "Unread count retrieved successfully")
}
