package controller

import (
	"strconv"

	"go-interview-crm/core/controller"
	"go-interview-crm/core/errors"
	"go-interview-crm/modules/scheduling/dto"
	"go-interview-crm/modules/scheduling/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SchedulingController handles scheduling HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// AttemptSchedule handles POST /scheduling/attempts
func (c *SchedulingController) AttemptSchedule(ctx echo.Context) error {
	var req dto.ScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "conversation_id and contact_id are required")
	}

	result, appErr := c.SchedulingService.AttemptSchedule(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Schedule attempt processed")
}

// GetActiveReservation handles GET /scheduling/conversations/:conversationId/reservation
func (c *SchedulingController) GetActiveReservation(ctx echo.Context) error {
	conversationID := ctx.Param("conversationId")
	if conversationID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "conversationId is required")
	}

	result, appErr := c.SchedulingService.GetActiveReservation(ctx.Request().Context(), conversationID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Active reservation retrieved")
}

// ConfirmReservation handles POST /scheduling/conversations/:conversationId/confirm
func (c *SchedulingController) ConfirmReservation(ctx echo.Context) error {
	conversationID := ctx.Param("conversationId")
	if conversationID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "conversationId is required")
	}

	result, appErr := c.SchedulingService.ConfirmActiveReservation(ctx.Request().Context(), conversationID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Reservation confirmed")
}

// ReleaseReservation handles POST /scheduling/conversations/:conversationId/release
func (c *SchedulingController) ReleaseReservation(ctx echo.Context) error {
	conversationID := ctx.Param("conversationId")
	if conversationID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "conversationId is required")
	}

	var req dto.ReleaseRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "status must be cancelled or on_hold")
	}

	result, appErr := c.SchedulingService.ReleaseActiveReservation(ctx.Request().Context(), conversationID, req.Status)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Reservation released")
}

// GetAlternatives handles GET /scheduling/alternatives
func (c *SchedulingController) GetAlternatives(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	result, appErr := c.SchedulingService.GetAlternatives(ctx.Request().Context(), ctx.QueryParam("location"), limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Alternative slots retrieved")
}

// CreateBlock handles POST /scheduling/blocks
func (c *SchedulingController) CreateBlock(ctx echo.Context) error {
	var req dto.CreateBlockRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "start_at is required")
	}

	result, appErr := c.SchedulingService.CreateBlock(ctx.Request().Context(), &req)
	if appErr != nil {
		if appErr.Code == errors.ErrAlreadyExists {
			return c.Conflict(appErr.Code, appErr.Message)
		}
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Block created")
}

// ListBlocks handles GET /scheduling/blocks
func (c *SchedulingController) ListBlocks(ctx echo.Context) error {
	result, appErr := c.SchedulingService.ListBlocks(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Blocks retrieved")
}

// DeleteBlock handles DELETE /scheduling/blocks/:id
func (c *SchedulingController) DeleteBlock(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid block id")
	}

	if appErr := c.SchedulingService.DeleteBlock(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Block deleted")
}
