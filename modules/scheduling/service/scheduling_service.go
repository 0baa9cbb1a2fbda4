package service

import (
	"context"
	"strings"
	"time"

	"go-interview-crm/core/clock"
	"go-interview-crm/core/constants"
	"go-interview-crm/core/errors"
	"go-interview-crm/core/logger"
	"go-interview-crm/core/utils"
	notifentity "go-interview-crm/modules/notification/entity"
	notifservice "go-interview-crm/modules/notification/service"
	"go-interview-crm/modules/scheduling/dto"
	"go-interview-crm/modules/scheduling/entity"
	"go-interview-crm/modules/scheduling/repository"
	settingsservice "go-interview-crm/modules/settings/service"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SchedulingService orchestrates validation, conflict checks and the atomic
// create/update/demote logic for interview reservations.
type SchedulingService struct {
	reservations  repository.ReservationRepositoryInterface
	blocks        repository.BlockRepositoryInterface
	settings      settingsservice.SettingsServiceInterface
	notifications notifservice.NotificationServiceInterface
	finder        *AlternativeFinder
	clock         clock.Clock
}

type SchedulingServiceInterface interface {
	AttemptSchedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleAttemptResult, *errors.AppError)
	ConfirmActiveReservation(ctx context.Context, conversationID string) (*dto.ReservationResponse, *errors.AppError)
	ReleaseActiveReservation(ctx context.Context, conversationID, status string) (*dto.ReservationResponse, *errors.AppError)
	GetActiveReservation(ctx context.Context, conversationID string) (*dto.ReservationResponse, *errors.AppError)
	GetAlternatives(ctx context.Context, location string, limit int) (*dto.AlternativesResponse, *errors.AppError)
	CreateBlock(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, *errors.AppError)
	ListBlocks(ctx context.Context) ([]dto.BlockResponse, *errors.AppError)
	DeleteBlock(ctx context.Context, id uuid.UUID) *errors.AppError
}

func NewSchedulingService(
	reservations repository.ReservationRepositoryInterface,
	blocks repository.BlockRepositoryInterface,
	settings settingsservice.SettingsServiceInterface,
	notifications notifservice.NotificationServiceInterface,
	clk clock.Clock,
) SchedulingServiceInterface {
	if clk == nil {
		clk = clock.System()
	}
	return &SchedulingService{
		reservations:  reservations,
		blocks:        blocks,
		settings:      settings,
		notifications: notifications,
		finder:        NewAlternativeFinder(reservations, blocks),
		clock:         clk,
	}
}

// AttemptSchedule resolves the requested day/time to a concrete instant,
// validates it, and atomically creates, refreshes or replaces the
// conversation's active reservation. Expected failures come back as tagged
// results with alternatives; only unexpected storage failures are AppErrors.
func (s *SchedulingService) AttemptSchedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleAttemptResult, *errors.AppError) {
	logger.Info("SchedulingService:AttemptSchedule:Start",
		"conversation_id", req.ConversationID, "day", req.Day, "time", req.Time, "location", req.Location)

	cfg := ResolveAvailability(s.settings.RawScheduleConfig(ctx))
	location := s.resolveLocation(cfg, req.Location)
	now := s.clock.Now()

	if strings.TrimSpace(req.Day) == "" || strings.TrimSpace(req.Time) == "" {
		return s.failure(ctx, cfg, location, now, dto.ReasonMissing), nil
	}

	slot, err := ResolveNaturalSlot(req.Day, req.Time, cfg.Timezone, cfg.SlotMinutes, location, now)
	if err != nil {
		return s.failure(ctx, cfg, location, now, dto.ReasonBadInput), nil
	}

	localStart := slot.StartAt.In(loadLocation(cfg.Timezone))
	if !IsSlotAvailable(localStart, cfg.SlotMinutes, cfg) {
		return s.failure(ctx, cfg, location, now, dto.ReasonOutsideAvailability), nil
	}

	block, blockErr := s.blocks.FindByStartAndLocation(ctx, slot.StartAt, location.Key)
	if blockErr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check slot blocks", blockErr)
	}
	if block != nil {
		return s.failure(ctx, cfg, location, now, dto.ReasonConflict), nil
	}

	var result *dto.ScheduleAttemptResult
	var previous *entity.Reservation

	txErr := s.reservations.WithinTransaction(ctx, func(ops repository.ReservationTxOps) error {
		current, err := ops.FindActiveByConversation(ctx, req.ConversationID)
		if err != nil {
			return err
		}

		// Idempotent re-request of the slot already held.
		if current != nil && current.LocationKey == location.Key && current.StartAt.Equal(slot.StartAt) {
			if err := ops.RefreshSlot(ctx, current.ID, slot.EndAt, cfg.Timezone); err != nil {
				return err
			}
			id := current.ID.String()
			result = s.success(dto.KindUnchanged, slot, id, &id)
			return nil
		}

		// Demote first: the partial unique index on (conversation_id) won't
		// admit a second ACTIVE row for this conversation.
		if current != nil {
			if err := ops.Demote(ctx, current.ID, entity.ReservationStatusRescheduled); err != nil {
				return err
			}
			previous = current
		}

		activeKey := constants.ActiveReservationKey
		reservation := &entity.Reservation{
			PublicCode:     utils.GenerateID(),
			ConversationID: req.ConversationID,
			ContactID:      req.ContactID,
			StartAt:        slot.StartAt,
			EndAt:          slot.EndAt,
			Timezone:       cfg.Timezone,
			Location:       location.Label,
			LocationKey:    location.Key,
			Status:         entity.ReservationStatusPending,
			ActiveKey:      &activeKey,
		}
		if err := ops.Create(ctx, reservation); err != nil {
			return err
		}

		id := reservation.ID.String()
		if previous != nil {
			prevID := previous.ID.String()
			result = s.success(dto.KindRescheduled, slot, id, &prevID)
		} else {
			result = s.success(dto.KindScheduled, slot, id, nil)
		}
		return nil
	})

	if txErr != nil {
		// Two callers raced for the same instant/location; the unique index
		// let only one commit win. Everything else is a real storage failure
		// and must not be masked as a benign conflict.
		if repository.IsUniqueViolation(txErr) {
			logger.Warn("SchedulingService:AttemptSchedule:SlotRaceLost",
				"conversation_id", req.ConversationID, "start_at", slot.StartAt)
			return s.failure(ctx, cfg, location, now, dto.ReasonConflict), nil
		}
		logger.Error("SchedulingService:AttemptSchedule:TxError", "error", txErr, "conversation_id", req.ConversationID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to persist reservation", txErr)
	}

	s.notifyAttempt(ctx, req.ConversationID, result, slot)

	logger.Info("SchedulingService:AttemptSchedule:Success",
		"conversation_id", req.ConversationID, "kind", result.Kind, "start_at", slot.StartAt)
	return result, nil
}

// ConfirmActiveReservation marks the live reservation confirmed. The active
// sentinel stays set, so a later AttemptSchedule for the same conversation
// still demotes the confirmed interview instead of double-booking.
func (s *SchedulingService) ConfirmActiveReservation(ctx context.Context, conversationID string) (*dto.ReservationResponse, *errors.AppError) {
	reservation, err := s.reservations.FindActiveByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load active reservation", err)
	}
	if reservation == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "No active reservation for this conversation", nil)
	}

	if err := s.reservations.Confirm(ctx, reservation.ID); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to confirm reservation", err)
	}
	reservation.Status = entity.ReservationStatusConfirmed

	if s.notifications != nil {
		slot := s.reservationSlot(reservation)
		s.notifications.NotifyReservation(ctx, conversationID,
			notifentity.TypeReservationConfirmed, "Entrevista confirmada", FormatSlot(slot),
			map[string]interface{}{"reservation_id": reservation.ID.String()})
		s.notifications.EnqueueReservationReminder(ctx, notifservice.ReservationReminderPayload{
			ReservationID:  reservation.ID.String(),
			ConversationID: conversationID,
			StartAt:        reservation.StartAt,
			Location:       reservation.Location,
		})
	}

	logger.Info("SchedulingService:ConfirmActiveReservation:Success",
		"conversation_id", conversationID, "reservation_id", reservation.ID)
	return dto.ToReservationResponse(reservation), nil
}

// ReleaseActiveReservation cancels or holds the live reservation and clears
// the active sentinel, freeing the conversation to book again.
func (s *SchedulingService) ReleaseActiveReservation(ctx context.Context, conversationID, status string) (*dto.ReservationResponse, *errors.AppError) {
	var target entity.ReservationStatus
	switch status {
	case string(entity.ReservationStatusCancelled):
		target = entity.ReservationStatusCancelled
	case string(entity.ReservationStatusOnHold):
		target = entity.ReservationStatusOnHold
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Release status must be cancelled or on_hold", nil)
	}

	reservation, err := s.reservations.FindActiveByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load active reservation", err)
	}
	if reservation == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "No active reservation for this conversation", nil)
	}

	if err := s.reservations.Release(ctx, reservation.ID, target); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to release reservation", err)
	}
	reservation.Status = target
	reservation.ActiveKey = nil

	if s.notifications != nil {
		slot := s.reservationSlot(reservation)
		s.notifications.NotifyReservation(ctx, conversationID,
			notifentity.TypeReservationReleased, "Entrevista liberada", FormatSlot(slot),
			map[string]interface{}{"reservation_id": reservation.ID.String(), "status": status})
	}

	logger.Info("SchedulingService:ReleaseActiveReservation:Success",
		"conversation_id", conversationID, "reservation_id", reservation.ID, "status", target)
	return dto.ToReservationResponse(reservation), nil
}

func (s *SchedulingService) GetActiveReservation(ctx context.Context, conversationID string) (*dto.ReservationResponse, *errors.AppError) {
	reservation, err := s.reservations.FindActiveByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load active reservation", err)
	}
	if reservation == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "No active reservation for this conversation", nil)
	}
	return dto.ToReservationResponse(reservation), nil
}

// GetAlternatives exposes the alternative finder directly for the chat layer.
func (s *SchedulingService) GetAlternatives(ctx context.Context, location string, limit int) (*dto.AlternativesResponse, *errors.AppError) {
	cfg := ResolveAvailability(s.settings.RawScheduleConfig(ctx))
	loc := s.resolveLocation(cfg, location)

	slots, err := s.finder.FindAlternatives(ctx, cfg, loc, limit, constants.AlternativeHorizonDays, s.clock.Now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to find alternative slots", err)
	}

	return &dto.AlternativesResponse{
		Alternatives: dto.ToSlotDTOs(slots),
		Message:      FormatAlternatives(slots),
	}, nil
}

func (s *SchedulingService) CreateBlock(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, *errors.AppError) {
	cfg := ResolveAvailability(s.settings.RawScheduleConfig(ctx))
	location := s.resolveLocation(cfg, req.Location)

	block := &entity.SlotBlock{
		StartAt:     req.StartAt.UTC(),
		Location:    location.Label,
		LocationKey: location.Key,
		Reason:      strings.TrimSpace(req.Reason),
	}

	if err := s.blocks.Create(ctx, block); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "This slot is already blocked", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create block", err)
	}

	logger.Info("SchedulingService:CreateBlock:Success", "start_at", block.StartAt, "location", block.Location)
	return dto.ToBlockResponse(block), nil
}

func (s *SchedulingService) ListBlocks(ctx context.Context) ([]dto.BlockResponse, *errors.AppError) {
	blocks, err := s.blocks.ListUpcoming(ctx, s.clock.Now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list blocks", err)
	}

	result := make([]dto.BlockResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *dto.ToBlockResponse(&blocks[i]))
	}
	return result, nil
}

func (s *SchedulingService) DeleteBlock(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.blocks.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete block", err)
	}
	return nil
}

// ===================== helpers =====================

// resolveLocation matches the requested label against configured locations
// by normalized key, defaulting to the tenant's first location.
func (s *SchedulingService) resolveLocation(cfg *entity.AvailabilityConfig, requested string) entity.Location {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		if loc, ok := cfg.LocationByKey(slug.Make(requested)); ok {
			return loc
		}
	}
	return cfg.Locations[0]
}

func (s *SchedulingService) success(kind dto.ScheduleKind, slot *entity.SlotCandidate, reservationID string, previousID *string) *dto.ScheduleAttemptResult {
	return &dto.ScheduleAttemptResult{
		OK:                    true,
		Kind:                  kind,
		Slot:                  dto.ToSlotDTO(slot),
		ReservationID:         &reservationID,
		PreviousReservationID: previousID,
		Alternatives:          []dto.SlotDTO{},
		Message:               FormatSlot(slot),
	}
}

// failure builds a tagged failure result carrying freshly computed
// alternatives. Finder errors degrade to an empty list: the failure reason
// is the payload, alternatives are best-effort.
func (s *SchedulingService) failure(ctx context.Context, cfg *entity.AvailabilityConfig, location entity.Location, now time.Time, reason dto.FailReason) *dto.ScheduleAttemptResult {
	slots, err := s.finder.FindAlternatives(ctx, cfg, location, constants.AlternativeLimit, constants.AlternativeHorizonDays, now)
	if err != nil {
		logger.Error("SchedulingService:failure:FindAlternatives:Error", "error", err, "reason", reason)
		slots = nil
	}

	return &dto.ScheduleAttemptResult{
		OK:           false,
		Reason:       reason,
		Alternatives: dto.ToSlotDTOs(slots),
		Message:      FormatAlternatives(slots),
	}
}

func (s *SchedulingService) reservationSlot(r *entity.Reservation) *entity.SlotCandidate {
	local := r.StartAt.In(loadLocation(r.Timezone))
	return &entity.SlotCandidate{
		DayLabel:  entity.WeekdayLabel(entity.ISOWeekday(local)),
		TimeLabel: local.Format(constants.TimeLayout),
		Location:  r.Location,
		Timezone:  r.Timezone,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
	}
}

func (s *SchedulingService) notifyAttempt(ctx context.Context, conversationID string, result *dto.ScheduleAttemptResult, slot *entity.SlotCandidate) {
	if s.notifications == nil || result == nil || !result.OK || result.Kind == dto.KindUnchanged {
		return
	}

	eventType := notifentity.TypeReservationScheduled
	title := "Entrevista agendada"
	if result.Kind == dto.KindRescheduled {
		eventType = notifentity.TypeReservationRescheduled
		title = "Entrevista reagendada"
	}

	data := map[string]interface{}{"reservation_id": *result.ReservationID}
	if result.PreviousReservationID != nil {
		data["previous_reservation_id"] = *result.PreviousReservationID
	}
	s.notifications.NotifyReservation(ctx, conversationID, eventType, title, FormatSlot(slot), data)
}
