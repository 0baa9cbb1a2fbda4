package service

import (
	"context"
	"time"

	coreEntity "go-interview-crm/core/entity"
	"go-interview-crm/core/errors"
	"go-interview-crm/core/logger"
	"go-interview-crm/core/params"
	"go-interview-crm/modules/notification/entity"
	"go-interview-crm/modules/notification/repository"

	"github.com/hibiken/asynq"
)

type NotificationService struct {
	repo  repository.NotificationRepositoryInterface
	tasks *asynq.Client
}

type NotificationServiceInterface interface {
	NotifyReservation(ctx context.Context, conversationID, eventType, title, message string, data map[string]interface{})
	EnqueueReservationReminder(ctx context.Context, payload ReservationReminderPayload)
	GetByConversation(ctx context.Context, conversationID string, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError)
	MarkAsRead(ctx context.Context, conversationID string, ids []string) *errors.AppError
	CountUnread(ctx context.Context, conversationID string) (int, *errors.AppError)
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, tasks *asynq.Client) NotificationServiceInterface {
	return &NotificationService{repo: repo, tasks: tasks}
}

// NotifyReservation records a reservation lifecycle event. Best-effort: a
// failed notification never fails the booking that produced it.
func (s *NotificationService) NotifyReservation(ctx context.Context, conversationID, eventType, title, message string, data map[string]interface{}) {
	notif := &entity.Notification{
		ConversationID: conversationID,
		Title:          title,
		Message:        message,
		Type:           eventType,
		Data:           entity.JSONB(data),
		IsRead:         false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.repo.Create(ctx, notif); err != nil {
		logger.Error("NotificationService:NotifyReservation:Create:Error", "error", err, "conversation_id", conversationID)
	}
}

// EnqueueReservationReminder schedules the reminder task to fire shortly
// before the interview. The product's worker delivers the actual message.
func (s *NotificationService) EnqueueReservationReminder(ctx context.Context, payload ReservationReminderPayload) {
	if s.tasks == nil {
		return
	}

	processAt := payload.StartAt.Add(-reminderLead)
	if !processAt.After(time.Now()) {
		logger.Warn("NotificationService:EnqueueReservationReminder:TooLate",
			"reservation_id", payload.ReservationID, "start_at", payload.StartAt)
		return
	}

	task, err := newReservationReminderTask(payload)
	if err != nil {
		logger.Error("NotificationService:EnqueueReservationReminder:Marshal:Error", "error", err)
		return
	}

	info, err := s.tasks.EnqueueContext(ctx, task, asynq.ProcessAt(processAt), asynq.MaxRetry(3))
	if err != nil {
		logger.Error("NotificationService:EnqueueReservationReminder:Enqueue:Error", "error", err)
		return
	}

	logger.Info("NotificationService:EnqueueReservationReminder:Success",
		"task_id", info.ID, "reservation_id", payload.ReservationID, "process_at", processAt)
}

func (s *NotificationService) GetByConversation(ctx context.Context, conversationID string, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError) {
	queryParams.Normalize()
	result, err := s.repo.GetByConversationID(ctx, conversationID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load notifications", err)
	}
	return result, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, conversationID string, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, conversationID, ids); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, conversationID string) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, conversationID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Failed to count notifications", err)
	}
	return count, nil
}
