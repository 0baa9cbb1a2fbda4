package repository

import (
	"context"

	"go-interview-crm/core/database"
	"go-interview-crm/core/logger"
	"go-interview-crm/core/params"
	"go-interview-crm/modules/notification/entity"

	"github.com/lib/pq"
)

type NotificationRepository struct {
	db database.IDatabase
}

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByConversationID(ctx context.Context, conversationID string, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, conversationID string, ids []string) error
	CountUnread(ctx context.Context, conversationID string) (int, error)
}

func NewNotificationRepository(db database.IDatabase) NotificationRepositoryInterface {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (conversation_id, title, message, type, data, is_read, created_at, updated_at)
		VALUES (:conversation_id, :title, :message, :type, :data, :is_read, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID)
	}
	return nil
}

func (r *NotificationRepository) GetByConversationID(ctx context.Context, conversationID string, params params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	baseQuery := `FROM notifications WHERE conversation_id = $1`

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, conversationID)
	if err != nil {
		logger.Error("NotificationRepository:GetByConversationID:Count:Error", "error", err)
		return nil, err
	}

	query := `
		SELECT * ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []entity.Notification
	err = r.db.SelectContext(ctx, &notifications, query, conversationID, params.PageSize, offset)
	if err != nil {
		logger.Error("NotificationRepository:GetByConversationID:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, conversationID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		WHERE conversation_id = $1 AND id = ANY($2)
	`
	err := r.db.ExecContext(ctx, query, conversationID, pq.Array(ids))
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, conversationID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE conversation_id = $1 AND is_read = FALSE`

	var count int
	err := r.db.GetContext(ctx, &count, query, conversationID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread:Error", "error", err)
		return 0, err
	}
	return count, nil
}
