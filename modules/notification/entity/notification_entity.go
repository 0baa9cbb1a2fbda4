package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	coreEntity "go-interview-crm/core/entity"
)

// Notification is an in-app notification row tied to a conversation. Delivery
// to the contact (WhatsApp, email, ...) is handled by the surrounding product.
type Notification struct {
	ConversationID string `db:"conversation_id" json:"conversation_id"`
	Title          string `db:"title" json:"title"`
	Message        string `db:"message" json:"message"`
	Type           string `db:"type" json:"type"`
	Data           JSONB  `db:"data" json:"data"`
	IsRead         bool   `db:"is_read" json:"is_read"`
	coreEntity.BaseEntity
}

// Notification types emitted by the scheduling engine
const (
	TypeReservationScheduled   = "reservation_scheduled"
	TypeReservationRescheduled = "reservation_rescheduled"
	TypeReservationConfirmed   = "reservation_confirmed"
	TypeReservationReleased    = "reservation_released"
)

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}

type PaginatedNotificationEntity = coreEntity.Pagination[Notification]
