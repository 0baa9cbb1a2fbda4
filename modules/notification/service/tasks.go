package service

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TypeReservationReminder is consumed by the product's async worker, which
// owns outbound message delivery.
const TypeReservationReminder = "reservation:reminder"

// reminderLead is how long before the interview the reminder fires.
const reminderLead = 2 * time.Hour

// ReservationReminderPayload is the asynq task payload.
type ReservationReminderPayload struct {
	ReservationID  string    `json:"reservation_id"`
	ConversationID string    `json:"conversation_id"`
	StartAt        time.Time `json:"start_at"`
	Location       string    `json:"location"`
}

func newReservationReminderTask(payload ReservationReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationReminder, data), nil
}
