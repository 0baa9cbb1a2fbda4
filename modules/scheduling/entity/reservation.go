package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle state of an interview reservation.
type ReservationStatus string

const (
	ReservationStatusPending     ReservationStatus = "pending"
	ReservationStatusConfirmed   ReservationStatus = "confirmed"
	ReservationStatusRescheduled ReservationStatus = "rescheduled"
	ReservationStatusCancelled   ReservationStatus = "cancelled"
	ReservationStatusOnHold      ReservationStatus = "on_hold"
)

// Reservation is a booked interview slot. ActiveKey carries the 'ACTIVE'
// sentinel on the single live reservation of a conversation; releasing or
// demoting clears it to NULL so the partial unique indexes stop counting the
// row.
type Reservation struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	PublicCode     string            `db:"public_code" json:"public_code"`
	ConversationID string            `db:"conversation_id" json:"conversation_id"`
	ContactID      string            `db:"contact_id" json:"contact_id"`
	StartAt        time.Time         `db:"start_at" json:"start_at"`
	EndAt          time.Time         `db:"end_at" json:"end_at"`
	Timezone       string            `db:"timezone" json:"timezone"`
	Location       string            `db:"location" json:"location"`
	LocationKey    string            `db:"location_key" json:"location_key"`
	Status         ReservationStatus `db:"status" json:"status"`
	ActiveKey      *string           `db:"active_key" json:"active_key,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the reservation carries the active sentinel.
func (r *Reservation) IsActive() bool {
	return r.ActiveKey != nil
}
