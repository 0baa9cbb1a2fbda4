package entity

import "time"

// SlotCandidate is an ephemeral bookable instant produced by the slot
// resolver and the alternative finder. It is never persisted; the transaction
// manager turns the winning candidate into a Reservation.
type SlotCandidate struct {
	DayLabel  string    `json:"day"`
	TimeLabel string    `json:"time"`
	Location  string    `json:"location"`
	Timezone  string    `json:"timezone"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
}
