package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotBlock is an administrator-defined blackout for one exact instant and
// location, independent of the weekly template.
type SlotBlock struct {
	ID          uuid.UUID `db:"id" json:"id"`
	StartAt     time.Time `db:"start_at" json:"start_at"`
	Location    string    `db:"location" json:"location"`
	LocationKey string    `db:"location_key" json:"location_key"`
	Reason      string    `db:"reason" json:"reason"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
