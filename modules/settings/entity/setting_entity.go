package entity

import "time"

// Setting is one tenant configuration entry. Scheduling reads them as an
// opaque key/value map and sanitizes on every use.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
