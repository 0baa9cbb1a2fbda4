package service

import (
	"time"

	"go-interview-crm/core/constants"
	"go-interview-crm/modules/scheduling/entity"
)

// IsSlotAvailable decides whether a candidate local instant is bookable.
// Checks short-circuit in order: exception dates override everything, then
// the weekday must have intervals, then [start, start+slotMinutes] must be
// fully contained in one interval. Partial overlap at a boundary rejects;
// nothing is truncated.
func IsSlotAvailable(localStart time.Time, slotMinutes int, cfg *entity.AvailabilityConfig) bool {
	if cfg.IsExceptionDate(localStart.Format(constants.DateLayout)) {
		return false
	}

	intervals := cfg.Template[entity.ISOWeekday(localStart)]
	if len(intervals) == 0 {
		return false
	}

	startMinutes := localStart.Hour()*60 + localStart.Minute()
	for _, iv := range intervals {
		if startMinutes >= iv.StartMinutes && startMinutes+slotMinutes <= iv.EndMinutes {
			return true
		}
	}
	return false
}
