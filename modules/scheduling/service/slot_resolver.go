package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-interview-crm/core/constants"
	"go-interview-crm/modules/scheduling/entity"
)

// Structured failures of the natural slot resolver. Both map to the
// BAD_INPUT attempt outcome.
var (
	ErrUnknownWeekday = errors.New("unknown weekday name")
	ErrBadClockTime   = errors.New("unparseable clock time")
)

// ResolveNaturalSlot converts a weekday name and a clock-time string into the
// next concrete future instant in the tenant's timezone.
//
// A candidate that is not strictly after now rolls forward exactly 7 days:
// same-day requests whose time already passed land on the next week's
// occurrence, never on the following day. Callers rely on this exact rule.
func ResolveNaturalSlot(day, timeStr, timezone string, slotMinutes int, location entity.Location, now time.Time) (*entity.SlotCandidate, error) {
	targetWeekday, ok := entity.ParseWeekday(day)
	if !ok {
		return nil, ErrUnknownWeekday
	}

	minutes, ok := parseClockMinutes(timeStr)
	if !ok {
		return nil, ErrBadClockTime
	}

	loc := loadLocation(timezone)
	localNow := now.In(loc)

	diffDays := (targetWeekday - entity.ISOWeekday(localNow) + 7) % 7
	candidate := time.Date(
		localNow.Year(), localNow.Month(), localNow.Day()+diffDays,
		minutes/60, minutes%60, 0, 0, loc,
	)

	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}

	return &entity.SlotCandidate{
		DayLabel:  entity.WeekdayLabel(targetWeekday),
		TimeLabel: fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
		Location:  location.Label,
		Timezone:  timezone,
		StartAt:   candidate.UTC(),
		EndAt:     candidate.Add(time.Duration(slotMinutes) * time.Minute).UTC(),
	}, nil
}

// loadLocation resolves an IANA timezone name, degrading to the default
// tenant timezone and finally UTC.
func loadLocation(timezone string) *time.Location {
	if loc, err := time.LoadLocation(timezone); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(constants.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// parseClockMinutes parses "H:mm" / "HH:mm" into minutes since midnight.
func parseClockMinutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}
