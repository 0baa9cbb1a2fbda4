package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-interview-crm/core/constants"
	"go-interview-crm/modules/scheduling/entity"
)

// Narrow store views so the finder can be exercised without a database.
type reservationInstantStore interface {
	FindByInstants(ctx context.Context, instants []time.Time, locationKey string) ([]entity.Reservation, error)
}

type blockInstantStore interface {
	FindByInstants(ctx context.Context, instants []time.Time, locationKey string) ([]entity.SlotBlock, error)
}

// AlternativeFinder enumerates, filters and ranks open candidate instants
// over a bounded horizon.
type AlternativeFinder struct {
	reservations reservationInstantStore
	blocks       blockInstantStore
}

func NewAlternativeFinder(reservations reservationInstantStore, blocks blockInstantStore) *AlternativeFinder {
	return &AlternativeFinder{
		reservations: reservations,
		blocks:       blocks,
	}
}

// FindAlternatives returns an ascending, deduplicated, conflict-free list of
// up to limit candidates within horizonDays. Busy instants are resolved with
// one batched read per store, never one query per candidate.
func (f *AlternativeFinder) FindAlternatives(
	ctx context.Context,
	cfg *entity.AvailabilityConfig,
	location entity.Location,
	limit int,
	horizonDays int,
	now time.Time,
) ([]entity.SlotCandidate, error) {
	if limit <= 0 {
		limit = constants.AlternativeLimit
	}
	if horizonDays <= 0 {
		horizonDays = constants.AlternativeHorizonDays
	}

	loc := loadLocation(cfg.Timezone)
	localNow := now.In(loc)
	rawCap := limit * 20

	var candidates []time.Time
	for offset := 0; offset < horizonDays && len(candidates) < rawCap; offset++ {
		day := localNow.AddDate(0, 0, offset)
		if cfg.IsExceptionDate(day.Format(constants.DateLayout)) {
			continue
		}

		intervals := cfg.Template[entity.ISOWeekday(day)]
		if len(intervals) == 0 {
			continue
		}

		for _, iv := range intervals {
			for m := iv.StartMinutes; m+cfg.SlotMinutes <= iv.EndMinutes; m += cfg.SlotMinutes {
				t := time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, loc)
				if t.After(now) {
					candidates = append(candidates, t)
				}
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})
	candidates = dedupeInstants(candidates)

	prefix := candidates
	if max := limit * 10; len(prefix) > max {
		prefix = prefix[:max]
	}

	busy, err := f.busyInstants(ctx, prefix, location.Key)
	if err != nil {
		return nil, err
	}

	result := make([]entity.SlotCandidate, 0, limit)
	for _, t := range prefix {
		if len(result) == limit {
			break
		}
		if _, taken := busy[t.Unix()]; taken {
			continue
		}
		// Candidates were generated from the template, but re-validate in
		// case the interval math and the checker ever disagree.
		if !IsSlotAvailable(t, cfg.SlotMinutes, cfg) {
			continue
		}

		result = append(result, entity.SlotCandidate{
			DayLabel:  entity.WeekdayLabel(entity.ISOWeekday(t)),
			TimeLabel: fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()),
			Location:  location.Label,
			Timezone:  cfg.Timezone,
			StartAt:   t.UTC(),
			EndAt:     t.Add(time.Duration(cfg.SlotMinutes) * time.Minute).UTC(),
		})
	}

	return result, nil
}

// busyInstants loads the exact start instants already taken by an active
// reservation or an administrative block at this location.
func (f *AlternativeFinder) busyInstants(ctx context.Context, instants []time.Time, locationKey string) (map[int64]struct{}, error) {
	busy := make(map[int64]struct{})
	if len(instants) == 0 {
		return busy, nil
	}

	utc := make([]time.Time, len(instants))
	for i, t := range instants {
		utc[i] = t.UTC()
	}

	reservations, err := f.reservations.FindByInstants(ctx, utc, locationKey)
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		busy[r.StartAt.Unix()] = struct{}{}
	}

	blocks, err := f.blocks.FindByInstants(ctx, utc, locationKey)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		busy[b.StartAt.Unix()] = struct{}{}
	}

	return busy, nil
}

func dedupeInstants(sorted []time.Time) []time.Time {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, t := range sorted[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}
