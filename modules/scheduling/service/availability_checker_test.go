package service

import (
	"testing"
	"time"

	"go-interview-crm/modules/scheduling/entity"

	"github.com/stretchr/testify/assert"
)

func weekdayConfig() *entity.AvailabilityConfig {
	return &entity.AvailabilityConfig{
		Timezone:    "America/Sao_Paulo",
		SlotMinutes: 30,
		Template:    entity.DefaultWeeklyTemplate(),
		Exceptions:  map[string]struct{}{"2026-03-04": {}},
	}
}

func TestIsSlotAvailable(t *testing.T) {
	sp := saoPaulo(t)
	cfg := weekdayConfig()

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{
			name:  "inside an open interval",
			start: time.Date(2026, 3, 3, 13, 0, 0, 0, sp),
			want:  true,
		},
		{
			name:  "exact interval start",
			start: time.Date(2026, 3, 3, 9, 0, 0, 0, sp),
			want:  true,
		},
		{
			name:  "last slot that still fits",
			start: time.Date(2026, 3, 3, 17, 30, 0, 0, sp),
			want:  true,
		},
		{
			name:  "slot spilling past the interval end",
			start: time.Date(2026, 3, 3, 17, 45, 0, 0, sp),
			want:  false,
		},
		{
			name:  "before the interval opens",
			start: time.Date(2026, 3, 3, 8, 45, 0, 0, sp),
			want:  false,
		},
		{
			name:  "weekday with no intervals",
			start: time.Date(2026, 3, 8, 10, 0, 0, 0, sp), // Sunday
			want:  false,
		},
		{
			name:  "exception date overrides an open weekday",
			start: time.Date(2026, 3, 4, 10, 0, 0, 0, sp), // Wednesday
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSlotAvailable(tt.start, cfg.SlotMinutes, cfg))
		})
	}
}

func TestIsSlotAvailable_SplitIntervals(t *testing.T) {
	sp := saoPaulo(t)
	cfg := &entity.AvailabilityConfig{
		SlotMinutes: 60,
		Template: entity.WeeklyTemplate{
			2: {
				{StartMinutes: 9 * 60, EndMinutes: 12 * 60},
				{StartMinutes: 14 * 60, EndMinutes: 18 * 60},
			},
		},
		Exceptions: map[string]struct{}{},
	}

	tuesday := func(h, m int) time.Time {
		return time.Date(2026, 3, 3, h, m, 0, 0, sp)
	}

	assert.True(t, IsSlotAvailable(tuesday(11, 0), 60, cfg))
	// Straddles the lunch gap.
	assert.False(t, IsSlotAvailable(tuesday(11, 30), 60, cfg))
	assert.False(t, IsSlotAvailable(tuesday(13, 0), 60, cfg))
	assert.True(t, IsSlotAvailable(tuesday(14, 0), 60, cfg))
	assert.True(t, IsSlotAvailable(tuesday(17, 0), 60, cfg))
	assert.False(t, IsSlotAvailable(tuesday(17, 30), 60, cfg))
}
