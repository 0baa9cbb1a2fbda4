package service

import (
	"testing"

	"go-interview-crm/core/constants"
	"go-interview-crm/modules/scheduling/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAvailability_Defaults(t *testing.T) {
	cfg := ResolveAvailability(map[string]string{})

	assert.Equal(t, constants.DefaultTimezone, cfg.Timezone)
	assert.Equal(t, 30, cfg.SlotMinutes)

	require.Len(t, cfg.Locations, 1)
	assert.Equal(t, constants.DefaultLocation, cfg.Locations[0].Label)
	assert.NotEmpty(t, cfg.Locations[0].Key)

	// Mon-Fri 09:00-18:00, weekends empty
	for wd := 1; wd <= 5; wd++ {
		require.Len(t, cfg.Template[wd], 1, "weekday %d", wd)
		assert.Equal(t, 9*60, cfg.Template[wd][0].StartMinutes)
		assert.Equal(t, 18*60, cfg.Template[wd][0].EndMinutes)
	}
	assert.Empty(t, cfg.Template[6])
	assert.Empty(t, cfg.Template[7])
	assert.Empty(t, cfg.Exceptions)
}

func TestResolveSlotMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "valid", raw: "60", want: 60},
		{name: "upper bound kept", raw: "480", want: 480},
		{name: "above upper bound", raw: "481", want: 30},
		{name: "zero", raw: "0", want: 30},
		{name: "negative", raw: "-15", want: 30},
		{name: "non-numeric", raw: "abc", want: 30},
		{name: "empty", raw: "", want: 30},
		{name: "padded", raw: " 45 ", want: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSlotMinutes(tt.raw))
		})
	}
}

func TestParseLocations(t *testing.T) {
	t.Run("strings are normalized and title-cased", func(t *testing.T) {
		locations := parseLocations(`["  centro   sul ", "unidade leste"]`, "")

		require.Len(t, locations, 2)
		assert.Equal(t, "Centro Sul", locations[0].Label)
		assert.Equal(t, "centro-sul", locations[0].Key)
		assert.Equal(t, "Unidade Leste", locations[1].Label)
	})

	t.Run("objects keep address and instructions", func(t *testing.T) {
		raw := `[{"label":"sede principal","exact_address":"Av. Paulista 1000","instructions":"portaria B"}]`
		locations := parseLocations(raw, "")

		require.Len(t, locations, 1)
		assert.Equal(t, "Sede Principal", locations[0].Label)
		assert.Equal(t, "Av. Paulista 1000", locations[0].ExactAddress)
		assert.Equal(t, "portaria B", locations[0].Instructions)
	})

	t.Run("empty entries are dropped", func(t *testing.T) {
		locations := parseLocations(`["", "   ", {"label":""}, "Sede"]`, "")

		require.Len(t, locations, 1)
		assert.Equal(t, "Sede", locations[0].Label)
	})

	t.Run("unparseable input falls back to default location", func(t *testing.T) {
		locations := parseLocations(`{not json`, "")

		require.Len(t, locations, 1)
		assert.Equal(t, constants.DefaultLocation, locations[0].Label)
	})

	t.Run("configured default label wins over the built-in one", func(t *testing.T) {
		locations := parseLocations(`[]`, "unidade norte")

		require.Len(t, locations, 1)
		assert.Equal(t, "Unidade Norte", locations[0].Label)
	})
}

func TestParseWeeklyTemplate(t *testing.T) {
	t.Run("valid template with accented keys", func(t *testing.T) {
		raw := `{
			"segunda": [{"start":"9:00","end":"12:00"},{"start":"14:00","end":"18:00"}],
			"terça":   [{"start":"10:00","end":"16:00"}],
			"sábado":  [{"start":"09:00","end":"12:00"}]
		}`
		tpl := parseWeeklyTemplate(raw)

		require.Len(t, tpl[1], 2)
		assert.Equal(t, entity.TimeInterval{StartMinutes: 9 * 60, EndMinutes: 12 * 60}, tpl[1][0])
		assert.Equal(t, entity.TimeInterval{StartMinutes: 14 * 60, EndMinutes: 18 * 60}, tpl[1][1])
		require.Len(t, tpl[2], 1)
		require.Len(t, tpl[6], 1)
		assert.Empty(t, tpl[7])
	})

	t.Run("portuguese field names accepted", func(t *testing.T) {
		tpl := parseWeeklyTemplate(`{"quarta": [{"inicio":"8:00","fim":"17:00"}]}`)

		require.Len(t, tpl[3], 1)
		assert.Equal(t, 8*60, tpl[3][0].StartMinutes)
	})

	t.Run("inverted and malformed intervals dropped", func(t *testing.T) {
		raw := `{
			"segunda": [{"start":"18:00","end":"09:00"},{"start":"9:00","end":"9:00"},{"start":"x","end":"12:00"}],
			"terça":   [{"start":"09:00","end":"12:00"}]
		}`
		tpl := parseWeeklyTemplate(raw)

		assert.Empty(t, tpl[1])
		require.Len(t, tpl[2], 1)
	})

	t.Run("unknown weekday keys ignored", func(t *testing.T) {
		tpl := parseWeeklyTemplate(`{"someday": [{"start":"9:00","end":"12:00"}], "sexta": [{"start":"9:00","end":"12:00"}]}`)

		assert.Len(t, tpl, 1)
		require.Len(t, tpl[5], 1)
	})

	t.Run("unparseable top-level yields default template", func(t *testing.T) {
		tpl := parseWeeklyTemplate(`[1,2,3`)

		require.Len(t, tpl[1], 1)
		assert.Equal(t, 9*60, tpl[1][0].StartMinutes)
		assert.Equal(t, 18*60, tpl[1][0].EndMinutes)
	})

	t.Run("intervals sorted by start", func(t *testing.T) {
		tpl := parseWeeklyTemplate(`{"quinta": [{"start":"14:00","end":"18:00"},{"start":"9:00","end":"12:00"}]}`)

		require.Len(t, tpl[4], 2)
		assert.Equal(t, 9*60, tpl[4][0].StartMinutes)
		assert.Equal(t, 14*60, tpl[4][1].StartMinutes)
	})
}

func TestParseExceptionDates(t *testing.T) {
	raw := `["2026-03-03", {"date":"2026-12-25"}, "03/04/2026", "2026-13-40", 42]`
	exceptions := parseExceptionDates(raw)

	assert.Len(t, exceptions, 2)
	assert.Contains(t, exceptions, "2026-03-03")
	assert.Contains(t, exceptions, "2026-12-25")

	assert.Empty(t, parseExceptionDates(`not json`))
}

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: "9:00", want: 540, ok: true},
		{raw: "09:00", want: 540, ok: true},
		{raw: "23:59", want: 1439, ok: true},
		{raw: "0:00", want: 0, ok: true},
		{raw: "24:00", ok: false},
		{raw: "12:60", ok: false},
		{raw: "9:5", ok: false},
		{raw: "900", ok: false},
		{raw: "", ok: false},
		{raw: "aa:bb", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseClockMinutes(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
