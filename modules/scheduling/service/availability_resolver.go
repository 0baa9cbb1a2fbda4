package service

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-interview-crm/core/constants"
	"go-interview-crm/modules/scheduling/entity"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser normalizes location labels for display.
var titleCaser = cases.Title(language.BrazilianPortuguese)

// ResolveAvailability sanitizes the tenant's raw scheduling configuration.
// Parsing is deliberately defensive: structurally invalid input degrades to
// defaults instead of erroring, so bad tenant config can never take booking
// down. Dropped entries are logged by the callers that care; the resolver
// itself stays pure.
func ResolveAvailability(raw map[string]string) *entity.AvailabilityConfig {
	timezone := strings.TrimSpace(raw[constants.SettingTimezone])
	if timezone == "" {
		timezone = constants.DefaultTimezone
	}

	return &entity.AvailabilityConfig{
		Timezone:    timezone,
		SlotMinutes: resolveSlotMinutes(raw[constants.SettingSlotMinutes]),
		Locations:   parseLocations(raw[constants.SettingLocations], raw[constants.SettingDefaultLocation]),
		Template:    parseWeeklyTemplate(raw[constants.SettingWeeklyHours]),
		Exceptions:  parseExceptionDates(raw[constants.SettingExceptionDates]),
	}
}

// resolveSlotMinutes clamps the slot length to (0, 480] minutes, falling
// back to 30 on anything out of range or non-numeric.
func resolveSlotMinutes(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 || n > constants.MaxSlotMinutes {
		return constants.DefaultSlotMinutes
	}
	return n
}

type locationEntry struct {
	Label        string `json:"label"`
	ExactAddress string `json:"exact_address"`
	Instructions string `json:"instructions"`
}

// parseLocations accepts a JSON array of strings or location objects. Empty
// or unparseable entries are dropped; an empty result falls back to a single
// default location.
func parseLocations(raw, defaultLabel string) []entity.Location {
	var locations []entity.Location

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		for _, item := range items {
			var label string
			var loc entity.Location

			if err := json.Unmarshal(item, &label); err == nil {
				loc = entity.Location{Label: normalizeLabel(label)}
			} else {
				var obj locationEntry
				if err := json.Unmarshal(item, &obj); err != nil {
					continue
				}
				loc = entity.Location{
					Label:        normalizeLabel(obj.Label),
					ExactAddress: strings.TrimSpace(obj.ExactAddress),
					Instructions: strings.TrimSpace(obj.Instructions),
				}
			}

			if loc.Label == "" {
				continue
			}
			loc.Key = slug.Make(loc.Label)
			locations = append(locations, loc)
		}
	}

	if len(locations) == 0 {
		label := normalizeLabel(defaultLabel)
		if label == "" {
			label = constants.DefaultLocation
		}
		locations = []entity.Location{{Label: label, Key: slug.Make(label)}}
	}

	return locations
}

// normalizeLabel collapses whitespace and title-cases the result.
func normalizeLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

type templateInterval struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`
}

func (ti templateInterval) bounds() (int, int, bool) {
	start := ti.Start
	if start == "" {
		start = ti.Inicio
	}
	end := ti.End
	if end == "" {
		end = ti.Fim
	}

	startMin, ok := parseClockMinutes(start)
	if !ok {
		return 0, 0, false
	}
	endMin, ok := parseClockMinutes(end)
	if !ok {
		return 0, 0, false
	}
	return startMin, endMin, true
}

// parseWeeklyTemplate accepts a JSON object keyed by localized weekday names.
// Unknown keys are ignored; intervals are kept only when start < end.
// Unparseable top-level input yields the default Mon-Fri template.
func parseWeeklyTemplate(raw string) entity.WeeklyTemplate {
	var byDay map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &byDay); err != nil {
		return entity.DefaultWeeklyTemplate()
	}

	template := make(entity.WeeklyTemplate)
	for name, rawEntry := range byDay {
		weekday, ok := entity.ParseWeekday(name)
		if !ok {
			continue
		}

		var entries []templateInterval
		if err := json.Unmarshal(rawEntry, &entries); err != nil {
			var single templateInterval
			if err := json.Unmarshal(rawEntry, &single); err != nil {
				continue
			}
			entries = []templateInterval{single}
		}

		var intervals []entity.TimeInterval
		for _, e := range entries {
			startMin, endMin, ok := e.bounds()
			if !ok || startMin >= endMin {
				continue
			}
			intervals = append(intervals, entity.TimeInterval{StartMinutes: startMin, EndMinutes: endMin})
		}

		if len(intervals) > 0 {
			sort.Slice(intervals, func(i, j int) bool {
				return intervals[i].StartMinutes < intervals[j].StartMinutes
			})
			template[weekday] = intervals
		}
	}

	return template
}

type exceptionEntry struct {
	Date string `json:"date"`
}

// parseExceptionDates accepts a JSON array of date strings or {date} objects,
// keeping only strict YYYY-MM-DD values.
func parseExceptionDates(raw string) map[string]struct{} {
	exceptions := make(map[string]struct{})

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return exceptions
	}

	for _, item := range items {
		var date string
		if err := json.Unmarshal(item, &date); err != nil {
			var obj exceptionEntry
			if err := json.Unmarshal(item, &obj); err != nil {
				continue
			}
			date = obj.Date
		}

		date = strings.TrimSpace(date)
		if _, err := time.Parse(constants.DateLayout, date); err != nil {
			continue
		}
		exceptions[date] = struct{}{}
	}

	return exceptions
}
