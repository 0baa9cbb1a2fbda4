package entity

// TimeInterval is a bookable window inside one weekday, in minutes since
// local midnight. Invariant: StartMinutes < EndMinutes (enforced at load).
type TimeInterval struct {
	StartMinutes int `json:"start_minutes"`
	EndMinutes   int `json:"end_minutes"`
}

// WeeklyTemplate maps ISO weekday numbers (1=Monday..7=Sunday) to the ordered
// bookable intervals of that weekday. Rebuilt from tenant configuration on
// every use; never mutated after construction.
type WeeklyTemplate map[int][]TimeInterval

// DefaultWeeklyTemplate is Mon-Fri 09:00-18:00, weekends empty.
func DefaultWeeklyTemplate() WeeklyTemplate {
	tpl := make(WeeklyTemplate, 5)
	for wd := 1; wd <= 5; wd++ {
		tpl[wd] = []TimeInterval{{StartMinutes: 9 * 60, EndMinutes: 18 * 60}}
	}
	return tpl
}

// Location is one interview site offered to candidates.
type Location struct {
	Label        string `json:"label"`
	Key          string `json:"key"`
	ExactAddress string `json:"exact_address,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// AvailabilityConfig is the sanitized scheduling configuration of a tenant.
type AvailabilityConfig struct {
	Timezone    string
	SlotMinutes int
	Locations   []Location
	Template    WeeklyTemplate
	Exceptions  map[string]struct{}
}

// IsExceptionDate reports whether the given YYYY-MM-DD date is fully blocked.
func (c *AvailabilityConfig) IsExceptionDate(date string) bool {
	_, ok := c.Exceptions[date]
	return ok
}

// LocationByKey finds a configured location by its normalized key.
func (c *AvailabilityConfig) LocationByKey(key string) (Location, bool) {
	for _, loc := range c.Locations {
		if loc.Key == key {
			return loc, true
		}
	}
	return Location{}, false
}
