package entity

import (
	"strings"
	"time"
)

// weekdayNumbers maps localized weekday names to ISO weekday numbers
// (1=Monday .. 7=Sunday). Accented variants are listed explicitly so lookup
// stays a plain table instead of a normalization routine.
var weekdayNumbers = map[string]int{
	"segunda":       1,
	"segunda-feira": 1,
	"monday":        1,
	"terca":         2,
	"terça":         2,
	"terca-feira":   2,
	"terça-feira":   2,
	"tuesday":       2,
	"quarta":        3,
	"quarta-feira":  3,
	"wednesday":     3,
	"quinta":        4,
	"quinta-feira":  4,
	"thursday":      4,
	"sexta":         5,
	"sexta-feira":   5,
	"friday":        5,
	"sabado":        6,
	"sábado":        6,
	"saturday":      6,
	"domingo":       7,
	"sunday":        7,
}

// weekdayLabels are the display names used in chat-facing slot labels.
var weekdayLabels = map[int]string{
	1: "Segunda-feira",
	2: "Terça-feira",
	3: "Quarta-feira",
	4: "Quinta-feira",
	5: "Sexta-feira",
	6: "Sábado",
	7: "Domingo",
}

// ParseWeekday resolves a weekday name (case-insensitive) to its ISO number.
func ParseWeekday(name string) (int, bool) {
	n, ok := weekdayNumbers[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// WeekdayLabel returns the display label for an ISO weekday number.
func WeekdayLabel(weekday int) string {
	return weekdayLabels[weekday]
}

// ISOWeekday converts Go's Sunday-based weekday to ISO (1=Monday..7=Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
