package service

import (
	"fmt"
	"strings"

	"go-interview-crm/modules/scheduling/entity"
)

// FormatSlot renders a slot as "<Day> <Time>, <Location>" for chat replies.
func FormatSlot(s *entity.SlotCandidate) string {
	return fmt.Sprintf("%s %s, %s", s.DayLabel, s.TimeLabel, s.Location)
}

// FormatAlternatives renders the alternatives as a bulleted list.
func FormatAlternatives(slots []entity.SlotCandidate) string {
	if len(slots) == 0 {
		return ""
	}

	lines := make([]string, 0, len(slots))
	for i := range slots {
		lines = append(lines, "- "+FormatSlot(&slots[i]))
	}
	return strings.Join(lines, "\n")
}
