// README: Contractor snapshot, weekly recurring schedule, and time slot values.
package contractor

import (
	"fmt"
	"time"

	"fieldops/internal/types"
)

// TimeSlot is a contiguous time-of-day interval, stored as minutes from
// midnight. Slots produced by the resolver always satisfy StartMin < EndMin.
type TimeSlot struct {
	StartMin int
	EndMin   int
}

func (s TimeSlot) Valid() bool {
	return s.StartMin >= 0 && s.EndMin <= 24*60 && s.StartMin < s.EndMin
}

// DurationHours returns the slot length in hours.
func (s TimeSlot) DurationHours() float64 {
	return float64(s.EndMin-s.StartMin) / 60.0
}

func (s TimeSlot) String() string {
	return FormatClock(s.StartMin) + "-" + FormatClock(s.EndMin)
}

// ParseClock parses an "HH:MM" time of day into minutes from midnight.
func ParseClock(v string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", v, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || h*60+m > 24*60 {
		return 0, fmt.Errorf("invalid clock value %q", v)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ScheduleEntry is one recurring weekday's set of open windows. The
// windows enumerate when the contractor accepts bookings, not when they
// are already booked.
type ScheduleEntry struct {
	Weekday time.Weekday
	Slots   []TimeSlot
}

// Contractor is the read-only snapshot the ranking engine consumes.
type Contractor struct {
	ID             types.ID
	DisplayID      string
	Name           string
	JobTypeID      types.ID
	Base           types.Point
	Rating         float64
	Active         bool
	WeeklySchedule []ScheduleEntry
}
