// README: Availability resolver over the weekly recurring schedule.
package contractor

import (
	"math"
	"sort"
	"time"
)

// WindowsOn returns the contractor's open windows for the weekday of
// date, normalized: malformed entries dropped, sorted by start, and
// overlapping or adjacent windows merged. An empty result is a valid
// "no availability that day", not an error.
func WindowsOn(c Contractor, date time.Time) []TimeSlot {
	weekday := date.Weekday()
	var raw []TimeSlot
	for _, entry := range c.WeeklySchedule {
		if entry.Weekday != weekday {
			continue
		}
		raw = append(raw, entry.Slots...)
	}
	return normalizeWindows(raw)
}

// QualifyingSlots returns every normalized window on the target date
// able to host requiredHours, ordered by earliest start, ties broken by
// larger surplus capacity. A window exactly equal to the required
// duration is a valid, fully consumed match. requiredHours must be
// positive; callers validate before reaching here.
func QualifyingSlots(c Contractor, date time.Time, requiredHours float64) []TimeSlot {
	requiredMin := int(math.Round(requiredHours * 60))
	if requiredMin <= 0 {
		return nil
	}

	windows := WindowsOn(c, date)
	qualifying := windows[:0:0]
	for _, w := range windows {
		if w.EndMin-w.StartMin >= requiredMin {
			qualifying = append(qualifying, w)
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		if qualifying[i].StartMin != qualifying[j].StartMin {
			return qualifying[i].StartMin < qualifying[j].StartMin
		}
		return surplus(qualifying[i], requiredMin) > surplus(qualifying[j], requiredMin)
	})
	return qualifying
}

// BestSlot returns the preferred qualifying slot, or nil when the day
// cannot host the required duration.
func BestSlot(c Contractor, date time.Time, requiredHours float64) *TimeSlot {
	slots := QualifyingSlots(c, date, requiredHours)
	if len(slots) == 0 {
		return nil
	}
	best := slots[0]
	return &best
}

func surplus(w TimeSlot, requiredMin int) int {
	return (w.EndMin - w.StartMin) - requiredMin
}

// normalizeWindows drops invalid intervals, sorts by start, and merges
// windows that overlap or touch.
func normalizeWindows(raw []TimeSlot) []TimeSlot {
	valid := make([]TimeSlot, 0, len(raw))
	for _, w := range raw {
		if w.Valid() {
			valid = append(valid, w)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.SliceStable(valid, func(i, j int) bool { return valid[i].StartMin < valid[j].StartMin })

	merged := []TimeSlot{valid[0]}
	for _, w := range valid[1:] {
		last := &merged[len(merged)-1]
		if w.StartMin <= last.EndMin {
			if w.EndMin > last.EndMin {
				last.EndMin = w.EndMin
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}
