package contractor

import (
	"testing"
	"time"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func slot(start, end string) TimeSlot {
	s, err := ParseClock(start)
	if err != nil {
		panic(err)
	}
	e, err := ParseClock(end)
	if err != nil {
		panic(err)
	}
	return TimeSlot{StartMin: s, EndMin: e}
}

func withSchedule(entries ...ScheduleEntry) Contractor {
	return Contractor{ID: "c1", Active: true, WeeklySchedule: entries}
}

func TestWindowsOn_EmptyWeekday(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Tuesday, Slots: []TimeSlot{slot("09:00", "17:00")}})
	if got := WindowsOn(c, monday); len(got) != 0 {
		t.Fatalf("expected no windows on Monday, got %v", got)
	}
}

func TestWindowsOn_MergesOverlappingAndUnsorted(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{
		slot("13:00", "15:00"),
		slot("09:00", "11:00"),
		slot("10:30", "12:00"),
	}})
	got := WindowsOn(c, monday)
	want := []TimeSlot{slot("09:00", "12:00"), slot("13:00", "15:00")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWindowsOn_MergesAdjacent(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{
		slot("09:00", "12:00"),
		slot("12:00", "14:00"),
	}})
	got := WindowsOn(c, monday)
	if len(got) != 1 || got[0] != slot("09:00", "14:00") {
		t.Fatalf("expected one merged window 09:00-14:00, got %v", got)
	}
}

func TestWindowsOn_DropsMalformedEntries(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{
		{StartMin: 600, EndMin: 600},  // zero-length
		{StartMin: 720, EndMin: 600},  // inverted
		slot("14:00", "16:00"),
	}})
	got := WindowsOn(c, monday)
	if len(got) != 1 || got[0] != slot("14:00", "16:00") {
		t.Fatalf("expected only the well-formed window, got %v", got)
	}
}

func TestQualifyingSlots_ExactFit(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{slot("09:00", "11:00")}})
	got := QualifyingSlots(c, monday, 2)
	if len(got) != 1 {
		t.Fatalf("a window exactly equal to the duration must qualify, got %v", got)
	}
}

func TestQualifyingSlots_TooShortWindow(t *testing.T) {
	// 3-hour job against a 2-hour window: no feasible slot.
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{slot("09:00", "11:00")}})
	if got := QualifyingSlots(c, monday, 3); len(got) != 0 {
		t.Fatalf("expected no qualifying slots, got %v", got)
	}
	if best := BestSlot(c, monday, 3); best != nil {
		t.Fatalf("expected nil best slot, got %v", best)
	}
}

func TestQualifyingSlots_Ordering(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{
		slot("13:00", "18:00"),
		slot("08:00", "10:00"),
	}})
	got := QualifyingSlots(c, monday, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 qualifying slots, got %v", got)
	}
	if got[0] != slot("08:00", "10:00") {
		t.Errorf("earliest start must come first, got %v", got[0])
	}
}

func TestBestSlot_PrefersSoonest(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{
		slot("14:00", "20:00"),
		slot("09:00", "11:00"),
	}})
	best := BestSlot(c, monday, 2)
	if best == nil || *best != slot("09:00", "11:00") {
		t.Fatalf("expected soonest qualifying slot, got %v", best)
	}
}

func TestQualifyingSlots_NonPositiveDuration(t *testing.T) {
	c := withSchedule(ScheduleEntry{Weekday: time.Monday, Slots: []TimeSlot{slot("09:00", "17:00")}})
	if got := QualifyingSlots(c, monday, 0); got != nil {
		t.Fatalf("expected nil for zero duration, got %v", got)
	}
	if got := QualifyingSlots(c, monday, -1); got != nil {
		t.Fatalf("expected nil for negative duration, got %v", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		wantMin int
		wantErr bool
	}{
		{in: "09:00", wantMin: 540},
		{in: "00:00", wantMin: 0},
		{in: "23:59", wantMin: 1439},
		{in: "24:00", wantMin: 1440},
		{in: "25:00", wantErr: true},
		{in: "12:61", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.wantMin {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.wantMin)
		}
	}
}
