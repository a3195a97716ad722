package booking

import "testing"

func TestHoursWorked(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"full day", "09:00", "17:00", 8},
		{"half hour floors to zero", "09:00", "09:30", 0},
		{"partial hour floored", "09:00", "12:45", 3},
		{"same time", "09:00", "09:00", 0},
		{"inverted clamps to zero", "17:00", "09:00", 0},
		{"midnight to midnight-ish", "00:00", "23:59", 23},
		{"malformed start", "nine", "17:00", 0},
		{"malformed end", "09:00", "", 0},
		{"out of range hour", "25:00", "26:00", 0},
		{"out of range minute", "09:61", "17:00", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HoursWorked(tc.start, tc.end); got != tc.want {
				t.Fatalf("HoursWorked(%q, %q) = %d, expected %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestShiftEarnings(t *testing.T) {
	shift := Shift{StartTime: "09:00", EndTime: "17:00", RatePerHour: 20000}
	if got := ShiftEarnings(shift); got != 160000 {
		t.Fatalf("expected 160000, got %v", got)
	}

	short := Shift{StartTime: "09:00", EndTime: "09:30", RatePerHour: 20000}
	if got := ShiftEarnings(short); got != 0 {
		t.Fatalf("expected 0 for sub-hour shift, got %v", got)
	}
}

func TestShiftEarningsFractionalRate(t *testing.T) {
	shift := Shift{StartTime: "08:00", EndTime: "11:00", RatePerHour: 12.5}
	if got := ShiftEarnings(shift); got != 37.5 {
		t.Fatalf("expected 37.5, got %v", got)
	}
}
