package booking

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// HoursWorked returns the whole-hour span between two "HH:MM" times of day.
// Partial hours are not credited and malformed or inverted input yields 0.
func HoursWorked(startTime, endTime string) int {
	start, ok := minutesSinceMidnight(startTime)
	if !ok {
		return 0
	}
	end, ok := minutesSinceMidnight(endTime)
	if !ok {
		return 0
	}

	hours := (end - start) / 60
	if hours < 0 {
		return 0
	}
	return hours
}

// ShiftEarnings returns the amount owed for the shift's full scheduled
// duration: whole hours times the hourly rate.
func ShiftEarnings(shift Shift) float64 {
	hours := HoursWorked(shift.StartTime, shift.EndTime)
	amount := decimal.NewFromFloat(shift.RatePerHour).Mul(decimal.NewFromInt(int64(hours)))
	value, _ := amount.Float64()
	return value
}

func minutesSinceMidnight(value string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
