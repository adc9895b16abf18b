package schedule

import (
	"errors"
	"fmt"
)

// WeekdayNames lists the supported weekday labels in the order used by the
// Platinium API: index 0 is Sunday, index 6 is Saturday. This deliberately
// differs from the ISO convention.
var WeekdayNames = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

var (
	ErrInvalidWeekday   = errors.New("unknown weekday")
	ErrInvalidDayNumber = errors.New("unknown day-of-week number")
)

// WeekdayToDayNum converts a weekday name to the API's day-of-week integer.
func WeekdayToDayNum(weekday string) (int, error) {
	for i, name := range WeekdayNames {
		if name == weekday {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, weekday)
}

// DayNumToWeekday converts the API's day-of-week integer back to its name.
func DayNumToWeekday(dayNum int) (string, error) {
	if dayNum < 0 || dayNum >= len(WeekdayNames) {
		return "", fmt.Errorf("%w: %d", ErrInvalidDayNumber, dayNum)
	}
	return WeekdayNames[dayNum], nil
}
