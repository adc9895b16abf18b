package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the zone-less ISO-8601 form the Platinium API uses for
// class start times, e.g. "2022-05-03T18:35:10".
const TimestampLayout = "2006-01-02T15:04:05"

var (
	ErrInvalidTimeFormat      = errors.New("wrong class time format, should be HH:MM")
	ErrInvalidTimestampFormat = errors.New("invalid start-time timestamp")
)

// LocalTimeToTimestamp replaces the hour and minute on baseDate with the
// given "HH:MM" value, zeroing seconds and sub-seconds.
func LocalTimeToTimestamp(baseDate time.Time, classTime string) (time.Time, error) {
	parts := strings.Split(classTime, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, classTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, classTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, classTime)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(),
		hour, minute, 0, 0, baseDate.Location()), nil
}

// TimestampToLocalTime extracts the "HH:MM" local time from an API start
// timestamp.
func TimestampToLocalTime(timestamp string) (string, error) {
	t, err := ParseTimestamp(timestamp)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// ParseTimestamp parses an API start timestamp. Offsets are accepted since
// some endpoints attach one.
func ParseTimestamp(timestamp string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, timestamp)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestampFormat, timestamp)
	}
	return t, nil
}
