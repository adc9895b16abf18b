package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTimeToTimestamp(t *testing.T) {
	base := time.Date(2022, 1, 1, 18, 45, 12, 345, time.UTC)
	got, err := LocalTimeToTimestamp(base, "10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestLocalTimeToTimestampBadFormat(t *testing.T) {
	base := time.Date(2022, 1, 1, 18, 45, 0, 0, time.UTC)
	for _, classTime := range []string{"10,00", "10:00:00", "10", "aa:bb", ""} {
		_, err := LocalTimeToTimestamp(base, classTime)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, classTime)
	}
}

func TestTimestampToLocalTime(t *testing.T) {
	got, err := TimestampToLocalTime("2022-05-03T18:35:10")
	require.NoError(t, err)
	assert.Equal(t, "18:35", got)
}

func TestTimestampToLocalTimeBadFormat(t *testing.T) {
	for _, timestamp := range []string{"2022-05-03T18:35,10", "not a date", ""} {
		_, err := TimestampToLocalTime(timestamp)
		assert.ErrorIs(t, err, ErrInvalidTimestampFormat, timestamp)
	}
}

func TestParseTimestampWithOffset(t *testing.T) {
	got, err := ParseTimestamp("2022-05-03T18:35:10+02:00")
	require.NoError(t, err)
	assert.Equal(t, 18, got.Hour())
	assert.Equal(t, 35, got.Minute())
}
