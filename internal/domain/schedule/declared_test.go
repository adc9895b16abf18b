package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchedule(t *testing.T, raw string) WeeklySchedule {
	t.Helper()
	var classes WeeklySchedule
	require.NoError(t, json.Unmarshal([]byte(raw), &classes))
	return classes
}

const twoClassWeek = `{
	"MON": [{"venue_id": 3, "name": "BRZUCHOMANIA", "remote_class_id": 6916, "time_of_day": "18:00"}],
	"TUE": [{"venue_id": 4, "name": "KORT 2 - Rezerwacja Squash", "remote_class_id": 510, "time_of_day": "18:30"}],
	"WED": []
}`

func TestBuildTable(t *testing.T) {
	table, err := BuildTable(mustSchedule(t, twoClassWeek))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	mon := table.Rows[0]
	assert.Equal(t, 0, mon.OwnID)
	assert.Equal(t, "MON", mon.Weekday)
	assert.Equal(t, int64(3), mon.VenueID)
	assert.Equal(t, "BRZUCHOMANIA", mon.Name)
	assert.Equal(t, int64(6916), mon.ClassID)
	assert.Equal(t, "18:00", mon.StartTime)
	assert.Equal(t, -1, mon.DayOfWeek)

	tue := table.Rows[1]
	assert.Equal(t, 1, tue.OwnID)
	assert.Equal(t, "TUE", tue.Weekday)
	assert.Equal(t, int64(510), tue.ClassID)
}

func TestBuildTableAllWeekdaysDeclared(t *testing.T) {
	raw := `{
		"SUN": [], "MON": [{"venue_id": 3, "name": "TABATA", "remote_class_id": 1599, "time_of_day": "19:00"}],
		"TUE": [], "WED": [], "THU": [], "FRI": [], "SAT": []
	}`
	table, err := BuildTable(mustSchedule(t, raw))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestBuildTableMissingField(t *testing.T) {
	raw := `{
		"MON": [{"venue_id": 3, "name": "BRZUCHOMANIA", "remote_class_id": 6916, "time_of_day": "18:00"}],
		"TUE": [{"venue_id": 4, "name": "SQUASH", "time_of_day": "18:30"}],
		"WED": []
	}`
	_, err := BuildTable(mustSchedule(t, raw))
	assert.ErrorIs(t, err, ErrInvalidScheduleFormat)
}

func TestBuildTableWrongFieldNames(t *testing.T) {
	raw := `{
		"MON": [{"venueId": 3, "className": "BRZUCHOMANIA", "classId": 6916, "classTime": "18:00"}]
	}`
	_, err := BuildTable(mustSchedule(t, raw))
	assert.ErrorIs(t, err, ErrInvalidScheduleFormat)
}

func TestBuildTableNonIntegerID(t *testing.T) {
	raw := `{
		"MON": [{"venue_id": "not a number", "name": "BRZUCHOMANIA", "remote_class_id": 6916, "time_of_day": "18:00"}]
	}`
	_, err := BuildTable(mustSchedule(t, raw))
	assert.ErrorIs(t, err, ErrInvalidScheduleFormat)
}

func TestBuildTableNumericStringIDs(t *testing.T) {
	raw := `{
		"MON": [{"venue_id": "3", "name": "BRZUCHOMANIA", "remote_class_id": "6916", "time_of_day": "18:00"}]
	}`
	table, err := BuildTable(mustSchedule(t, raw))
	require.NoError(t, err)
	assert.Equal(t, int64(3), table.Rows[0].VenueID)
	assert.Equal(t, int64(6916), table.Rows[0].ClassID)
}

func TestBuildTableUnknownWeekdayKey(t *testing.T) {
	raw := `{
		"FUNDAY": [{"venue_id": 3, "name": "TABATA", "remote_class_id": 1599, "time_of_day": "19:00"}]
	}`
	_, err := BuildTable(mustSchedule(t, raw))
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestExtractVenueIDs(t *testing.T) {
	raw := `{
		"MON": [
			{"venue_id": 3, "name": "BODY SHAPE", "remote_class_id": 1603, "time_of_day": "18:00"},
			{"venue_id": 3, "name": "TABATA", "remote_class_id": 1599, "time_of_day": "19:00"}
		],
		"TUE": [{"venue_id": 4, "name": "SQUASH", "remote_class_id": 510, "time_of_day": "18:30"}]
	}`
	table, err := BuildTable(mustSchedule(t, raw))
	require.NoError(t, err)

	ids, err := ExtractVenueIDs(table)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids)
}

func TestExtractVenueIDsNilTable(t *testing.T) {
	_, err := ExtractVenueIDs(nil)
	assert.ErrorIs(t, err, ErrMissingVenueColumn)
}
