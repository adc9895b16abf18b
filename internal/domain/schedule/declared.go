package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Field names a declared class record must carry, exactly as they appear in
// the schedule file.
const (
	FieldVenueID       = "venue_id"
	FieldName          = "name"
	FieldRemoteClassID = "remote_class_id"
	FieldTimeOfDay     = "time_of_day"
)

// RequiredClassFields is the full set of mandatory declared-class fields.
var RequiredClassFields = []string{FieldVenueID, FieldName, FieldRemoteClassID, FieldTimeOfDay}

var (
	ErrInvalidScheduleFormat = errors.New("wrong classes format")
	ErrMissingVenueColumn    = errors.New("classes table has no venue id column")
)

// RawClass is one not-yet-validated declared class record, as decoded from
// the schedule file.
type RawClass map[string]json.RawMessage

// WeeklySchedule maps a weekday name to the classes declared for that day.
type WeeklySchedule map[string][]RawClass

// Row is one declared class, flattened into the comparable form shared with
// the live schedule. StartTime holds the declared "HH:MM" value; DayOfWeek
// is -1 until Unify resolves the weekday name into the API's day number.
type Row struct {
	OwnID     int
	Weekday   string
	DayOfWeek int
	VenueID   int64
	Name      string
	ClassID   int64
	StartTime string
}

// Table is the row-indexed declared schedule. Row ids are positional and
// stable only within one reconciliation run.
type Table struct {
	Rows []Row
}

// BuildTable validates the weekly schedule and flattens it into a
// row-per-class table. Every record must carry all four declared fields;
// the first malformed record aborts the whole build. Days are visited in
// the fixed SUN..SAT order and per-day record order is preserved.
func BuildTable(classes WeeklySchedule) (*Table, error) {
	seen := 0
	table := &Table{}
	for _, weekday := range WeekdayNames {
		dayClasses, ok := classes[weekday]
		if !ok {
			continue
		}
		seen++
		for _, raw := range dayClasses {
			row, err := buildRow(weekday, raw)
			if err != nil {
				return nil, err
			}
			row.OwnID = len(table.Rows)
			table.Rows = append(table.Rows, row)
		}
	}
	if seen != len(classes) {
		for weekday := range classes {
			if _, err := WeekdayToDayNum(weekday); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

func buildRow(weekday string, raw RawClass) (Row, error) {
	for _, field := range RequiredClassFields {
		if _, ok := raw[field]; !ok {
			return Row{}, fmt.Errorf("%w: %s class missing %q", ErrInvalidScheduleFormat, weekday, field)
		}
	}

	venueID, err := intField(raw, FieldVenueID)
	if err != nil {
		return Row{}, err
	}
	classID, err := intField(raw, FieldRemoteClassID)
	if err != nil {
		return Row{}, err
	}
	name, err := stringField(raw, FieldName)
	if err != nil {
		return Row{}, err
	}
	timeOfDay, err := stringField(raw, FieldTimeOfDay)
	if err != nil {
		return Row{}, err
	}

	return Row{
		Weekday:   weekday,
		DayOfWeek: -1,
		VenueID:   venueID,
		Name:      name,
		ClassID:   classID,
		StartTime: timeOfDay,
	}, nil
}

func intField(raw RawClass, field string) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw[field], &n); err == nil {
		return n, nil
	}
	// numeric strings are accepted, anything else is a format error
	var s string
	if err := json.Unmarshal(raw[field], &s); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: field %q is not an integer", ErrInvalidScheduleFormat, field)
}

func stringField(raw RawClass, field string) (string, error) {
	var s string
	if err := json.Unmarshal(raw[field], &s); err != nil {
		return "", fmt.Errorf("%w: field %q is not a string", ErrInvalidScheduleFormat, field)
	}
	return s, nil
}

// ExtractVenueIDs returns the distinct venue ids present in the table, in
// first-seen order. An empty table still has the venue column by
// construction, so only a nil table is a structural violation.
func ExtractVenueIDs(table *Table) ([]int64, error) {
	if table == nil {
		return nil, ErrMissingVenueColumn
	}
	var ids []int64
	seen := make(map[int64]bool)
	for _, row := range table.Rows {
		if seen[row.VenueID] {
			continue
		}
		seen[row.VenueID] = true
		ids = append(ids, row.VenueID)
	}
	return ids, nil
}
