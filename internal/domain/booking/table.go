package booking

import (
	"context"
	"fmt"
	"time"
)

// Table is the row-indexed live schedule for one reconciliation run.
type Table struct {
	Rows []Row
}

// StartTimes returns a copy of the current StartTime column keyed by
// OnlineID. Callers must capture it before the schema unifier rewrites the
// column to local "HH:MM" form; the absolute values feed the chronological
// sort and the reports.
func (t *Table) StartTimes() []string {
	times := make([]string, len(t.Rows))
	for _, row := range t.Rows {
		times[row.OnlineID] = row.StartTime
	}
	return times
}

// BuildTable fetches the class listing for every venue id and concatenates
// the results into one table, in venue-list order then per-venue return
// order. Every column in cols must be present in the fetched data; an
// absent column is a contract breach, not a silent drop.
func BuildTable(ctx context.Context, client Client, venueIDs []int64, startDate time.Time, daysForward int, cols []string) (*Table, error) {
	var records []RawRecord
	for _, venueID := range venueIDs {
		out, err := client.FetchClasses(ctx, venueID, startDate, daysForward)
		if err != nil {
			return nil, fmt.Errorf("fetching classes for venue %d: %w", venueID, err)
		}
		records = append(records, out...)
	}

	if err := checkColumns(records, cols); err != nil {
		return nil, err
	}

	table := &Table{Rows: make([]Row, 0, len(records))}
	for i, raw := range records {
		row, err := DecodeRow(raw)
		if err != nil {
			return nil, err
		}
		row.OnlineID = i
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// checkColumns verifies every required column occurs somewhere in the
// fetched data. Per-record gaps are tolerated the way a column-oriented
// frame would fill them; a column absent from all records is not.
func checkColumns(records []RawRecord, cols []string) error {
	present := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			present[k] = true
		}
	}
	for _, col := range cols {
		if !present[col] {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
	}
	return nil
}
