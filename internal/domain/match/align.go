package match

import (
	"errors"
	"fmt"
	"sort"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

var ErrTimestampCountMismatch = errors.New("absolute start times incompatible with live classes table")

// AlignTables orders both unified tables consistently so later reporting
// groups day by day. absTimes is the live StartTime column captured before
// unification, keyed by OnlineID.
//
// Live rows are sorted by ascending absolute timestamp. Declared rows are
// restricted to the days actually present live and sorted by day then
// time-of-day, where days rank by their order of first appearance in the
// sorted live table, not by calendar order. Venues reporting partial weeks
// depend on that ranking; it is not a calendar sort.
func AlignTables(own *schedule.Table, live *booking.Table, absTimes []string) error {
	if len(absTimes) != len(live.Rows) {
		return fmt.Errorf("%w: %d start times for %d rows", ErrTimestampCountMismatch, len(absTimes), len(live.Rows))
	}

	// Zone-less ISO-8601 timestamps in one format sort chronologically as
	// plain strings.
	sort.SliceStable(live.Rows, func(i, j int) bool {
		return absTimes[live.Rows[i].OnlineID] < absTimes[live.Rows[j].OnlineID]
	})

	dayRank := make(map[int]int)
	for _, row := range live.Rows {
		if _, ok := dayRank[row.DayOfWeek]; !ok {
			dayRank[row.DayOfWeek] = len(dayRank)
		}
	}

	kept := own.Rows[:0]
	for _, row := range own.Rows {
		if _, ok := dayRank[row.DayOfWeek]; ok {
			kept = append(kept, row)
		}
	}
	own.Rows = kept

	sort.SliceStable(own.Rows, func(i, j int) bool {
		ri, rj := dayRank[own.Rows[i].DayOfWeek], dayRank[own.Rows[j].DayOfWeek]
		if ri != rj {
			return ri < rj
		}
		// zero-padded "HH:MM" strings sort lexicographically
		return own.Rows[i].StartTime < own.Rows[j].StartTime
	})

	return nil
}
