// Package match holds the schedule reconciliation engine: it aligns the
// declared weekly schedule with the live class feed, scores every
// declared/live row pair and classifies the matches.
package match

import (
	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// UnifyTables reshapes both tables into directly comparable form: declared
// weekday names become the API's day-of-week integers, and live absolute
// start timestamps become "HH:MM" local times. No rows are filtered.
//
// The live StartTime column is rewritten in place, so the caller must have
// captured the absolute timestamps (booking.Table.StartTimes) beforehand;
// they are needed later for sorting and display.
func UnifyTables(own *schedule.Table, live *booking.Table) error {
	for i := range own.Rows {
		dayNum, err := schedule.WeekdayToDayNum(own.Rows[i].Weekday)
		if err != nil {
			return err
		}
		own.Rows[i].DayOfWeek = dayNum
	}
	for i := range live.Rows {
		localTime, err := schedule.TimestampToLocalTime(live.Rows[i].StartTime)
		if err != nil {
			return err
		}
		live.Rows[i].StartTime = localTime
	}
	return nil
}
