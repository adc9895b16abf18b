package match

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

const headingRule = "--------------------------------------------------------------------------------"

// WriteCondensed renders one line per declared class: the declared fields
// plus a yes/no found-on-remote flag. Day-of-week integers render back to
// weekday names, and an exact match overwrites the displayed time with the
// live absolute timestamp.
func WriteCondensed(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "own_id\tweekday\tLocationId\tName\tId\tStartTime\tplatinium match")
	for _, s := range summaries {
		weekday, err := schedule.DayNumToWeekday(s.Own.DayOfWeek)
		if err != nil {
			return err
		}
		found := "NO"
		if s.Found {
			found = "YES"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\t%s\n",
			s.Own.OwnID, weekday, s.Own.VenueID, s.Own.Name, s.Own.ClassID, s.StartTime, found)
	}
	return tw.Flush()
}

// WriteVerbose renders, for every declared class with at least one basic
// match, a side-by-side comparison under a date heading: the declared row,
// a separator row, then the candidate live rows. When an exact match
// exists only that live row is shown.
func WriteVerbose(w io.Writer, summaries []Summary, live *booking.Table, absTimes []string) error {
	byOnlineID := make(map[int]booking.Row, len(live.Rows))
	for _, row := range live.Rows {
		byOnlineID[row.OnlineID] = row
	}

	for _, s := range summaries {
		if len(s.BasicOnlineIDs) == 0 {
			continue
		}
		onlineIDs := s.BasicOnlineIDs
		if len(s.ExactOnlineIDs) > 0 {
			onlineIDs = s.ExactOnlineIDs[:1]
		}

		heading, err := schedule.ParseTimestamp(absTimes[onlineIDs[0]])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, headingRule)
		fmt.Fprintln(w, heading.Format("Monday 02. January 2006"))
		fmt.Fprintln(w, headingRule)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "\tStartTime\tName\tId\tLocationId\tDayOfWeek\tIsReserved\tIsReservable\tIsEnabled\tIsCanceled\tReservationButton")
		fmt.Fprintf(tw, "own %d\t%s\t%s\t%d\t%d\t%d\t\t\t\t\t\n",
			s.Own.OwnID, s.Own.StartTime, s.Own.Name, s.Own.ClassID, s.Own.VenueID, s.Own.DayOfWeek)
		fmt.Fprintf(tw, "\t%s\n", strings.Repeat("---\t", 10))
		for _, onlineID := range onlineIDs {
			row, ok := byOnlineID[onlineID]
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "online %d\t%s\t%s\t%d\t%d\t%d\t%t\t%t\t%t\t%t\t%d\n",
				row.OnlineID, row.StartTime, row.Name, row.ID, row.LocationID, row.DayOfWeek,
				row.IsReserved, row.IsReservable, row.IsEnabled, row.IsCanceled, row.ReservationButton)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
