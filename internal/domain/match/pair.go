package match

import (
	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// Flags holds the seven comparison criteria for one declared/live pair.
// ReservableAndEnabled folds three raw checks: the reservable flag, a
// non-zero reservation-button code and the enabled flag.
type Flags struct {
	CorrectTime          bool
	CorrectWeekday       bool
	CorrectRemoteID      bool
	CorrectName          bool
	CorrectVenue         bool
	NotCanceled          bool
	ReservableAndEnabled bool
}

// Basic reports whether the pair satisfies the tolerant match rule: the day
// lines up and at least one identifying field agrees. This survives partial
// data corruption, e.g. a renamed class with the right remote id.
func (f Flags) Basic() bool {
	return f.CorrectWeekday && (f.CorrectTime || f.CorrectRemoteID || f.CorrectName)
}

// Exact reports whether every criterion agrees.
func (f Flags) Exact() bool {
	return f.CorrectTime && f.CorrectWeekday && f.CorrectRemoteID && f.CorrectName &&
		f.CorrectVenue && f.NotCanceled && f.ReservableAndEnabled
}

// Pair is one scored (declared row, live row) combination.
type Pair struct {
	OwnID    int
	OnlineID int
	Flags
}

// Score computes the comparison criteria for one pair of unified rows.
func Score(own schedule.Row, live booking.Row) Flags {
	return Flags{
		CorrectTime:          live.StartTime == own.StartTime,
		CorrectWeekday:       live.DayOfWeek == own.DayOfWeek,
		CorrectRemoteID:      live.ID == own.ClassID,
		CorrectName:          live.Name == own.Name,
		CorrectVenue:         live.LocationID == own.VenueID,
		NotCanceled:          !live.IsCanceled,
		ReservableAndEnabled: live.IsReservable && live.ReservationButton != 0 && live.IsEnabled,
	}
}

// FormPairs scores the full cross product of declared rows and live rows,
// in table enumeration order. No pruning happens before scoring; both
// tables are small enough that O(N*M) is fine.
func FormPairs(own *schedule.Table, live *booking.Table) []Pair {
	pairs := make([]Pair, 0, len(own.Rows)*len(live.Rows))
	for _, ownRow := range own.Rows {
		for _, liveRow := range live.Rows {
			pairs = append(pairs, Pair{
				OwnID:    ownRow.OwnID,
				OnlineID: liveRow.OnlineID,
				Flags:    Score(ownRow, liveRow),
			})
		}
	}
	return pairs
}
