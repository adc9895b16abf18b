package match

import (
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// Matches splits the scored pairs into the basic and exact match sets.
// Pair order follows the candidate enumeration order.
type Matches struct {
	Basic []Pair
	Exact []Pair
}

// Extract classifies every scored pair.
func Extract(pairs []Pair) Matches {
	var m Matches
	for _, p := range pairs {
		if p.Basic() {
			m.Basic = append(m.Basic, p)
		}
		if p.Exact() {
			m.Exact = append(m.Exact, p)
		}
	}
	return m
}

// Summary is the per-declared-class outcome of one reconciliation run, in
// a form programmatic consumers can inspect without parsing rendered text.
type Summary struct {
	Own schedule.Row
	// Found is true iff at least one exact match exists.
	Found bool
	// ExactOnlineIDs lists the live rows matching on every criterion. At
	// most one should logically exist; zero and several are tolerated.
	ExactOnlineIDs []int
	// BasicOnlineIDs lists the live rows satisfying the basic rule.
	BasicOnlineIDs []int
	// StartTime is the matched absolute timestamp when an exact match
	// exists, the declared "HH:MM" otherwise.
	StartTime string
}

// Summarize folds the match sets into one record per declared row, in
// declared-table order. absTimes is the live table's absolute StartTime
// column keyed by OnlineID.
func Summarize(own *schedule.Table, m Matches, absTimes []string) []Summary {
	summaries := make([]Summary, 0, len(own.Rows))
	for _, row := range own.Rows {
		s := Summary{Own: row, StartTime: row.StartTime}
		for _, p := range m.Basic {
			if p.OwnID == row.OwnID {
				s.BasicOnlineIDs = append(s.BasicOnlineIDs, p.OnlineID)
			}
		}
		for _, p := range m.Exact {
			if p.OwnID == row.OwnID {
				s.ExactOnlineIDs = append(s.ExactOnlineIDs, p.OnlineID)
				s.Found = true
				s.StartTime = absTimes[p.OnlineID]
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
