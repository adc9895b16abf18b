package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/match"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// CompareService runs the schedule reconciliation pipeline: declared
// weekly schedule and live class feed in, classified matches out. The
// service is stateless across runs; every Run fetches fresh data.
type CompareService struct {
	client  booking.Client
	classes schedule.WeeklySchedule
	log     *logrus.Logger
}

func NewCompareService(client booking.Client, classes schedule.WeeklySchedule, log *logrus.Logger) *CompareService {
	return &CompareService{
		client:  client,
		classes: classes,
		log:     log,
	}
}

// CompareOptions control the live-feed window of one reconciliation run.
type CompareOptions struct {
	// StartDate anchors the window; zero means now.
	StartDate time.Time
	// WeekAhead shifts the window forward by whole weeks, matching the
	// booking horizon of the reservation loop.
	WeekAhead int
	// DaysAhead is the window length in days.
	DaysAhead int
}

// CompareResult carries everything one reconciliation pass produced. Report
// rendering is separate so consumers can inspect Summaries directly.
type CompareResult struct {
	Own       *schedule.Table
	Live      *booking.Table
	AbsTimes  []string
	Pairs     []match.Pair
	Matches   match.Matches
	Summaries []match.Summary
}

// Run executes one full reconciliation pass.
func (s *CompareService) Run(ctx context.Context, opts CompareOptions) (*CompareResult, error) {
	start := opts.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	start = start.AddDate(0, 0, opts.WeekAhead*7)
	daysAhead := opts.DaysAhead
	if daysAhead == 0 {
		daysAhead = 7
	}

	own, err := schedule.BuildTable(s.classes)
	if err != nil {
		return nil, fmt.Errorf("building declared classes table: %w", err)
	}
	venueIDs, err := schedule.ExtractVenueIDs(own)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"declared_classes": len(own.Rows),
		"venues":           venueIDs,
		"start":            start.Format("2006-01-02"),
		"days_ahead":       daysAhead,
	}).Info("declared schedule loaded, fetching live classes")

	live, err := booking.BuildTable(ctx, s.client, venueIDs, start, daysAhead, booking.RequiredColumns)
	if err != nil {
		return nil, fmt.Errorf("building live classes table: %w", err)
	}
	s.log.WithField("live_classes", len(live.Rows)).Debug("live classes fetched")

	// Capture the absolute start times before unification rewrites them.
	absTimes := live.StartTimes()

	if err := match.UnifyTables(own, live); err != nil {
		return nil, err
	}
	if err := match.AlignTables(own, live, absTimes); err != nil {
		return nil, err
	}

	pairs := match.FormPairs(own, live)
	matches := match.Extract(pairs)
	summaries := match.Summarize(own, matches, absTimes)

	s.log.WithFields(logrus.Fields{
		"candidate_pairs": len(pairs),
		"basic_matches":   len(matches.Basic),
		"exact_matches":   len(matches.Exact),
	}).Info("reconciliation pass complete")

	return &CompareResult{
		Own:       own,
		Live:      live,
		AbsTimes:  absTimes,
		Pairs:     pairs,
		Matches:   matches,
		Summaries: summaries,
	}, nil
}

// WriteCondensed renders the one-line-per-class report.
func (r *CompareResult) WriteCondensed(w io.Writer) error {
	return match.WriteCondensed(w, r.Summaries)
}

// WriteVerbose renders the side-by-side candidate report.
func (r *CompareResult) WriteVerbose(w io.Writer) error {
	return match.WriteVerbose(w, r.Summaries, r.Live, r.AbsTimes)
}
