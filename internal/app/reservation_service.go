package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/notify"
	"github.com/grelade/platinium-booker/internal/domain/reservation"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// ReservationService books the declared classes for one weekday the moment
// the slot opens, retrying on failure and diagnosing why a reservation
// could not be made.
type ReservationService struct {
	client      booking.Reserver
	byWeekday   map[string][]schedule.Row
	attemptRepo reservation.Repository // nil disables the attempt log
	notifier    notify.Notifier
	log         *logrus.Logger

	maxTries   int
	retryDelay time.Duration
	weekAhead  int
}

func NewReservationService(
	client booking.Reserver,
	classes schedule.WeeklySchedule,
	attemptRepo reservation.Repository,
	notifier notify.Notifier,
	log *logrus.Logger,
	maxTries int,
	retryDelay time.Duration,
	weekAhead int,
) (*ReservationService, error) {
	table, err := schedule.BuildTable(classes)
	if err != nil {
		return nil, fmt.Errorf("building declared classes table: %w", err)
	}
	byWeekday := make(map[string][]schedule.Row)
	for _, row := range table.Rows {
		byWeekday[row.Weekday] = append(byWeekday[row.Weekday], row)
	}
	return &ReservationService{
		client:      client,
		byWeekday:   byWeekday,
		attemptRepo: attemptRepo,
		notifier:    notifier,
		log:         log,
		maxTries:    maxTries,
		retryDelay:  retryDelay,
		weekAhead:   weekAhead,
	}, nil
}

// ReserveDay books every class declared for now's weekday, targeting the
// same weekday weekAhead weeks out. Called once per transition into a new
// day.
func (s *ReservationService) ReserveDay(ctx context.Context, now time.Time) {
	// time.Weekday numbers Sunday as 0, same as the API's day-of-week.
	weekday, err := schedule.DayNumToWeekday(int(now.Weekday()))
	if err != nil {
		s.log.WithError(err).Error("could not resolve current weekday")
		return
	}
	classes := s.byWeekday[weekday]
	if len(classes) == 0 {
		s.log.WithField("weekday", weekday).Debug("no classes declared for today")
		return
	}
	s.log.WithFields(logrus.Fields{"weekday": weekday, "classes": len(classes)}).Info("booking day opened")
	for _, cls := range classes {
		s.reserveClass(ctx, now, cls)
	}
}

func (s *ReservationService) reserveClass(ctx context.Context, now time.Time, cls schedule.Row) {
	target, err := schedule.LocalTimeToTimestamp(now, cls.StartTime)
	if err != nil {
		s.log.WithError(err).WithField("class", cls.Name).Error("declared class has a bad time, skipping")
		return
	}
	target = target.AddDate(0, 0, s.weekAhead*7)
	date := target.Format(schedule.TimestampLayout)

	clsLog := s.log.WithFields(logrus.Fields{
		"class": cls.Name,
		"id":    cls.ClassID,
		"time":  cls.StartTime,
		"date":  date,
	})

	var flags reservation.FailureFlags
	success := false
	lastStatus := 0
	tries := 0
	for i := 0; i < s.maxTries; i++ {
		tries = i + 1
		out, err := s.client.AddReservation(ctx, cls.ClassID, date)
		if err != nil {
			flags.WrongClassID = true
			clsLog.WithError(err).Warnf("(%d try) reservation request rejected", tries)
		} else if out.Status == 1 {
			clsLog.Infof("(%d try) made reservation", tries)
			success = true
			break
		} else {
			lastStatus = out.Status
			clsLog.Warnf("(%d try) couldn't make a reservation; status = %d", tries, out.Status)
		}
		select {
		case <-ctx.Done():
			clsLog.Warn("booking aborted")
			return
		case <-time.After(s.retryDelay):
		}
	}

	if !success {
		flags = s.diagnoseFailure(ctx, now, cls, date, flags)
		reasons := flags.Reasons()
		clsLog.WithFields(logrus.Fields{"status": lastStatus, "reasons": reasons}).
			Errorf("failed reservation after %d attempts", s.maxTries)
		s.push(fmt.Sprintf("failed reservation %s %s after %d attempts. Reasons: %s",
			cls.Name, cls.StartTime, s.maxTries, strings.Join(reasons, "; ")))
		s.record(ctx, cls, target, false, tries, reasons)
		return
	}

	s.push(fmt.Sprintf("made reservation %s %s", cls.Name, cls.StartTime))
	s.record(ctx, cls, target, true, tries, nil)
}

// diagnoseFailure figures out why the retries ran out: fetch the venue's
// target day and match by remote class id. This is a deliberately cheap
// single-field lookup, not the full reconciliation engine.
func (s *ReservationService) diagnoseFailure(ctx context.Context, now time.Time, cls schedule.Row, date string, flags reservation.FailureFlags) reservation.FailureFlags {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, s.weekAhead*7)

	records, err := s.client.FetchClasses(ctx, cls.VenueID, dayStart, 1)
	if err != nil {
		s.log.WithError(err).Warn("failure diagnosis fetch failed")
		return flags
	}

	var matched []booking.Row
	for _, raw := range records {
		row, err := booking.DecodeRow(raw)
		if err != nil {
			continue
		}
		if row.ID == cls.ClassID {
			matched = append(matched, row)
		}
	}

	if len(matched) != 1 {
		flags.WrongClassID = true
		return flags
	}

	c := matched[0]
	flags.WrongClassName = cls.Name != c.Name
	flags.WrongVenueID = cls.VenueID != c.LocationID
	flags.WrongClassTime = date != c.StartTime
	flags.IsCancelled = c.IsCanceled
	flags.NotReservable = !c.IsReservable || c.ReservationButton == 0
	flags.IsDisabled = !c.IsEnabled
	return flags
}

func (s *ReservationService) push(text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(text); err != nil {
		s.log.WithError(err).Warn("could not push notification")
	}
}

func (s *ReservationService) record(ctx context.Context, cls schedule.Row, target time.Time, succeeded bool, tries int, reasons []string) {
	if s.attemptRepo == nil {
		return
	}
	attempt := &reservation.Attempt{
		ClassID:    cls.ClassID,
		ClassName:  cls.Name,
		VenueID:    cls.VenueID,
		ClassTime:  cls.StartTime,
		TargetDate: target,
		Succeeded:  succeeded,
		Tries:      tries,
		Reasons:    reasons,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		s.log.WithError(err).Error("could not record reservation attempt")
	}
}
