package scheduler

import (
	"bytes"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/grelade/platinium-booker/internal/app"
	"github.com/grelade/platinium-booker/internal/domain/notify"
)

// Session is the slice of the API client the re-login job needs.
type Session interface {
	Login(ctx context.Context) error
	SessionID() string
}

// BookingScheduler drives the outer loop: a booking job at the transition
// into each new day, a session refresh under the API's session lifetime,
// and a periodic reconciliation pass as a sanity check.
type BookingScheduler struct {
	cronEngine     *cron.Cron
	reservationSvc *app.ReservationService
	compareSvc     *app.CompareService
	session        Session
	notifier       notify.Notifier
	log            *logrus.Logger

	cronSpecReserve   string
	cronSpecRelogin   string
	cronSpecReconcile string
	compareOpts       app.CompareOptions
}

func NewBookingScheduler(
	reservationSvc *app.ReservationService,
	compareSvc *app.CompareService,
	session Session,
	notifier notify.Notifier,
	log *logrus.Logger,
	cronSpecReserve string,
	cronSpecRelogin string,
	cronSpecReconcile string,
	compareOpts app.CompareOptions,
) *BookingScheduler {
	return &BookingScheduler{
		cronEngine:        cron.New(cron.WithLocation(time.Local)),
		reservationSvc:    reservationSvc,
		compareSvc:        compareSvc,
		session:           session,
		notifier:          notifier,
		log:               log,
		cronSpecReserve:   cronSpecReserve,
		cronSpecRelogin:   cronSpecRelogin,
		cronSpecReconcile: cronSpecReconcile,
		compareOpts:       compareOpts,
	}
}

func (s *BookingScheduler) Start() error {
	// Booking job: fires once per transition into a new target day and
	// books that weekday's declared classes one window ahead.
	_, err := s.cronEngine.AddFunc(s.cronSpecReserve, func() {
		s.log.Info("cron: booking day transition")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		s.reservationSvc.ReserveDay(ctx, time.Now())
	})
	if err != nil {
		return err
	}

	// Session refresh; the API session expires after about an hour.
	_, err = s.cronEngine.AddFunc(s.cronSpecRelogin, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.session.Login(ctx); err != nil {
			s.log.WithError(err).Error("cron: re-login failed")
			return
		}
		s.log.WithField("session_id", s.session.SessionID()).Info("cron: session refreshed")
	})
	if err != nil {
		return err
	}

	// Periodic reconciliation: compare the declared schedule against the
	// live feed and push the condensed report.
	_, err = s.cronEngine.AddFunc(s.cronSpecReconcile, func() {
		s.log.Info("cron: reconciliation pass")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		result, err := s.compareSvc.Run(ctx, s.compareOpts)
		if err != nil {
			s.log.WithError(err).Error("cron: reconciliation pass failed")
			return
		}
		var report bytes.Buffer
		if err := result.WriteCondensed(&report); err != nil {
			s.log.WithError(err).Error("cron: could not render reconciliation report")
			return
		}
		if s.notifier != nil {
			if err := s.notifier.Notify(report.String()); err != nil {
				s.log.WithError(err).Warn("cron: could not push reconciliation report")
			}
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.log.Info("booking scheduler started")
	return nil
}

func (s *BookingScheduler) Stop() {
	s.log.Info("stopping booking scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("booking scheduler gracefully stopped")
}
