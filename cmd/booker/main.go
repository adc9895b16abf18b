package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grelade/platinium-booker/internal/app"
	"github.com/grelade/platinium-booker/internal/domain/notify"
	"github.com/grelade/platinium-booker/internal/domain/reservation"
	"github.com/grelade/platinium-booker/internal/infra/config"
	idb "github.com/grelade/platinium-booker/internal/infra/database"
	"github.com/grelade/platinium-booker/internal/infra/logger"
	"github.com/grelade/platinium-booker/internal/infra/platinium"
	"github.com/grelade/platinium-booker/internal/infra/scheduler"
	"github.com/grelade/platinium-booker/internal/infra/telegram"
)

func main() {
	fmt.Println("Platinium booker starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	log.Infof("configuration loaded; log level %s, environment %s", cfg.LogLevel, cfg.Environment)

	creds, err := config.LoadCredentials(cfg.AuthFile)
	if err != nil {
		log.Fatalf("could not load credentials: %v", err)
	}
	classes, err := config.LoadWeeklySchedule(cfg.ClassesFile)
	if err != nil {
		log.Fatalf("could not load weekly schedule: %v", err)
	}

	client := platinium.NewClient(cfg.PlatiniumBaseURL, creds.Username, creds.Password, cfg.HTTPTimeout, log)
	if err := client.Login(context.Background()); err != nil {
		log.Fatalf("initial login failed: %v", err)
	}
	log.Infof("connected to Platinium (SessionId=%s)", client.SessionID())

	// Attempt log is optional; without a database the outcomes only go to
	// the log and the notifier.
	var attemptRepo reservation.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("could not connect to database: %v", err)
		}
		defer db.Close()
		attemptRepo = idb.NewPostgresAttemptRepository(db)
		log.Info("reservation attempt log enabled")
	}

	var notifier notify.Notifier = &logger.Notifier{Log: log}
	if cfg.TelegramToken != "" {
		tgNotifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("could not create Telegram notifier: %v", err)
		}
		notifier = tgNotifier
		log.Info("Telegram notifications enabled")
	}

	reservationSvc, err := app.NewReservationService(
		client, classes, attemptRepo, notifier, log,
		cfg.MaxTries, cfg.RetryDelay, cfg.WeekAhead,
	)
	if err != nil {
		log.Fatalf("could not initialize reservation service: %v", err)
	}
	compareSvc := app.NewCompareService(client, classes, log)

	bookingScheduler := scheduler.NewBookingScheduler(
		reservationSvc,
		compareSvc,
		client,
		notifier,
		log,
		cfg.CronSpecReserve,
		cfg.CronSpecRelogin,
		cfg.CronSpecReconcile,
		app.CompareOptions{WeekAhead: cfg.WeekAhead, DaysAhead: cfg.DaysAhead},
	)
	if err := bookingScheduler.Start(); err != nil {
		log.Fatalf("could not start booking scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	bookingScheduler.Stop()
	log.Info("shut down gracefully")
}
