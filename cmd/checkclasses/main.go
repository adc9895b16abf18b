// checkclasses compares the declared weekly schedule against the classes
// the club currently publishes and prints a match report.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/grelade/platinium-booker/internal/app"
	"github.com/grelade/platinium-booker/internal/infra/config"
	"github.com/grelade/platinium-booker/internal/infra/logger"
	"github.com/grelade/platinium-booker/internal/infra/platinium"
)

func main() {
	var (
		authFile  string
		classFile string
		weekAhead int
		verbose   bool
	)
	flag.StringVar(&authFile, "authfile", "auth.json", "path to the JSON auth file")
	flag.StringVar(&classFile, "classfile", "classes.json", "path to the JSON weekly schedule")
	flag.IntVar(&weekAhead, "week_ahead", 1, "how many weeks ahead to check")
	flag.BoolVar(&verbose, "verbose", false, "print the per-candidate comparison instead of the summary")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("could not load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment)

	creds, err := config.LoadCredentials(authFile)
	if err != nil {
		log.Fatalf("could not load credentials: %v", err)
	}
	classes, err := config.LoadWeeklySchedule(classFile)
	if err != nil {
		log.Fatalf("could not load weekly schedule: %v", err)
	}

	ctx := context.Background()
	client := platinium.NewClient(cfg.PlatiniumBaseURL, creds.Username, creds.Password, cfg.HTTPTimeout, log)
	if err := client.Login(ctx); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	compareSvc := app.NewCompareService(client, classes, log)
	result, err := compareSvc.Run(ctx, app.CompareOptions{WeekAhead: weekAhead, DaysAhead: cfg.DaysAhead})
	if err != nil {
		log.Fatalf("reconciliation pass failed: %v", err)
	}

	if verbose {
		err = result.WriteVerbose(os.Stdout)
	} else {
		err = result.WriteCondensed(os.Stdout)
	}
	if err != nil {
		log.Fatalf("could not render report: %v", err)
	}
}
