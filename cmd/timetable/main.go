// timetable renders the weekly class grid of every club venue into a
// standalone HTML file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/grelade/platinium-booker/internal/infra/config"
	"github.com/grelade/platinium-booker/internal/infra/htmlreport"
	"github.com/grelade/platinium-booker/internal/infra/logger"
	"github.com/grelade/platinium-booker/internal/infra/platinium"
)

func main() {
	var (
		authFile  string
		outFile   string
		overwrite bool
	)
	flag.StringVar(&authFile, "authfile", "auth.json", "path to the JSON auth file")
	flag.StringVar(&outFile, "out", "reservations_tool.html", "output HTML file")
	flag.BoolVar(&overwrite, "overwrite", false, "recreate the HTML file even if it exists")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("could not load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment)

	if _, err := os.Stat(outFile); err == nil && !overwrite {
		log.Infof("%s already exists, pass -overwrite to recreate it", outFile)
		fmt.Println(outFile)
		return
	}

	creds, err := config.LoadCredentials(authFile)
	if err != nil {
		log.Fatalf("could not load credentials: %v", err)
	}

	ctx := context.Background()
	client := platinium.NewClient(cfg.PlatiniumBaseURL, creds.Username, creds.Password, cfg.HTTPTimeout, log)
	if err := client.Login(ctx); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	locations, err := client.GetLocations(ctx)
	if err != nil {
		log.Fatalf("could not list venues: %v", err)
	}
	venues := make([]htmlreport.Venue, 0, len(locations))
	for _, loc := range locations {
		venues = append(venues, htmlreport.Venue{ID: loc.ID, Name: loc.Name})
	}

	log.Infof("generating timetable for %d venues...", len(venues))
	f, err := os.Create(outFile)
	if err != nil {
		log.Fatalf("could not create %s: %v", outFile, err)
	}
	defer f.Close()

	if err := htmlreport.Generate(ctx, client, venues, time.Now(), f); err != nil {
		log.Fatalf("could not generate timetable: %v", err)
	}
	log.Infof("timetable written to %s", outFile)
	fmt.Println(outFile)
}
