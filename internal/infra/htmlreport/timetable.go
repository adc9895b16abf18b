// Package htmlreport renders the weekly class timetable of each venue into
// a standalone HTML file, the browser-side companion of the booking
// daemon: every activity cell carries the data attributes needed to copy a
// class into the declared schedule.
package htmlreport

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// Venue is one club location to render a table for.
type Venue struct {
	ID   int64
	Name string
}

// polishWeekdays maps the schedule weekday names to the displayed headers,
// in display order (Monday first).
var displayOrder = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

var polishWeekdays = map[string]string{
	"MON": "Poniedziałek",
	"TUE": "Wtorek",
	"WED": "Środa",
	"THU": "Czwartek",
	"FRI": "Piątek",
	"SAT": "Sobota",
	"SUN": "Niedziela",
}

// Activity is one class occurrence placed in the grid.
type Activity struct {
	VenueID int64
	Weekday string
	Name    string
	ClassID int64
	Time    string
}

// GridRow is one time slot of a venue table: an hour label (empty on
// overflow rows when several classes share a slot), an odd/even band class
// alternating per distinct hour, and one cell per display weekday.
type GridRow struct {
	Hour  string
	Band  string
	Cells []*Activity
}

// VenueGrid is the weekly table of one venue.
type VenueGrid struct {
	Venue Venue
	Days  []string
	Rows  []GridRow
}

// BuildVenueGrid pivots a venue's live rows into the weekday-by-time grid.
func BuildVenueGrid(venue Venue, rows []booking.Row) (*VenueGrid, error) {
	type slotKey struct {
		time    string
		weekday string
	}
	slots := make(map[slotKey][]*Activity)
	times := make(map[string]bool)
	for _, row := range rows {
		localTime, err := schedule.TimestampToLocalTime(row.StartTime)
		if err != nil {
			return nil, err
		}
		weekday, err := schedule.DayNumToWeekday(row.DayOfWeek)
		if err != nil {
			return nil, err
		}
		act := &Activity{
			VenueID: row.LocationID,
			Weekday: weekday,
			Name:    row.Name,
			ClassID: row.ID,
			Time:    localTime,
		}
		key := slotKey{time: localTime, weekday: weekday}
		slots[key] = append(slots[key], act)
		times[localTime] = true
	}

	sortedTimes := make([]string, 0, len(times))
	for t := range times {
		sortedTimes = append(sortedTimes, t)
	}
	sort.Strings(sortedTimes)

	grid := &VenueGrid{Venue: venue}
	for _, wd := range displayOrder {
		grid.Days = append(grid.Days, polishWeekdays[wd])
	}

	band := "even"
	for _, t := range sortedTimes {
		depth := 0
		for _, wd := range displayOrder {
			if n := len(slots[slotKey{time: t, weekday: wd}]); n > depth {
				depth = n
			}
		}
		if band == "even" {
			band = "odd"
		} else {
			band = "even"
		}
		for i := 0; i < depth; i++ {
			row := GridRow{Band: band}
			if i == 0 {
				row.Hour = t
			}
			for _, wd := range displayOrder {
				acts := slots[slotKey{time: t, weekday: wd}]
				if i < len(acts) {
					row.Cells = append(row.Cells, acts[i])
				} else {
					row.Cells = append(row.Cells, nil)
				}
			}
			grid.Rows = append(grid.Rows, row)
		}
	}
	return grid, nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="utf-8">
<title>Platinium - plan zajęć</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; vertical-align: top; }
th.hour, td.hour { font-weight: bold; background: #f0f0f0; }
tr.odd { background: #fafafa; }
.activity-cell h6 { margin: 0; }
.activity-cell p { margin: 0; font-size: 0.8em; color: #666; }
</style>
</head>
<body>
{{- range .Grids }}
<h2>{{ .Venue.Name }}</h2>
<table id="loc{{ .Venue.ID }}">
<tr><th class="hour"></th>{{ range .Days }}<th>{{ . }}</th>{{ end }}</tr>
{{- range .Rows }}
<tr class="{{ .Band }}"><td class="hour">{{ .Hour }}</td>
{{- range .Cells }}
{{- if . }}<td class="cell"><div class="activity-cell" data-location-id="{{ .VenueID }}" data-day="{{ .Weekday }}" data-class-name="{{ .Name }}" data-class-id="{{ .ClassID }}" data-class-time="{{ .Time }}"><h6>{{ .Name }}</h6><p>id = {{ .ClassID }}</p></div></td>
{{- else }}<td></td>
{{- end }}
{{- end }}
</tr>
{{- end }}
</table>
{{- end }}
</body>
</html>
`

var tmpl = template.Must(template.New("timetable").Parse(pageTemplate))

// Generate fetches one week of classes per venue and writes the full
// timetable page to w.
func Generate(ctx context.Context, client booking.Client, venues []Venue, start time.Time, w io.Writer) error {
	var grids []*VenueGrid
	for _, venue := range venues {
		table, err := booking.BuildTable(ctx, client, []int64{venue.ID}, start, 7, booking.RequiredColumns)
		if err != nil {
			return fmt.Errorf("building timetable for venue %d: %w", venue.ID, err)
		}
		grid, err := BuildVenueGrid(venue, table.Rows)
		if err != nil {
			return err
		}
		grids = append(grids, grid)
	}
	return tmpl.Execute(w, struct{ Grids []*VenueGrid }{Grids: grids})
}
