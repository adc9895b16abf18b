package htmlreport

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

func TestBuildVenueGrid(t *testing.T) {
	venue := Venue{ID: 3, Name: "FP Zakopianka"}
	rows := []booking.Row{
		{LocationID: 3, Name: "BRZUCHOMANIA", ID: 6916, StartTime: "2022-05-02T18:00:00", DayOfWeek: 1},
		{LocationID: 3, Name: "TABATA", ID: 1599, StartTime: "2022-05-02T09:00:00", DayOfWeek: 1},
		{LocationID: 3, Name: "JOGA", ID: 77, StartTime: "2022-05-03T18:00:00", DayOfWeek: 2},
		// second class in the same Monday 18:00 slot forces an overflow row
		{LocationID: 3, Name: "SQUASH", ID: 510, StartTime: "2022-05-02T18:00:00", DayOfWeek: 1},
	}

	grid, err := BuildVenueGrid(venue, rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"Poniedziałek", "Wtorek", "Środa", "Czwartek", "Piątek", "Sobota", "Niedziela"}, grid.Days)

	// 09:00 takes one row, 18:00 takes two (overflow)
	require.Len(t, grid.Rows, 3)

	assert.Equal(t, "09:00", grid.Rows[0].Hour)
	assert.Equal(t, "odd", grid.Rows[0].Band)
	require.Len(t, grid.Rows[0].Cells, 7)
	require.NotNil(t, grid.Rows[0].Cells[0])
	assert.Equal(t, "TABATA", grid.Rows[0].Cells[0].Name)

	assert.Equal(t, "18:00", grid.Rows[1].Hour)
	assert.Equal(t, "even", grid.Rows[1].Band)
	require.NotNil(t, grid.Rows[1].Cells[0])
	assert.Equal(t, "BRZUCHOMANIA", grid.Rows[1].Cells[0].Name)
	require.NotNil(t, grid.Rows[1].Cells[1])
	assert.Equal(t, "JOGA", grid.Rows[1].Cells[1].Name)

	// overflow row shares the band and has no hour label
	assert.Equal(t, "", grid.Rows[2].Hour)
	assert.Equal(t, "even", grid.Rows[2].Band)
	require.NotNil(t, grid.Rows[2].Cells[0])
	assert.Equal(t, "SQUASH", grid.Rows[2].Cells[0].Name)
	assert.Nil(t, grid.Rows[2].Cells[1])
}

func TestBuildVenueGridBadTimestamp(t *testing.T) {
	_, err := BuildVenueGrid(Venue{ID: 3}, []booking.Row{{StartTime: "18:00", DayOfWeek: 1}})
	assert.ErrorIs(t, err, schedule.ErrInvalidTimestampFormat)
}

type fakeFeed struct {
	records []booking.RawRecord
}

func (f *fakeFeed) FetchClasses(ctx context.Context, venueID int64, startDate time.Time, daysForward int) ([]booking.RawRecord, error) {
	return f.records, nil
}

func TestGenerate(t *testing.T) {
	var record booking.RawRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"StartTime": "2022-05-02T18:00:00", "Name": "BRZUCHOMANIA", "Id": 6916,
		"LocationId": 3, "DayOfWeek": 1, "IsReserved": false, "IsReservable": true,
		"IsEnabled": true, "IsCanceled": false, "ReservationButton": 1
	}`), &record))
	feed := &fakeFeed{records: []booking.RawRecord{record}}

	var buf bytes.Buffer
	start := time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC)
	venues := []Venue{{ID: 3, Name: "FP Zakopianka"}}
	require.NoError(t, Generate(context.Background(), feed, venues, start, &buf))

	out := buf.String()
	assert.Contains(t, out, `<table id="loc3">`)
	assert.Contains(t, out, "FP Zakopianka")
	assert.Contains(t, out, `data-class-id="6916"`)
	assert.Contains(t, out, `data-class-time="18:00"`)
	assert.Contains(t, out, `data-day="MON"`)
}
