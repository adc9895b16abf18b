package booking

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Column names of the class records the Platinium API returns. The live
// table is projected to exactly this set.
const (
	ColStartTime         = "StartTime"
	ColName              = "Name"
	ColID                = "Id"
	ColLocationID        = "LocationId"
	ColDayOfWeek         = "DayOfWeek"
	ColIsReserved        = "IsReserved"
	ColIsReservable      = "IsReservable"
	ColIsEnabled         = "IsEnabled"
	ColIsCanceled        = "IsCanceled"
	ColReservationButton = "ReservationButton"
)

// RequiredColumns is the default projection for the live-schedule table.
var RequiredColumns = []string{
	ColStartTime,
	ColName,
	ColID,
	ColLocationID,
	ColDayOfWeek,
	ColIsReserved,
	ColIsReservable,
	ColIsEnabled,
	ColIsCanceled,
	ColReservationButton,
}

var ErrUnknownColumn = errors.New("unknown column in fetched classes")

// RawRecord is one class record as returned by the remote service, kept
// field-addressable so the projection contract can be checked before any
// decoding happens.
type RawRecord map[string]json.RawMessage

// Row is one live class instance. StartTime initially holds the absolute
// API timestamp; the schema unifier later rewrites it to "HH:MM", so the
// absolute value must be captured beforehand (see Table.StartTimes).
type Row struct {
	OnlineID          int
	StartTime         string
	Name              string
	ID                int64
	LocationID        int64
	DayOfWeek         int
	IsReserved        bool
	IsReservable      bool
	IsEnabled         bool
	IsCanceled        bool
	ReservationButton int
}

// DecodeRow projects a raw record onto a Row. Missing fields decode to
// their zero values; column presence is the table builder's contract, not
// this function's.
func DecodeRow(raw RawRecord) (Row, error) {
	var row Row
	fields := []struct {
		col string
		dst any
	}{
		{ColStartTime, &row.StartTime},
		{ColName, &row.Name},
		{ColID, &row.ID},
		{ColLocationID, &row.LocationID},
		{ColDayOfWeek, &row.DayOfWeek},
		{ColIsReserved, &row.IsReserved},
		{ColIsReservable, &row.IsReservable},
		{ColIsEnabled, &row.IsEnabled},
		{ColIsCanceled, &row.IsCanceled},
		{ColReservationButton, &row.ReservationButton},
	}
	for _, f := range fields {
		msg, ok := raw[f.col]
		if !ok || string(msg) == "null" {
			continue
		}
		if err := json.Unmarshal(msg, f.dst); err != nil {
			return Row{}, fmt.Errorf("decoding class field %s: %w", f.col, err)
		}
	}
	return row, nil
}
