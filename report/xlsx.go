// report/xlsx.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	aircraftSheet = "Aircraft"
)

// WriteXLSX writes a workbook with a row per vehicle type per run on the
// Summary sheet and a row per aircraft per run on the Aircraft sheet, so
// replicate runs can be compared in a spreadsheet.
func WriteXLSX(w io.Writer, results []*Results) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(aircraftSheet); err != nil {
		return err
	}

	summaryHeaders := []string{"Run", "Seed", "Replicate", "Hours", "Chargers", "Type", "Aircraft",
		"Flights", "Avg Flight (min)", "Avg Distance (mi)", "Charge Sessions", "Avg Charge (min)",
		"Faults", "Passenger Miles"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeaders); err != nil {
		return err
	}
	aircraftHeaders := []string{"Run", "Replicate", "Index", "Type", "State", "Flight (min)",
		"Charge (min)", "Flights", "Charge Sessions", "Faults"}
	if err := f.SetSheetRow(aircraftSheet, "A1", &aircraftHeaders); err != nil {
		return err
	}

	summaryRow, aircraftRow := 2, 2
	for _, r := range results {
		pt, err := r.ProfileTable()
		if err != nil {
			return err
		}
		run := r.RunID.String()

		for _, s := range r.Summaries {
			row := []any{run, r.Seed, r.Replicate, r.Config.Hours(), r.Config.ChargerCount, string(s.Type),
				s.NumAircraft, s.NumFlights, blankIf(s.AvgFlightMinutes, s.NoFlights),
				blankIf(s.AvgDistanceMiles, s.NoFlights), s.NumChargeSessions,
				blankIf(s.AvgChargeMinutes, s.NoChargeSessions), s.TotalFaults, s.PassengerMiles}
			if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", summaryRow), &row); err != nil {
				return err
			}
			summaryRow++
		}

		for _, ac := range r.Aircraft {
			row := []any{run, r.Replicate, ac.Index, string(ac.Type), ac.State.String(),
				pt.Minutes(ac.AirTimeTicks), pt.Minutes(ac.ChargeTimeTicks), ac.NumFlights,
				ac.NumChargeSessions, ac.NumFaults}
			if err := f.SetSheetRow(aircraftSheet, fmt.Sprintf("A%d", aircraftRow), &row); err != nil {
				return err
			}
			aircraftRow++
		}
	}

	return f.Write(w)
}

// blankIf leaves degenerate averages empty in the spreadsheet.
func blankIf(v float64, degenerate bool) any {
	if degenerate {
		return ""
	}
	return v
}
