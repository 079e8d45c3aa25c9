// report/text.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/evtolsim/evtolsim/stats"
)

func header(r *Results) string {
	return fmt.Sprintf("Run %s (seed %d, replicate %d): %g hours, %d aircraft, %d chargers\n",
		r.RunID, r.Seed, r.Replicate, r.Config.Hours(), len(r.Aircraft), r.Config.ChargerCount)
}

// avg formats an average, or "-" if there was nothing to average.
func avg(v float64, degenerate bool) string {
	if degenerate {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteText writes the per-type summary table.
func WriteText(w io.Writer, r *Results) error {
	if _, err := io.WriteString(w, header(r)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0 /* min width */, 1 /* tab width */, 2 /* padding */, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TYPE\tAIRCRAFT\tFLIGHTS\tAVG FLIGHT MIN\tAVG DIST MI\tCHARGES\tAVG CHARGE MIN\tFAULTS\tPASSENGER MI\t")

	row := func(name string, s stats.TypeSummary, dist string) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%d\t%s\t%d\t%.2f\t\n", name, s.NumAircraft, s.NumFlights,
			avg(s.AvgFlightMinutes, s.NoFlights), dist, s.NumChargeSessions,
			avg(s.AvgChargeMinutes, s.NoChargeSessions), s.TotalFaults, s.PassengerMiles)
	}
	for _, s := range r.Summaries {
		row(string(s.Type), s, avg(s.AvgDistanceMiles, s.NoFlights))
	}
	// A fleet-wide average distance would mix cruise speeds.
	row("Total", r.Totals(), "-")

	return tw.Flush()
}

// WriteAircraft writes one line per aircraft with its final state and
// lifetime totals.
func WriteAircraft(w io.Writer, r *Results) error {
	pt, err := r.ProfileTable()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0 /* min width */, 1 /* tab width */, 2 /* padding */, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTYPE\tSTATE\tFLIGHT MIN\tCHARGE MIN\tFLIGHTS\tCHARGES\tFAULTS\tMILES\tPASSENGER MI\t")
	for _, ac := range r.Aircraft {
		p := pt.MustLookup(ac.Type)
		flightMinutes := pt.Minutes(ac.AirTimeTicks)
		miles := stats.DistanceMiles(p.CruiseSpeedMPH, flightMinutes)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%d\t%d\t%.2f\t%.2f\t\n", ac.Index, ac.Type, ac.State,
			flightMinutes, pt.Minutes(ac.ChargeTimeTicks), ac.NumFlights, ac.NumChargeSessions, ac.NumFaults,
			miles, miles*float64(p.PassengerCount))
	}
	return tw.Flush()
}
