// report/json.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/stats"

	"github.com/iancoleman/orderedmap"
)

// The JSON report keeps its keys in a fixed, human-friendly order, which
// encoding/json won't do for maps.

func summaryJSON(s stats.TypeSummary) *orderedmap.OrderedMap {
	o := orderedmap.New()
	if s.Type != "" {
		o.Set("type", s.Type)
	}
	o.Set("aircraft", s.NumAircraft)
	o.Set("flights", s.NumFlights)
	o.Set("total_flight_minutes", s.TotalFlightMinutes)
	o.Set("avg_flight_minutes", s.AvgFlightMinutes)
	if s.Type != "" {
		o.Set("avg_distance_miles", s.AvgDistanceMiles)
	}
	o.Set("charge_sessions", s.NumChargeSessions)
	o.Set("total_charge_minutes", s.TotalChargeMinutes)
	o.Set("avg_charge_minutes", s.AvgChargeMinutes)
	o.Set("faults", s.TotalFaults)
	o.Set("passenger_miles", s.PassengerMiles)
	if s.NoFlights {
		o.Set("no_flights", true)
	}
	if s.NoChargeSessions {
		o.Set("no_charge_sessions", true)
	}
	return o
}

func aircraftJSON(ac fleet.Aircraft, pt *fleet.ProfileTable) *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("index", ac.Index)
	o.Set("type", ac.Type)
	o.Set("state", ac.State.String())
	o.Set("flight_minutes", pt.Minutes(ac.AirTimeTicks))
	o.Set("charge_minutes", pt.Minutes(ac.ChargeTimeTicks))
	o.Set("flights", ac.NumFlights)
	o.Set("charge_sessions", ac.NumChargeSessions)
	o.Set("faults", ac.NumFaults)
	return o
}

// ResultsJSON returns the results as an ordered JSON object. Aircraft are
// included only if withAircraft is set.
func ResultsJSON(r *Results, withAircraft bool) (*orderedmap.OrderedMap, error) {
	pt, err := r.ProfileTable()
	if err != nil {
		return nil, err
	}

	o := orderedmap.New()
	o.Set("run_id", r.RunID.String())
	o.Set("seed", r.Seed)
	o.Set("replicate", r.Replicate)
	o.Set("created", r.Created.Format(time.RFC3339))

	cfg := orderedmap.New()
	cfg.Set("ticks_per_minute", r.Config.TicksPerMinute)
	cfg.Set("total_ticks", r.Config.TotalTicks)
	cfg.Set("hours", r.Config.Hours())
	cfg.Set("charger_count", r.Config.ChargerCount)
	cfg.Set("aircraft_count", len(r.Aircraft))
	o.Set("config", cfg)
	o.Set("profiles", r.Profiles)

	var summaries []*orderedmap.OrderedMap
	for _, s := range r.Summaries {
		summaries = append(summaries, summaryJSON(s))
	}
	o.Set("summaries", summaries)
	o.Set("totals", summaryJSON(r.Totals()))

	if withAircraft {
		var aircraft []*orderedmap.OrderedMap
		for _, ac := range r.Aircraft {
			aircraft = append(aircraft, aircraftJSON(ac, pt))
		}
		o.Set("aircraft", aircraft)
	}
	return o, nil
}

// WriteJSON writes an indented JSON array with one object per run.
func WriteJSON(w io.Writer, results []*Results, withAircraft bool) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	var runs []*orderedmap.OrderedMap
	for _, r := range results {
		o, err := ResultsJSON(r, withAircraft)
		if err != nil {
			return err
		}
		runs = append(runs, o)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}
