// stats/stats.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package stats reduces the final aircraft of a run to per-vehicle-type
// summaries.
package stats

import (
	"fmt"
	"log/slog"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/util"
)

// TypeSummary holds the results for all aircraft of one vehicle type.
// Counters are lifetime totals over the run.
//
// A type with no flights has zero average flight time and distance, and
// a type with no charge sessions has zero average charge time; NoFlights
// and NoChargeSessions record when that happened so the zeros aren't
// mistaken for measurements.
type TypeSummary struct {
	Type        fleet.VehicleType
	NumAircraft int

	TotalFlightMinutes float64
	NumFlights         int
	TotalChargeMinutes float64
	NumChargeSessions  int

	AvgFlightMinutes float64
	AvgDistanceMiles float64
	AvgChargeMinutes float64
	TotalFaults      int
	PassengerMiles   float64

	NoFlights        bool
	NoChargeSessions bool
}

func (ts TypeSummary) Degenerate() bool {
	return ts.NoFlights || ts.NoChargeSessions
}

func (ts TypeSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(ts.Type)),
		slog.Int("aircraft", ts.NumAircraft),
		slog.Int("flights", ts.NumFlights),
		slog.Float64("avg_flight_minutes", ts.AvgFlightMinutes),
		slog.Float64("avg_distance_miles", ts.AvgDistanceMiles),
		slog.Int("charge_sessions", ts.NumChargeSessions),
		slog.Float64("avg_charge_minutes", ts.AvgChargeMinutes),
		slog.Int("faults", ts.TotalFaults),
		slog.Float64("passenger_miles", ts.PassengerMiles))
}

// DistanceMiles returns the distance covered in the given number of
// minutes at a constant speed.
func DistanceMiles(speedMPH, minutes float64) float64 {
	return speedMPH * minutes / 60
}

// Aggregate returns one summary per vehicle type in the profile table, in
// table order. Types with no aircraft get a summary with zero counts.
func Aggregate(aircraft []fleet.Aircraft, profiles *fleet.ProfileTable) ([]TypeSummary, error) {
	byType := make(map[fleet.VehicleType][]fleet.Aircraft)
	for _, ac := range aircraft {
		if _, ok := profiles.Lookup(ac.Type); !ok {
			return nil, fmt.Errorf("aircraft %d: %s: %w", ac.Index, ac.Type, fleet.ErrUnknownVehicleType)
		}
		byType[ac.Type] = append(byType[ac.Type], ac)
	}

	var summaries []TypeSummary
	for _, vt := range profiles.Types() {
		summaries = append(summaries, summarize(profiles.MustLookup(vt), byType[vt], profiles))
	}
	return summaries, nil
}

func summarize(p fleet.Profile, aircraft []fleet.Aircraft, profiles *fleet.ProfileTable) TypeSummary {
	airTicks := util.SumFunc(aircraft, func(ac fleet.Aircraft) int { return ac.AirTimeTicks })
	chargeTicks := util.SumFunc(aircraft, func(ac fleet.Aircraft) int { return ac.ChargeTimeTicks })

	ts := TypeSummary{
		Type:               p.Type,
		NumAircraft:        len(aircraft),
		TotalFlightMinutes: profiles.Minutes(airTicks),
		NumFlights:         util.SumFunc(aircraft, func(ac fleet.Aircraft) int { return ac.NumFlights }),
		TotalChargeMinutes: profiles.Minutes(chargeTicks),
		NumChargeSessions:  util.SumFunc(aircraft, func(ac fleet.Aircraft) int { return ac.NumChargeSessions }),
		TotalFaults:        util.SumFunc(aircraft, func(ac fleet.Aircraft) int { return ac.NumFaults }),
	}

	var ok bool
	if ts.AvgFlightMinutes, ok = util.SafeDiv(ts.TotalFlightMinutes, ts.NumFlights); ok {
		ts.AvgDistanceMiles = DistanceMiles(p.CruiseSpeedMPH, ts.AvgFlightMinutes)
	} else {
		ts.NoFlights = true
	}
	if ts.AvgChargeMinutes, ok = util.SafeDiv(ts.TotalChargeMinutes, ts.NumChargeSessions); !ok {
		ts.NoChargeSessions = true
	}
	ts.PassengerMiles = DistanceMiles(p.CruiseSpeedMPH, ts.TotalFlightMinutes) * float64(p.PassengerCount)

	return ts
}

// Totals sums the counters of the given summaries into a single fleet-wide
// summary with no type.
func Totals(summaries []TypeSummary) TypeSummary {
	var t TypeSummary
	for _, s := range summaries {
		t.NumAircraft += s.NumAircraft
		t.TotalFlightMinutes += s.TotalFlightMinutes
		t.NumFlights += s.NumFlights
		t.TotalChargeMinutes += s.TotalChargeMinutes
		t.NumChargeSessions += s.NumChargeSessions
		t.TotalFaults += s.TotalFaults
		t.PassengerMiles += s.PassengerMiles
	}
	var ok bool
	t.AvgFlightMinutes, ok = util.SafeDiv(t.TotalFlightMinutes, t.NumFlights)
	t.NoFlights = !ok
	t.AvgChargeMinutes, ok = util.SafeDiv(t.TotalChargeMinutes, t.NumChargeSessions)
	t.NoChargeSessions = !ok
	return t
}
