// stats/stats_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package stats

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/evtolsim/evtolsim/fleet"
)

func approxEqual(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-9*max(1, gomath.Abs(b))
}

// oneCycleFleet returns count aircraft of each type, each having
// completed exactly one flight and one charge session and seen one fault.
func oneCycleFleet(pt *fleet.ProfileTable, count int) []fleet.Aircraft {
	var aircraft []fleet.Aircraft
	for _, vt := range pt.Types() {
		p := pt.MustLookup(vt)
		for range count {
			ac := fleet.NewAircraft(len(aircraft), vt)
			ac.AirTimeTicks = p.FlightDurationTicks
			ac.ChargeTimeTicks = p.ChargeDurationTicks
			ac.NumFlights = 1
			ac.NumChargeSessions = 1
			ac.NumFaults = 1
			aircraft = append(aircraft, ac)
		}
	}
	return aircraft
}

func TestAggregateOneCycle(t *testing.T) {
	pt := fleet.DefaultProfileTable()
	summaries, err := Aggregate(oneCycleFleet(pt, 4), pt)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(summaries) != 5 {
		t.Fatalf("expected 5 summaries, got %d", len(summaries))
	}

	for i, spec := range fleet.DefaultProfileSpecs() {
		s := summaries[i]
		if s.Type != spec.Type {
			t.Errorf("summary %d: type %s, expected %s", i, s.Type, spec.Type)
		}
		if s.NumAircraft != 4 || s.NumFlights != 4 || s.NumChargeSessions != 4 || s.TotalFaults != 4 {
			t.Errorf("%s: unexpected counts %+v", s.Type, s)
		}
		if !approxEqual(s.AvgFlightMinutes, spec.FlightMinutes) {
			t.Errorf("%s: average flight %g minutes, expected %g", s.Type, s.AvgFlightMinutes, spec.FlightMinutes)
		}
		if !approxEqual(s.AvgChargeMinutes, spec.ChargeMinutes) {
			t.Errorf("%s: average charge %g minutes, expected %g", s.Type, s.AvgChargeMinutes, spec.ChargeMinutes)
		}
		if d := spec.CruiseSpeedMPH * spec.FlightMinutes / 60; !approxEqual(s.AvgDistanceMiles, d) {
			t.Errorf("%s: average distance %g, expected %g", s.Type, s.AvgDistanceMiles, d)
		}
		pm := 4 * spec.FlightMinutes * spec.CruiseSpeedMPH / 60 * float64(spec.PassengerCount)
		if !approxEqual(s.PassengerMiles, pm) {
			t.Errorf("%s: %g passenger miles, expected %g", s.Type, s.PassengerMiles, pm)
		}
		if s.Degenerate() {
			t.Errorf("%s: unexpectedly degenerate", s.Type)
		}
	}

	// 120 mph for 100 minutes with 4 passengers, over 4 aircraft.
	if summaries[0].PassengerMiles != 3200 {
		t.Errorf("Alpha: %g passenger miles, expected 3200", summaries[0].PassengerMiles)
	}
}

func TestAggregateDegenerate(t *testing.T) {
	pt := fleet.DefaultProfileTable()

	// Bravo has aircraft that flew but never charged; nothing else has
	// any aircraft at all.
	aircraft := fleet.MakeFleet(fleet.Bravo, fleet.Bravo)
	for i := range aircraft {
		aircraft[i].NumFlights = 1
		aircraft[i].AirTimeTicks = 300
	}

	summaries, err := Aggregate(aircraft, pt)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for _, s := range summaries {
		if gomath.IsNaN(s.AvgFlightMinutes) || gomath.IsNaN(s.AvgChargeMinutes) || gomath.IsNaN(s.AvgDistanceMiles) {
			t.Errorf("%s: NaN in summary %+v", s.Type, s)
		}
		if s.Type == fleet.Bravo {
			if s.NoFlights || !s.NoChargeSessions || s.AvgChargeMinutes != 0 {
				t.Errorf("Bravo: unexpected flags %+v", s)
			}
			if s.AvgFlightMinutes != 6 || s.AvgDistanceMiles != 10 {
				t.Errorf("Bravo: average %g minutes %g miles, expected 6 and 10", s.AvgFlightMinutes, s.AvgDistanceMiles)
			}
		} else if !s.NoFlights || !s.NoChargeSessions || s.NumAircraft != 0 || s.AvgDistanceMiles != 0 {
			t.Errorf("%s: expected empty degenerate summary, got %+v", s.Type, s)
		}
	}
}

func TestAggregateUnknownType(t *testing.T) {
	_, err := Aggregate(fleet.MakeFleet(fleet.Alpha, "Zulu"), fleet.DefaultProfileTable())
	if !errors.Is(err, fleet.ErrUnknownVehicleType) {
		t.Errorf("expected ErrUnknownVehicleType, got %v", err)
	}
}

func TestDistanceMiles(t *testing.T) {
	for _, tc := range []struct{ speed, minutes, miles float64 }{
		{120, 100, 200},
		{60, 1, 1},
		{30, 0, 0},
		{160, 37.5, 100},
	} {
		if d := DistanceMiles(tc.speed, tc.minutes); !approxEqual(d, tc.miles) {
			t.Errorf("%g mph for %g minutes: got %g, expected %g", tc.speed, tc.minutes, d, tc.miles)
		}
	}
}

func TestTotals(t *testing.T) {
	pt := fleet.DefaultProfileTable()
	summaries, _ := Aggregate(oneCycleFleet(pt, 2), pt)
	tot := Totals(summaries)
	if tot.NumAircraft != 10 || tot.NumFlights != 10 || tot.TotalFaults != 10 {
		t.Errorf("unexpected totals %+v", tot)
	}
	var pm float64
	for _, s := range summaries {
		pm += s.PassengerMiles
	}
	if !approxEqual(tot.PassengerMiles, pm) {
		t.Errorf("passenger miles %g, expected %g", tot.PassengerMiles, pm)
	}
	if tot.Degenerate() {
		t.Errorf("totals unexpectedly degenerate")
	}
	if Totals(nil).NoFlights != true {
		t.Errorf("empty totals should be degenerate")
	}
}
