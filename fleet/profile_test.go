// fleet/profile_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fleet

import (
	"errors"
	"testing"
)

func TestDefaultProfileTicks(t *testing.T) {
	pt := DefaultProfileTable()

	for _, tc := range []struct {
		vt             VehicleType
		flight, charge int
		pax            int
	}{
		{Alpha, 5000, 1800, 4},
		{Bravo, 2000, 600, 5},
		{Charlie, 1875, 2400, 3},
		{Delta, 5000, 1860, 2},
		{Echo, 2586, 900, 2},
	} {
		p, ok := pt.Lookup(tc.vt)
		if !ok {
			t.Fatalf("%s: missing from default table", tc.vt)
		}
		if p.FlightDurationTicks != tc.flight {
			t.Errorf("%s: flight ticks %d, expected %d", tc.vt, p.FlightDurationTicks, tc.flight)
		}
		if p.ChargeDurationTicks != tc.charge {
			t.Errorf("%s: charge ticks %d, expected %d", tc.vt, p.ChargeDurationTicks, tc.charge)
		}
		if p.PassengerCount != tc.pax {
			t.Errorf("%s: passengers %d, expected %d", tc.vt, p.PassengerCount, tc.pax)
		}
	}

	if pt.Len() != 5 {
		t.Errorf("expected 5 profiles, got %d", pt.Len())
	}
	want := []VehicleType{Alpha, Bravo, Charlie, Delta, Echo}
	for i, vt := range pt.Types() {
		if vt != want[i] {
			t.Errorf("type %d: got %s, expected %s", i, vt, want[i])
		}
	}
}

func TestProfileTableRoundTrip(t *testing.T) {
	pt := DefaultProfileTable()
	specs := pt.Specs()
	pt2, err := NewProfileTable(pt.TicksPerMinute(), specs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, vt := range pt.Types() {
		if pt.MustLookup(vt) != pt2.MustLookup(vt) {
			t.Errorf("%s: profile changed: %+v -> %+v", vt, pt.MustLookup(vt), pt2.MustLookup(vt))
		}
	}
}

func TestProfileValidation(t *testing.T) {
	good := ProfileSpec{Type: "Zulu", CruiseSpeedMPH: 100, FlightMinutes: 10, ChargeMinutes: 5,
		PassengerCount: 2, FaultProbabilityPerHour: 0.1}

	for _, tc := range []struct {
		name  string
		tpm   int
		specs []ProfileSpec
		err   error
	}{
		{"good", 50, []ProfileSpec{good}, nil},
		{"zero tick rate", 0, []ProfileSpec{good}, ErrInvalidTickRate},
		{"empty", 50, nil, ErrNoProfiles},
		{"duplicate", 50, []ProfileSpec{good, good}, ErrDuplicateVehicleType},
		{"no type", 50, []ProfileSpec{func() ProfileSpec { s := good; s.Type = ""; return s }()}, ErrInvalidProfile},
		{"negative speed", 50, []ProfileSpec{func() ProfileSpec { s := good; s.CruiseSpeedMPH = -1; return s }()}, ErrInvalidProfile},
		{"zero flight", 50, []ProfileSpec{func() ProfileSpec { s := good; s.FlightMinutes = 0; return s }()}, ErrInvalidProfile},
		{"sub-tick charge", 50, []ProfileSpec{func() ProfileSpec { s := good; s.ChargeMinutes = 0.001; return s }()}, ErrInvalidProfile},
		{"no passengers", 50, []ProfileSpec{func() ProfileSpec { s := good; s.PassengerCount = 0; return s }()}, ErrInvalidProfile},
		{"probability", 50, []ProfileSpec{func() ProfileSpec { s := good; s.FaultProbabilityPerHour = 1.5; return s }()}, ErrInvalidProfile},
	} {
		_, err := NewProfileTable(tc.tpm, tc.specs)
		if tc.err == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		} else if tc.err != nil && !errors.Is(err, tc.err) {
			t.Errorf("%s: got error %v, expected %v", tc.name, err, tc.err)
		}
	}
}

func TestPeriodicity(t *testing.T) {
	p := DefaultProfileTable().MustLookup(Bravo)
	n := 0
	for ticks := 1; ticks <= 3*p.FlightDurationTicks; ticks++ {
		if p.BatteryDepleted(ticks) {
			n++
		}
	}
	if n != 3 {
		t.Errorf("expected 3 depletions over 3 flight durations, got %d", n)
	}
	if !p.ChargeComplete(2*p.ChargeDurationTicks) || p.ChargeComplete(p.ChargeDurationTicks+1) {
		t.Errorf("charge completion not periodic in %d", p.ChargeDurationTicks)
	}
}
