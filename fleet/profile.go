// fleet/profile.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fleet

import (
	"fmt"
	gomath "math"
)

// VehicleType identifies an aircraft manufacturer; all aircraft of a type
// share a Profile.
type VehicleType string

const (
	Alpha   VehicleType = "Alpha"
	Bravo   VehicleType = "Bravo"
	Charlie VehicleType = "Charlie"
	Delta   VehicleType = "Delta"
	Echo    VehicleType = "Echo"
)

// DefaultTicksPerMinute gives a 0.02 minute tick, fine enough to resolve
// every flight and charge duration in the default profiles exactly.
const DefaultTicksPerMinute = 50

// ProfileSpec is the user-facing description of a vehicle type, with
// durations given in minutes.
type ProfileSpec struct {
	Type                    VehicleType `json:"type"`
	CruiseSpeedMPH          float64     `json:"cruise_speed_mph"`
	FlightMinutes           float64     `json:"flight_minutes"`
	ChargeMinutes           float64     `json:"charge_minutes"`
	PassengerCount          int         `json:"passenger_count"`
	FaultProbabilityPerHour float64     `json:"fault_probability_per_hour"`
}

// DefaultProfileSpecs returns the five manufacturer profiles. The flight
// durations come from battery capacity / (energy use at cruise * cruise
// speed), in minutes.
func DefaultProfileSpecs() []ProfileSpec {
	return []ProfileSpec{
		{Type: Alpha, CruiseSpeedMPH: 120, FlightMinutes: 100, ChargeMinutes: 36, PassengerCount: 4, FaultProbabilityPerHour: 0.25},
		{Type: Bravo, CruiseSpeedMPH: 100, FlightMinutes: 40, ChargeMinutes: 12, PassengerCount: 5, FaultProbabilityPerHour: 0.10},
		{Type: Charlie, CruiseSpeedMPH: 160, FlightMinutes: 37.5, ChargeMinutes: 48, PassengerCount: 3, FaultProbabilityPerHour: 0.05},
		{Type: Delta, CruiseSpeedMPH: 90, FlightMinutes: 100, ChargeMinutes: 37.2, PassengerCount: 2, FaultProbabilityPerHour: 0.22},
		{Type: Echo, CruiseSpeedMPH: 30, FlightMinutes: 51.72, ChargeMinutes: 18, PassengerCount: 2, FaultProbabilityPerHour: 0.61},
	}
}

// Profile holds the per-type constants used by the simulation, with
// durations in ticks.
type Profile struct {
	Type                    VehicleType
	CruiseSpeedMPH          float64
	FlightDurationTicks     int
	ChargeDurationTicks     int
	PassengerCount          int
	FaultProbabilityPerHour float64
}

// BatteryDepleted reports whether a lifetime air time of airTimeTicks ends
// a flight. Since the counter is never reset, this happens every
// FlightDurationTicks ticks of flying.
func (p Profile) BatteryDepleted(airTimeTicks int) bool {
	return airTimeTicks%p.FlightDurationTicks == 0
}

// ChargeComplete reports whether a lifetime charge time of chargeTimeTicks
// ends a charge session.
func (p Profile) ChargeComplete(chargeTimeTicks int) bool {
	return chargeTimeTicks%p.ChargeDurationTicks == 0
}

func ticksFromMinutes(minutes float64, ticksPerMinute int) int {
	return int(gomath.Round(minutes * float64(ticksPerMinute)))
}

func (s ProfileSpec) profile(ticksPerMinute int) (Profile, error) {
	p := Profile{
		Type:                    s.Type,
		CruiseSpeedMPH:          s.CruiseSpeedMPH,
		FlightDurationTicks:     ticksFromMinutes(s.FlightMinutes, ticksPerMinute),
		ChargeDurationTicks:     ticksFromMinutes(s.ChargeMinutes, ticksPerMinute),
		PassengerCount:          s.PassengerCount,
		FaultProbabilityPerHour: s.FaultProbabilityPerHour,
	}

	invalid := func(f string, args ...any) (Profile, error) {
		return Profile{}, fmt.Errorf("%s: %s: %w", s.Type, fmt.Sprintf(f, args...), ErrInvalidProfile)
	}
	switch {
	case s.Type == "":
		return Profile{}, fmt.Errorf("missing vehicle type: %w", ErrInvalidProfile)
	case gomath.IsNaN(s.CruiseSpeedMPH) || gomath.IsInf(s.CruiseSpeedMPH, 0) || s.CruiseSpeedMPH < 0:
		return invalid("cruise speed %g mph", s.CruiseSpeedMPH)
	case p.FlightDurationTicks <= 0:
		return invalid("flight duration %g minutes is less than one tick", s.FlightMinutes)
	case p.ChargeDurationTicks <= 0:
		return invalid("charge duration %g minutes is less than one tick", s.ChargeMinutes)
	case s.PassengerCount <= 0:
		return invalid("passenger count %d", s.PassengerCount)
	case !(s.FaultProbabilityPerHour >= 0 && s.FaultProbabilityPerHour <= 1):
		return invalid("fault probability %g not in [0,1]", s.FaultProbabilityPerHour)
	}
	return p, nil
}

// ProfileTable is the immutable set of vehicle profiles for a run. It is
// built once and shared read-only by everything that needs it.
type ProfileTable struct {
	ticksPerMinute int
	order          []VehicleType
	profiles       map[VehicleType]Profile
}

// NewProfileTable converts the specs to tick-based profiles, validating
// each one. The table preserves the order of specs.
func NewProfileTable(ticksPerMinute int, specs []ProfileSpec) (*ProfileTable, error) {
	if ticksPerMinute <= 0 {
		return nil, fmt.Errorf("%d: %w", ticksPerMinute, ErrInvalidTickRate)
	}
	if len(specs) == 0 {
		return nil, ErrNoProfiles
	}

	t := &ProfileTable{
		ticksPerMinute: ticksPerMinute,
		profiles:       make(map[VehicleType]Profile, len(specs)),
	}
	for _, s := range specs {
		if _, ok := t.profiles[s.Type]; ok {
			return nil, fmt.Errorf("%s: %w", s.Type, ErrDuplicateVehicleType)
		}
		p, err := s.profile(ticksPerMinute)
		if err != nil {
			return nil, err
		}
		t.profiles[s.Type] = p
		t.order = append(t.order, s.Type)
	}
	return t, nil
}

// DefaultProfileTable returns the table for DefaultProfileSpecs at
// DefaultTicksPerMinute.
func DefaultProfileTable() *ProfileTable {
	t, err := NewProfileTable(DefaultTicksPerMinute, DefaultProfileSpecs())
	if err != nil {
		panic(err)
	}
	return t
}

func (t *ProfileTable) Lookup(vt VehicleType) (Profile, bool) {
	p, ok := t.profiles[vt]
	return p, ok
}

// MustLookup is Lookup for types that have already been validated; it
// panics on an unknown type.
func (t *ProfileTable) MustLookup(vt VehicleType) Profile {
	p, ok := t.profiles[vt]
	if !ok {
		panic(fmt.Sprintf("%s: %v", vt, ErrUnknownVehicleType))
	}
	return p
}

// Types returns the vehicle types in declaration order.
func (t *ProfileTable) Types() []VehicleType {
	return append([]VehicleType(nil), t.order...)
}

func (t *ProfileTable) Len() int {
	return len(t.order)
}

func (t *ProfileTable) TicksPerMinute() int {
	return t.ticksPerMinute
}

// Minutes converts a tick count to minutes.
func (t *ProfileTable) Minutes(ticks int) float64 {
	return float64(ticks) / float64(t.ticksPerMinute)
}

// Specs returns the table's profiles as minute-based specs, in order.
func (t *ProfileTable) Specs() []ProfileSpec {
	specs := make([]ProfileSpec, 0, len(t.order))
	for _, vt := range t.order {
		p := t.profiles[vt]
		specs = append(specs, ProfileSpec{
			Type:                    p.Type,
			CruiseSpeedMPH:          p.CruiseSpeedMPH,
			FlightMinutes:           t.Minutes(p.FlightDurationTicks),
			ChargeMinutes:           t.Minutes(p.ChargeDurationTicks),
			PassengerCount:          p.PassengerCount,
			FaultProbabilityPerHour: p.FaultProbabilityPerHour,
		})
	}
	return specs
}
