// fleet/aircraft.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fleet

import (
	"log/slog"
	"strconv"
)

type State int

const (
	Idle State = iota
	Flying
	WaitingToCharge
	Charging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Flying:
		return "Flying"
	case WaitingToCharge:
		return "WaitingToCharge"
	case Charging:
		return "Charging"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s State) Valid() bool {
	return s >= Idle && s <= Charging
}

// Aircraft is one simulated unit. Type is assigned at creation and must
// not change afterward. The tick counters and the flight, charge and
// fault counts are lifetime totals; they only ever increase.
type Aircraft struct {
	Index int
	Type  VehicleType
	State State

	AirTimeTicks    int
	ChargeTimeTicks int

	NumFlights        int
	NumChargeSessions int
	NumFaults         int
}

func NewAircraft(index int, vt VehicleType) Aircraft {
	return Aircraft{Index: index, Type: vt, State: Idle}
}

// MakeFleet returns idle aircraft with the given types, indexed in order.
func MakeFleet(types ...VehicleType) []Aircraft {
	ac := make([]Aircraft, len(types))
	for i, vt := range types {
		ac[i] = NewAircraft(i, vt)
	}
	return ac
}

// Pristine reports whether the aircraft is in the state NewAircraft
// creates.
func (ac *Aircraft) Pristine() bool {
	return *ac == NewAircraft(ac.Index, ac.Type)
}

func (ac *Aircraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("index", ac.Index),
		slog.String("type", string(ac.Type)),
		slog.String("state", ac.State.String()),
		slog.Int("air_time_ticks", ac.AirTimeTicks),
		slog.Int("charge_time_ticks", ac.ChargeTimeTicks),
		slog.Int("flights", ac.NumFlights),
		slog.Int("charge_sessions", ac.NumChargeSessions),
		slog.Int("faults", ac.NumFaults))
}
