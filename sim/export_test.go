// sim/export_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/evtolsim/evtolsim/fleet"
)

// SetAircraftState forces an aircraft into the given state so that tests
// can exercise failure paths.
func (s *Sim) SetAircraftState(i int, st fleet.State) {
	s.aircraft[i].State = st
}

// AircraftRef returns the Sim's own aircraft rather than a snapshot.
func (s *Sim) AircraftRef(i int) *fleet.Aircraft {
	return &s.aircraft[i]
}
