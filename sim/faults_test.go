// sim/faults_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"

	"github.com/evtolsim/evtolsim/fleet"
)

func TestFaultTrialConvergence(t *testing.T) {
	const n = 1000
	p := fleet.DefaultProfileTable().MustLookup(fleet.Alpha).FaultProbabilityPerHour

	for seed := range uint64(20) {
		// Expected 250 with a standard deviation of ~13.7; allow 4 sigma.
		count := RunFaultTrials(NewRandFaults(seed), p, n)
		if count < 195 || count > 305 {
			t.Errorf("seed %d: %d faults in %d trials at p=%g", seed, count, n, p)
		}
	}
}

func TestFaultTrialExtremes(t *testing.T) {
	src := NewRandFaults(42)
	if c := RunFaultTrials(src, 0, 500); c != 0 {
		t.Errorf("p=0 gave %d faults", c)
	}
	if c := RunFaultTrials(src, 1, 500); c != 500 {
		t.Errorf("p=1 gave %d faults out of 500", c)
	}
	if c := RunFaultTrials(NoFaults, 1, 500); c != 0 {
		t.Errorf("NoFaults gave %d faults", c)
	}
}

func TestFaultDeterminism(t *testing.T) {
	a, b := NewRandFaults(99), NewRandFaults(99)
	for i := range 1000 {
		if a.Fault(0.3) != b.Fault(0.3) {
			t.Fatalf("trial %d differs with the same seed", i)
		}
	}
}
