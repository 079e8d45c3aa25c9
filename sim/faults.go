// sim/faults.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/evtolsim/evtolsim/rand"
)

// FaultSource decides whether a single fault trial with probability p
// succeeds.
type FaultSource interface {
	Fault(p float64) bool
}

// RandFaults draws fault trials from a pcg-based random source. Each Sim
// should have its own.
type RandFaults struct {
	r *rand.Rand
}

func NewRandFaults(seed uint64) *RandFaults {
	return &RandFaults{r: rand.MakeSeeded(seed)}
}

func MakeRandFaults(r *rand.Rand) *RandFaults {
	return &RandFaults{r: r}
}

func (f *RandFaults) Fault(p float64) bool {
	return f.r.Bernoulli(p)
}

// FaultFunc adapts an ordinary function to the FaultSource interface.
type FaultFunc func(p float64) bool

func (f FaultFunc) Fault(p float64) bool {
	return f(p)
}

// NoFaults never reports a fault.
var NoFaults FaultSource = FaultFunc(func(float64) bool { return false })

// RunFaultTrials returns how many of n independent trials with
// probability p reported a fault.
func RunFaultTrials(src FaultSource, p float64, n int) int {
	count := 0
	for range n {
		if src.Fault(p) {
			count++
		}
	}
	return count
}
