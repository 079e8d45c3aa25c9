// fleet/assign.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fleet

import (
	"fmt"
	"strings"

	"github.com/evtolsim/evtolsim/rand"
)

// AssignTypes returns n idle aircraft with randomly chosen vehicle types.
// Every type in the table is used at least once; the remaining aircraft
// get uniformly sampled types, and the whole fleet is then randomly
// permuted so that the guaranteed ones aren't always at the front.
func AssignTypes(r *rand.Rand, n int, profiles *ProfileTable) ([]Aircraft, error) {
	types := profiles.Types()
	if n < len(types) {
		return nil, fmt.Errorf("%d aircraft for %d vehicle types: %w", n, len(types), ErrTooFewAircraft)
	}

	drawn := make([]VehicleType, n)
	copy(drawn, types)
	for i := len(types); i < n; i++ {
		drawn[i] = rand.SampleSlice(r, types)
	}

	aircraft := make([]Aircraft, 0, n)
	for _, vt := range rand.PermuteSlice(drawn, r.Uint32()) {
		aircraft = append(aircraft, NewAircraft(len(aircraft), vt))
	}
	return aircraft, nil
}

// CheckCoverage returns an error if any aircraft has a type that isn't in
// the table or if some type in the table has no aircraft. Statistics for
// a type with no aircraft are degenerate.
func CheckCoverage(aircraft []Aircraft, profiles *ProfileTable) error {
	counts := CountByType(aircraft)
	for vt := range counts {
		if _, ok := profiles.Lookup(vt); !ok {
			return fmt.Errorf("%s: %w", vt, ErrUnknownVehicleType)
		}
	}

	var missing []string
	for _, vt := range profiles.Types() {
		if counts[vt] == 0 {
			missing = append(missing, string(vt))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissingVehicleType)
	}
	return nil
}

// CountByType returns the number of aircraft of each type.
func CountByType(aircraft []Aircraft) map[VehicleType]int {
	counts := make(map[VehicleType]int)
	for _, ac := range aircraft {
		counts[ac.Type]++
	}
	return counts
}
