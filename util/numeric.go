// util/numeric.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Sum returns the sum of the provided values.
func Sum[T Number](v ...T) T {
	var s T
	for _, x := range v {
		s += x
	}
	return s
}

// SumFunc sums the values returned by f for each element of s.
func SumFunc[S ~[]E, E any, T Number](s S, f func(E) T) T {
	var sum T
	for _, e := range s {
		sum += f(e)
	}
	return sum
}

// SafeDiv returns num/den as a float64; if den is zero, it returns zero
// and false.
func SafeDiv[N, D Number](num N, den D) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// SortedMapKeys returns the keys of the given map, sorted from low to high.
func SortedMapKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
