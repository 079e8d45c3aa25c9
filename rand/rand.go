// rand/rand.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"iter"
	"time"

	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

// Rand is a PCG32 generator. It is not safe for concurrent use; each
// simulation run gets its own.
type Rand struct {
	r *pcg.PCG32
}

const pcgSequence = 0xda3e39cb94b95bdb

// Make returns a generator seeded from the current time.
func Make() *Rand {
	return MakeSeeded(uint64(time.Now().UnixNano()))
}

// MakeSeeded returns a generator whose sequence is fully determined by
// seed.
func MakeSeeded(seed uint64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	r.Seed(seed)
	return r
}

func (r *Rand) Seed(s uint64) {
	r.r.Seed(s, pcgSequence)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

func (r *Rand) Float32() float32 {
	return float32(r.r.Random()) / (1<<32 - 1)
}

// Float64 returns a uniformly distributed value in [0,1) with 53 bits of
// precision.
func (r *Rand) Float64() float64 {
	v := uint64(r.r.Random())<<32 | uint64(r.r.Random())
	return float64(v>>11) / (1 << 53)
}

// Bernoulli returns true with probability p. p <= 0 never succeeds and
// p >= 1 always does.
func (r *Rand) Bernoulli(p float64) bool {
	return r.Float64() < p
}

// PermutationElement returns the ith element of a random permutation of the
// set of integers [0...,n-1].
// i/n, p is hash, via Andrew Kensler
func PermutationElement(i int, n int, p uint32) int {
	ui, l := uint32(i), uint32(n)
	w := l - 1
	w |= w >> 1
	w |= w >> 2
	w |= w >> 4
	w |= w >> 8
	w |= w >> 16
	for {
		ui ^= p
		ui *= 0xe170893d
		ui ^= p >> 16
		ui ^= (ui & w) >> 4
		ui ^= p >> 8
		ui *= 0x0929eb3f
		ui ^= p >> 23
		ui ^= (ui & w) >> 1
		ui *= 1 | p>>27
		ui *= 0x6935fa69
		ui ^= (ui & w) >> 11
		ui *= 0x74dcb303
		ui ^= (ui & w) >> 2
		ui *= 0x9e501cc3
		ui ^= (ui & w) >> 2
		ui *= 0xc860a3df
		ui &= w
		ui ^= ui >> 5
		if ui < l {
			break
		}
	}
	return int((ui + p) % l)
}

// PermuteSlice iterates over the elements of s in a pseudo-random order
// determined by seed, yielding each element's original index along with
// it.
func PermuteSlice[Slice ~[]E, E any](s Slice, seed uint32) iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := range len(s) {
			ip := PermutationElement(i, len(s), seed)
			if !yield(ip, s[ip]) {
				break
			}
		}
	}
}

// SampleSlice uniformly randomly samples an element of a non-empty slice.
func SampleSlice[T any](r *Rand, slice []T) T {
	return slice[r.Intn(len(slice))]
}
