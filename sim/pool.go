// sim/pool.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"
	"slices"
)

// ChargingPool is a fixed number of interchangeable chargers; only the
// count in use is tracked.
type ChargingPool struct {
	capacity int
	inUse    int
}

func NewChargingPool(capacity int) *ChargingPool {
	return &ChargingPool{capacity: capacity}
}

// TryAdmit claims a charger if one is free; it returns false and leaves
// the pool unchanged otherwise.
func (p *ChargingPool) TryAdmit() bool {
	if p.inUse < p.capacity {
		p.inUse++
		return true
	}
	return false
}

func (p *ChargingPool) Release() error {
	if p.inUse == 0 {
		return ErrNoChargerInUse
	}
	p.inUse--
	return nil
}

func (p *ChargingPool) Available() bool {
	return p.inUse < p.capacity
}

func (p *ChargingPool) InUse() int {
	return p.inUse
}

func (p *ChargingPool) Capacity() int {
	return p.capacity
}

type PoolStats struct {
	Capacity int
	InUse    int
}

func (p *ChargingPool) Stats() PoolStats {
	return PoolStats{Capacity: p.capacity, InUse: p.inUse}
}

func (p *ChargingPool) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("capacity", p.capacity), slog.Int("in_use", p.inUse))
}

///////////////////////////////////////////////////////////////////////////
// AdmissionQueue

// AdmissionQueue holds the indices of aircraft waiting for a charger, in
// the order their batteries were depleted.
type AdmissionQueue struct {
	indices []int
	queued  map[int]struct{}
}

func NewAdmissionQueue() *AdmissionQueue {
	return &AdmissionQueue{queued: make(map[int]struct{})}
}

func (q *AdmissionQueue) Enqueue(idx int) error {
	if _, ok := q.queued[idx]; ok {
		return ErrAlreadyQueued
	}
	q.indices = append(q.indices, idx)
	q.queued[idx] = struct{}{}
	return nil
}

func (q *AdmissionQueue) Front() (int, bool) {
	if len(q.indices) == 0 {
		return 0, false
	}
	return q.indices[0], true
}

func (q *AdmissionQueue) Dequeue() (int, bool) {
	if len(q.indices) == 0 {
		return 0, false
	}
	idx := q.indices[0]
	q.indices = q.indices[1:]
	delete(q.queued, idx)
	if len(q.indices) == 0 {
		// Reclaim the backing array rather than letting it creep forward.
		q.indices = nil
	}
	return idx, true
}

func (q *AdmissionQueue) Len() int {
	return len(q.indices)
}

func (q *AdmissionQueue) Contains(idx int) bool {
	_, ok := q.queued[idx]
	return ok
}

// Indices returns a copy of the queued indices, front first.
func (q *AdmissionQueue) Indices() []int {
	return slices.Clone(q.indices)
}
