// report/results.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package report turns finished simulation runs into text, JSON,
// spreadsheet and archived forms.
package report

import (
	"log/slog"
	"time"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/sim"
	"github.com/evtolsim/evtolsim/stats"

	"github.com/google/uuid"
)

// Results is everything known about one finished run. It is not modified
// after it is made.
type Results struct {
	RunID     uuid.UUID
	Seed      uint64
	Replicate int
	Created   time.Time

	Config    sim.Config
	Profiles  []fleet.ProfileSpec
	Summaries []stats.TypeSummary
	Aircraft  []fleet.Aircraft
}

// MakeResults collects the results of a finished Sim. seed and replicate
// identify the run for later comparison.
func MakeResults(s *sim.Sim, seed uint64, replicate int) (*Results, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !s.Done() {
		return nil, ErrRunIncomplete
	}

	aircraft := s.Aircraft()
	summaries, err := stats.Aggregate(aircraft, s.Profiles())
	if err != nil {
		return nil, err
	}

	return &Results{
		RunID:     uuid.New(),
		Seed:      seed,
		Replicate: replicate,
		Created:   time.Now().UTC(),
		Config:    s.Config(),
		Profiles:  s.Profiles().Specs(),
		Summaries: summaries,
		Aircraft:  aircraft,
	}, nil
}

// ProfileTable rebuilds the profile table the run used.
func (r *Results) ProfileTable() (*fleet.ProfileTable, error) {
	return fleet.NewProfileTable(r.Config.TicksPerMinute, r.Profiles)
}

// Totals returns the fleet-wide summary.
func (r *Results) Totals() stats.TypeSummary {
	return stats.Totals(r.Summaries)
}

func (r *Results) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", r.RunID.String()),
		slog.Uint64("seed", r.Seed),
		slog.Int("replicate", r.Replicate),
		slog.Float64("hours", r.Config.Hours()),
		slog.Int("aircraft", len(r.Aircraft)),
		slog.Int("chargers", r.Config.ChargerCount))
}
