// cmd/evtolsim/config.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/sim"
	"github.com/evtolsim/evtolsim/util"
)

// Config holds everything that determines a batch of runs. A nil Seed
// means the runs are seeded from the clock.
type Config struct {
	TicksPerMinute int                 `json:"ticks_per_minute"`
	AircraftCount  int                 `json:"aircraft_count"`
	ChargerCount   int                 `json:"charger_count"`
	DurationHours  []float64           `json:"duration_hours"`
	Runs           int                 `json:"runs"`
	Seed           *uint64             `json:"seed,omitempty"`
	Profiles       []fleet.ProfileSpec `json:"profiles"`
}

const DefaultAircraftCount = 20

func DefaultConfig() Config {
	return Config{
		TicksPerMinute: fleet.DefaultTicksPerMinute,
		AircraftCount:  DefaultAircraftCount,
		ChargerCount:   sim.DefaultChargerCount,
		DurationHours:  []float64{3},
		Runs:           1,
		Profiles:       fleet.DefaultProfileSpecs(),
	}
}

// ParseConfig reads a JSON config; fields that aren't present keep their
// default values. Problems are reported to e.
func ParseConfig(contents []byte, e *util.ErrorLogger) Config {
	config := DefaultConfig()

	util.CheckJSON[Config](contents, e)
	if e.HaveErrors() {
		return config
	}

	// Decoding into the default profiles would merge the two lists
	// element by element.
	config.Profiles = nil
	if err := json.Unmarshal(contents, &config); err != nil {
		e.Error(err)
	}
	if config.Profiles == nil {
		config.Profiles = fleet.DefaultProfileSpecs()
	}
	return config
}

// LoadConfig returns the default config if filename is empty and
// otherwise reads the given file.
func LoadConfig(filename string, e *util.ErrorLogger) Config {
	if filename == "" {
		return DefaultConfig()
	}

	e.Push(filename)
	defer e.Pop()

	contents, err := os.ReadFile(filename)
	if err != nil {
		e.Error(err)
		return DefaultConfig()
	}
	return ParseConfig(contents, e)
}

func (c Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func (c Config) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// Validate checks the config and returns the profile table it describes;
// the table is nil if there were errors.
func (c Config) Validate(e *util.ErrorLogger) *fleet.ProfileTable {
	e.Push("config")
	defer e.Pop()

	if c.AircraftCount <= 0 {
		e.ErrorString("\"aircraft_count\" must be positive: %d", c.AircraftCount)
	}
	if c.ChargerCount <= 0 {
		e.ErrorString("\"charger_count\" must be positive: %d", c.ChargerCount)
	}
	if c.Runs <= 0 {
		e.ErrorString("\"runs\" must be positive: %d", c.Runs)
	}
	if len(c.DurationHours) == 0 {
		e.ErrorString("no \"duration_hours\" specified")
	}
	for _, h := range c.DurationHours {
		if !(h > 0) {
			e.ErrorString("\"duration_hours\" entries must be positive: %g", h)
		}
	}

	pt, err := fleet.NewProfileTable(c.TicksPerMinute, c.Profiles)
	if err != nil {
		e.Push("profiles")
		e.Error(err)
		e.Pop()
		return nil
	}
	if c.AircraftCount < pt.Len() {
		e.ErrorString("%d aircraft can't cover %d vehicle types", c.AircraftCount, pt.Len())
	}
	if e.HaveErrors() {
		return nil
	}
	return pt
}

// ParseHours parses a comma-separated list of durations in hours, as
// given to -hours.
func ParseHours(s string) ([]float64, error) {
	var hours []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		h, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: invalid duration: %w", f, err)
		}
		hours = append(hours, h)
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("%q: no durations given", s)
	}
	return hours, nil
}
