// sim/config.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	gomath "math"
)

type Config struct {
	TicksPerMinute int `json:"ticks_per_minute"`
	// TotalTicks is the index of the last tick run; tick 0 is the
	// initialization tick in which every aircraft takes off.
	TotalTicks   int `json:"total_ticks"`
	ChargerCount int `json:"charger_count"`
}

const DefaultChargerCount = 3

// ConfigForHours returns a Config that runs for the given number of
// simulated hours.
func ConfigForHours(ticksPerMinute int, hours float64, chargers int) Config {
	return Config{
		TicksPerMinute: ticksPerMinute,
		TotalTicks:     int(gomath.Round(hours * 60 * float64(ticksPerMinute))),
		ChargerCount:   chargers,
	}
}

func (c Config) Validate() error {
	if c.TicksPerMinute <= 0 {
		return fmt.Errorf("ticks per minute %d must be positive: %w", c.TicksPerMinute, ErrInvalidConfig)
	}
	if c.TotalTicks < 0 {
		return fmt.Errorf("total ticks %d must not be negative: %w", c.TotalTicks, ErrInvalidConfig)
	}
	if c.ChargerCount <= 0 {
		return fmt.Errorf("charger count %d must be positive: %w", c.ChargerCount, ErrInvalidConfig)
	}
	return nil
}

func (c Config) TicksPerHour() int {
	return 60 * c.TicksPerMinute
}

// Hours returns the simulated duration of the run.
func (c Config) Hours() float64 {
	return float64(c.TotalTicks) / float64(c.TicksPerHour())
}
