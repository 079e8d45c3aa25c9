// sim/errors.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrAircraftIndexMismatch = errors.New("Aircraft index does not match its position")
	ErrAircraftNotPristine   = errors.New("Aircraft must start idle with zero counters")
	ErrAlreadyQueued         = errors.New("Aircraft is already in the admission queue")
	ErrChargerUnavailable    = errors.New("No charger available for admission")
	ErrInvalidConfig         = errors.New("Invalid simulation configuration")
	ErrInvariantViolation    = errors.New("Simulation invariant violated")
	ErrNoChargerInUse        = errors.New("Released a charger with none in use")
	ErrNoProfiles            = errors.New("No profile table provided")
	ErrSimFailed             = errors.New("Simulation failed")
	ErrTickRateMismatch      = errors.New("Profile table and config disagree on ticks per minute")
	ErrUnreachableState      = errors.New("Aircraft in unreachable state")
)
