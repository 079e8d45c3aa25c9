// fleet/errors.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fleet

import (
	"errors"
)

var (
	ErrDuplicateVehicleType = errors.New("Duplicate vehicle type")
	ErrInvalidProfile       = errors.New("Invalid vehicle profile")
	ErrInvalidTickRate      = errors.New("Ticks per minute must be positive")
	ErrMissingVehicleType   = errors.New("Vehicle type has no aircraft")
	ErrNoProfiles           = errors.New("No vehicle profiles specified")
	ErrTooFewAircraft       = errors.New("Too few aircraft to cover every vehicle type")
	ErrUnknownVehicleType   = errors.New("Unknown vehicle type")
)
