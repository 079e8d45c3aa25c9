// server/errors.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"errors"
)

var (
	ErrDuplicateRunID = errors.New("Duplicate run ID")
	ErrInvalidRunID   = errors.New("Invalid run ID")
	ErrUnknownRun     = errors.New("Unknown run")
)
