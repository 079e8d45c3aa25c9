// report/errors.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package report

import (
	"errors"
)

var (
	ErrArchiveVersion = errors.New("Unsupported results archive version")
	ErrNoResults      = errors.New("No results to write")
	ErrRunIncomplete  = errors.New("Simulation run has not finished")
)
