// cmd/evtolsim/main_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/evtolsim/evtolsim/log"
	"github.com/evtolsim/evtolsim/util"
)

func TestRunAllOrderAndDeterminism(t *testing.T) {
	c := DefaultConfig()
	c.DurationHours = []float64{1, 2}
	c.Runs = 2

	var e util.ErrorLogger
	pt := c.Validate(&e)
	if e.HaveErrors() {
		t.Fatal(e.String())
	}

	lg := log.Discard()
	first, err := runAll(c, pt, 1234, lg)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 results, got %d", len(first))
	}
	for i, r := range first {
		wantHours := c.DurationHours[i/c.Runs]
		if got := r.Config.Hours(); got != wantHours {
			t.Errorf("result %d: %g hours, expected %g", i, got, wantHours)
		}
		if r.Seed != 1234+uint64(i) {
			t.Errorf("result %d: seed %d, expected %d", i, r.Seed, 1234+i)
		}
		if r.Replicate != i%c.Runs {
			t.Errorf("result %d: replicate %d, expected %d", i, r.Replicate, i%c.Runs)
		}
	}

	second, err := runAll(c, pt, 1234, lg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if !reflect.DeepEqual(first[i].Summaries, second[i].Summaries) {
			t.Errorf("result %d: summaries differ for the same seed", i)
		}
		if !reflect.DeepEqual(first[i].Aircraft, second[i].Aircraft) {
			t.Errorf("result %d: aircraft differ for the same seed", i)
		}
	}
}

func TestRunFaultTest(t *testing.T) {
	var buf bytes.Buffer
	runFaultTest(&buf, DefaultConfig().Validate(&util.ErrorLogger{}), 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected a line per vehicle type, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "Alpha") || !strings.Contains(lines[0], "in 1000 trials") {
		t.Errorf("unexpected first line %q", lines[0])
	}
}
