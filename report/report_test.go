// report/report_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/log"
	"github.com/evtolsim/evtolsim/rand"
	"github.com/evtolsim/evtolsim/sim"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/xuri/excelize/v2"
)

func makeTestResults(t *testing.T, seed uint64, hours float64) *Results {
	t.Helper()

	pt := fleet.DefaultProfileTable()
	r := rand.MakeSeeded(seed)
	aircraft, err := fleet.AssignTypes(r, 20, pt)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	cfg := sim.ConfigForHours(pt.TicksPerMinute(), hours, sim.DefaultChargerCount)
	s, err := sim.NewSim(cfg, pt, aircraft, sim.MakeRandFaults(r), log.Discard())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	res, err := MakeResults(s, seed, 0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	return res
}

func TestMakeResultsIncomplete(t *testing.T) {
	pt := fleet.DefaultProfileTable()
	s, err := sim.NewSim(sim.ConfigForHours(pt.TicksPerMinute(), 1, 3), pt, fleet.MakeFleet(pt.Types()...),
		sim.NoFaults, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := MakeResults(s, 0, 0); !errors.Is(err, ErrRunIncomplete) {
		t.Errorf("expected ErrRunIncomplete, got %v", err)
	}
}

func TestWriteText(t *testing.T) {
	res := makeTestResults(t, 1, 1)

	var buf bytes.Buffer
	if err := WriteText(&buf, res); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Run line, column headers, five types and the total.
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], res.RunID.String()) || !strings.Contains(lines[0], "20 aircraft") {
		t.Errorf("unexpected header %q", lines[0])
	}
	for i, vt := range fleet.DefaultProfileTable().Types() {
		if !strings.Contains(lines[i+2], string(vt)) {
			t.Errorf("line %q should be for %s", lines[i+2], vt)
		}
	}
	if !strings.Contains(lines[7], "Total") {
		t.Errorf("last line %q should be the total", lines[7])
	}

	buf.Reset()
	if err := WriteAircraft(&buf, res); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 21 {
		t.Errorf("expected header and 20 aircraft lines, got %d", n)
	}
}

func TestWriteTextDegenerate(t *testing.T) {
	res := makeTestResults(t, 2, 1)
	// Alpha can't finish a flight in an hour, so it never charges.
	var alpha int
	for i, s := range res.Summaries {
		if s.Type == fleet.Alpha {
			alpha = i
		}
	}
	if !res.Summaries[alpha].NoChargeSessions {
		t.Fatalf("expected Alpha to have no charge sessions in one hour: %+v", res.Summaries[alpha])
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, res); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Errorf("NaN in report:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	res := makeTestResults(t, 3, 3)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, []*Results{res}, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	js := buf.String()

	// Top-level keys come out in the order they were set.
	order := []string{"run_id", "seed", "replicate", "created", "config", "profiles",
		"summaries", "totals", "aircraft"}
	last := -1
	for _, k := range order {
		idx := strings.Index(js, "\n    \""+k+"\"")
		if idx <= last {
			t.Errorf("key %s out of order", k)
		}
		last = idx
	}

	var runs []struct {
		RunID     string `json:"run_id"`
		Seed      uint64 `json:"seed"`
		Summaries []struct {
			Type           string  `json:"type"`
			Aircraft       int     `json:"aircraft"`
			PassengerMiles float64 `json:"passenger_miles"`
		} `json:"summaries"`
		Aircraft []map[string]any `json:"aircraft"`
	}
	if err := json.Unmarshal(buf.Bytes(), &runs); err != nil {
		t.Fatalf("unable to parse report: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != res.RunID.String() || runs[0].Seed != 3 {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if len(runs[0].Summaries) != 5 || len(runs[0].Aircraft) != 20 {
		t.Errorf("expected 5 summaries and 20 aircraft, got %d and %d", len(runs[0].Summaries), len(runs[0].Aircraft))
	}
	for i, s := range runs[0].Summaries {
		if s.Type != string(res.Summaries[i].Type) || s.PassengerMiles != res.Summaries[i].PassengerMiles {
			t.Errorf("summary %d mismatch: %+v vs %+v", i, s, res.Summaries[i])
		}
	}

	if err := WriteJSON(&buf, nil, false); !errors.Is(err, ErrNoResults) {
		t.Errorf("expected ErrNoResults, got %v", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	results := []*Results{makeTestResults(t, 4, 2), makeTestResults(t, 5, 2)}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, results); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("unable to read workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(rows) != 1+2*5 {
		t.Errorf("expected 11 summary rows, got %d", len(rows))
	}
	if rows[1][0] != results[0].RunID.String() || rows[1][5] != "Alpha" {
		t.Errorf("unexpected first row %v", rows[1])
	}

	rows, err = f.GetRows(aircraftSheet)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(rows) != 1+2*20 {
		t.Errorf("expected 41 aircraft rows, got %d", len(rows))
	}
}

func TestSaveLoad(t *testing.T) {
	results := []*Results{makeTestResults(t, 6, 1), makeTestResults(t, 7, 1)}

	path := filepath.Join(t.TempDir(), "results.msgpack.zst")
	if err := SaveFile(path, results); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if len(loaded) != len(results) {
		t.Fatalf("loaded %d results, expected %d", len(loaded), len(results))
	}
	for i, r := range results {
		l := loaded[i]
		if l.RunID != r.RunID || l.Seed != r.Seed || l.Config != r.Config || !l.Created.Equal(r.Created) {
			t.Errorf("run %d: header mismatch %+v vs %+v", i, l, r)
		}
		for j := range r.Aircraft {
			if l.Aircraft[j] != r.Aircraft[j] {
				t.Errorf("run %d aircraft %d: %+v vs %+v", i, j, l.Aircraft[j], r.Aircraft[j])
			}
		}
		for j := range r.Summaries {
			if l.Summaries[j] != r.Summaries[j] {
				t.Errorf("run %d summary %d: %+v vs %+v", i, j, l.Summaries[j], r.Summaries[j])
			}
		}
	}
}

func TestLoadVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	if err := msgpack.NewEncoder(zw).Encode(archive{Version: ArchiveVersion + 1}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	zw.Close()

	if _, err := Load(&buf); !errors.Is(err, ErrArchiveVersion) {
		t.Errorf("expected ErrArchiveVersion, got %v", err)
	}
}
