// log/log_test.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		s    string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"chatty", slog.LevelInfo, true},
	} {
		lvl, err := ParseLevel(tc.s)
		if (err != nil) != tc.err {
			t.Errorf("%q: got error %v, expected error %v", tc.s, err, tc.err)
		}
		if lvl != tc.want {
			t.Errorf("%q: got level %v, expected %v", tc.s, lvl, tc.want)
		}
	}
}

func TestLoggerLevelsAndCallstack(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("info", &buf)

	lg.Debug("hidden")
	lg.Infof("charger %d released", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unable to parse log record: %v", err)
	}
	if rec["msg"] != "charger 2 released" {
		t.Errorf("unexpected message %v", rec["msg"])
	}
	if _, ok := rec["callstack"]; !ok {
		t.Errorf("callstack attribute missing: %v", rec)
	}
}

func TestNilLogger(t *testing.T) {
	var lg *Logger
	// None of these should crash.
	lg.Debug("x")
	lg.Debugf("x %d", 1)
	lg.Info("x")
	lg.Infof("x %d", 1)
	if lg.With("k", "v") != nil {
		t.Errorf("With on nil logger should return nil")
	}
}

func TestCallstack(t *testing.T) {
	fr := func() []StackFrame { return Callstack(nil) }()
	if len(fr) == 0 {
		t.Fatalf("empty callstack")
	}
	for _, f := range fr {
		if f.File == "" || f.Line == 0 {
			t.Errorf("incomplete frame %s", f)
		}
	}
}
