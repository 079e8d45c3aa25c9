// server/handlers.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/evtolsim/evtolsim/report"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type runInfo struct {
	RunID     string  `json:"run_id"`
	Seed      uint64  `json:"seed"`
	Replicate int     `json:"replicate"`
	Hours     float64 `json:"hours"`
	Aircraft  int     `json:"aircraft"`
	Chargers  int     `json:"chargers"`
}

func makeRunInfo(r *report.Results) runInfo {
	return runInfo{
		RunID:     r.RunID.String(),
		Seed:      r.Seed,
		Replicate: r.Replicate,
		Hours:     r.Config.Hours(),
		Aircraft:  len(r.Aircraft),
		Chargers:  r.Config.ChargerCount,
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
	}
}

func (rs *ResultsServer) lookup(r *http.Request) (*report.Results, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", chi.URLParam(r, "id"), ErrInvalidRunID)
	}
	res, ok := rs.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownRun)
	}
	return res, nil
}

// run wraps handlers for a single run, translating lookup failures into
// HTTP errors.
func (rs *ResultsServer) run(w http.ResponseWriter, r *http.Request) (*report.Results, bool) {
	res, err := rs.lookup(r)
	if errors.Is(err, ErrInvalidRunID) {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	} else if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return res, true
}

func (rs *ResultsServer) handleList(w http.ResponseWriter, r *http.Request) {
	runs := make([]runInfo, 0, len(rs.results))
	for _, res := range rs.results {
		runs = append(runs, makeRunInfo(res))
	}
	writeJSON(w, runs)
}

func (rs *ResultsServer) handleRun(w http.ResponseWriter, r *http.Request) {
	res, ok := rs.run(w, r)
	if !ok {
		return
	}
	o, err := report.ResultsJSON(res, false)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, o)
}

func (rs *ResultsServer) handleAircraft(w http.ResponseWriter, r *http.Request) {
	res, ok := rs.run(w, r)
	if !ok {
		return
	}
	o, err := report.ResultsJSON(res, true)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ac, _ := o.Get("aircraft")
	writeJSON(w, ac)
}

func (rs *ResultsServer) handleText(w http.ResponseWriter, r *http.Request) {
	res, ok := rs.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteText(&buf, res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	buf.WriteString("\n")
	if err := report.WriteAircraft(&buf, res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(buf.Bytes())
}

func (rs *ResultsServer) handleXLSX(w http.ResponseWriter, r *http.Request) {
	res, ok := rs.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, []*report.Results{res}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.RunID.String()+".xlsx"))
	w.Write(buf.Bytes())
}
