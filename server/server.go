// server/server.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package server serves the results of finished runs over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/evtolsim/evtolsim/log"
	"github.com/evtolsim/evtolsim/report"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const DefaultPort = 6503

// ResultsServer provides read-only access to a fixed set of completed
// runs; since the results never change it needs no locking.
type ResultsServer struct {
	results   []*report.Results
	byID      map[uuid.UUID]*report.Results
	startTime time.Time
	lg        *log.Logger
}

func NewResultsServer(results []*report.Results, lg *log.Logger) (*ResultsServer, error) {
	rs := &ResultsServer{
		results:   results,
		byID:      make(map[uuid.UUID]*report.Results),
		startTime: time.Now(),
		lg:        lg,
	}
	for _, r := range results {
		if _, ok := rs.byID[r.RunID]; ok {
			return nil, fmt.Errorf("%s: %w", r.RunID, ErrDuplicateRunID)
		}
		rs.byID[r.RunID] = r
	}
	return rs, nil
}

// Handler returns the router for all of the server's endpoints.
func (rs *ResultsServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/sup", func(w http.ResponseWriter, r *http.Request) {
		rs.statsHandler(w, r)
		rs.lg.Infof("%s: served stats request", r.URL.String())
	})

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", rs.handleList)
		r.Get("/{id}", rs.handleRun)
		r.Get("/{id}/aircraft", rs.handleAircraft)
		r.Get("/{id}/text", rs.handleText)
		r.Get("/{id}/xlsx", rs.handleXLSX)
	})

	r.HandleFunc("/debug/pprof/", pprof.Index)
	r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	r.Handle("/debug/pprof/{profile}", http.HandlerFunc(pprof.Index))

	return r
}

// Listen tries successive ports starting at port until one is free and
// returns the listener.
func Listen(port int) (net.Listener, error) {
	var err error
	for i := range 10 {
		var listener net.Listener
		if listener, err = net.Listen("tcp", ":"+strconv.Itoa(port+i)); err == nil {
			return listener, nil
		}
	}
	return nil, err
}

// Serve runs the server on the listener until ctx is canceled.
func (rs *ResultsServer) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           rs.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			rs.lg.Warnf("HTTP server shutdown: %v", err)
		}
	}()

	rs.lg.Infof("Serving %d runs on %s", len(rs.results), listener.Addr())
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		rs.lg.Errorf("HTTP server error: %v", err)
		return err
	}
	return nil
}
