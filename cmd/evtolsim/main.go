// cmd/evtolsim/main.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// evtolsim runs one or more simulations of an eVTOL fleet sharing a small
// number of chargers and reports per-vehicle-type statistics.

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/log"
	"github.com/evtolsim/evtolsim/rand"
	"github.com/evtolsim/evtolsim/report"
	"github.com/evtolsim/evtolsim/server"
	"github.com/evtolsim/evtolsim/sim"
	"github.com/evtolsim/evtolsim/util"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	cpuprofile   = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	configFile   = flag.String("config", "", "JSON file with run configuration and vehicle profiles")
	writeConfig  = flag.String("writeconfig", "", "write the effective configuration to this file and exit")
	hoursFlag    = flag.String("hours", "", "comma-separated simulated durations in hours (e.g. 1,2,3)")
	seed         = flag.Int64("seed", -1, "random seed; negative to seed from the clock")
	runs         = flag.Int("runs", 0, "number of replicate runs for each duration")
	aircraftFlag = flag.Int("aircraft", 0, "number of aircraft")
	chargers     = flag.Int("chargers", 0, "number of chargers")
	trace        = flag.Bool("trace", false, "print queueing, charging and fault events as they happen")
	perAircraft  = flag.Bool("peraircraft", false, "print per-aircraft results")
	dump         = flag.Bool("dump", false, "dump the final aircraft state of each run")
	faultTest    = flag.Bool("faulttest", false, "run 1000 fault trials per vehicle type and exit")
	outFile      = flag.String("out", "", "write the text report to this file")
	jsonFile     = flag.String("json", "", "write a JSON report to this file")
	xlsxFile     = flag.String("xlsx", "", "write an XLSX workbook to this file")
	saveFile     = flag.String("save", "", "save results (msgpack+zstd) to this file")
	loadFile     = flag.String("load", "", "load saved results instead of running simulations")
	serve        = flag.Bool("serve", false, "serve the results over HTTP until interrupted")
	port         = flag.Int("port", server.DefaultPort, "port to listen on with -serve")
)

func setupSignalHandler(profiler *util.Profiler) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "Caught signal, cleaning up...")
		profiler.Cleanup()
		fmt.Fprintln(os.Stderr, "Cleanup complete, exiting")
		os.Exit(0)
	}()
}

// effectiveConfig loads the config file and applies command-line
// overrides.
func effectiveConfig(e *util.ErrorLogger) Config {
	config := LoadConfig(*configFile, e)

	e.Push("command line")
	defer e.Pop()

	if *hoursFlag != "" {
		if h, err := ParseHours(*hoursFlag); err != nil {
			e.Error(err)
		} else {
			config.DurationHours = h
		}
	}
	if *seed >= 0 {
		s := uint64(*seed)
		config.Seed = &s
	}
	if *runs > 0 {
		config.Runs = *runs
	}
	if *aircraftFlag > 0 {
		config.AircraftCount = *aircraftFlag
	}
	if *chargers > 0 {
		config.ChargerCount = *chargers
	}
	return config
}

func main() {
	flag.Parse()

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	if *cpuprofile != "" || *memprofile != "" {
		setupSignalHandler(&profiler)
	}

	var results []*report.Results
	if *loadFile != "" {
		if results, err = report.LoadFile(*loadFile); err != nil {
			lg.Errorf("%s: %v", *loadFile, err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d runs from %s\n", len(results), *loadFile)
	} else {
		var e util.ErrorLogger
		config := effectiveConfig(&e)
		pt := config.Validate(&e)
		if e.HaveErrors() {
			e.PrintErrors(os.Stderr, lg)
			os.Exit(1)
		}

		if *writeConfig != "" {
			if err := config.Save(*writeConfig); err != nil {
				lg.Errorf("%s: %v", *writeConfig, err)
				os.Exit(1)
			}
			return
		}

		baseSeed := uint64(time.Now().UnixNano())
		if config.Seed != nil {
			baseSeed = *config.Seed
		}

		if *faultTest {
			runFaultTest(os.Stdout, pt, baseSeed)
			return
		}

		start := time.Now()
		if results, err = runAll(config, pt, baseSeed, lg); err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		lg.Info("runs complete", slog.Int("runs", len(results)), slog.Duration("elapsed", time.Since(start)))
	}

	if err := writeReports(os.Stdout, results, lg); err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}

	if *serve {
		serveResults(results, lg)
	}
}

// runFaultTest checks the fault generator by running 1000 independent
// trials with each type's hourly fault probability.
func runFaultTest(w io.Writer, pt *fleet.ProfileTable, seed uint64) {
	const n = 1000
	src := sim.NewRandFaults(seed)
	for _, vt := range pt.Types() {
		p := pt.MustLookup(vt).FaultProbabilityPerHour
		count := sim.RunFaultTrials(src, p, n)
		fmt.Fprintf(w, "%-8s %4d faults in %d trials (p=%.2f, expected %.0f)\n", vt, count, n, p, p*n)
	}
}

type runSpec struct {
	hours     float64
	seed      uint64
	replicate int
}

// runAll runs every replicate of every duration, in parallel. Results
// are returned in duration order and then replicate order.
func runAll(config Config, pt *fleet.ProfileTable, baseSeed uint64, lg *log.Logger) ([]*report.Results, error) {
	var specs []runSpec
	for _, h := range config.DurationHours {
		for rep := range config.Runs {
			specs = append(specs, runSpec{hours: h, seed: baseSeed + uint64(len(specs)), replicate: rep})
		}
	}

	results := make([]*report.Results, len(specs))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, spec := range specs {
		eg.Go(func() error {
			r, err := runOne(config, pt, spec, lg)
			results[i] = r
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(config Config, pt *fleet.ProfileTable, spec runSpec, lg *log.Logger) (*report.Results, error) {
	lg = lg.With(slog.Uint64("seed", spec.seed), slog.Float64("hours", spec.hours))

	r := rand.MakeSeeded(spec.seed)
	aircraft, err := fleet.AssignTypes(r, config.AircraftCount, pt)
	if err != nil {
		return nil, err
	}
	if err := fleet.CheckCoverage(aircraft, pt); err != nil {
		return nil, err
	}

	simConfig := sim.ConfigForHours(config.TicksPerMinute, spec.hours, config.ChargerCount)
	s, err := sim.NewSim(simConfig, pt, aircraft, sim.MakeRandFaults(r), lg)
	if err != nil {
		return nil, err
	}

	var sub *sim.EventsSubscription
	if *trace {
		sub = s.Subscribe()
		defer sub.Unsubscribe()
	}

	for !s.Done() {
		if err := s.Step(); err != nil {
			if *dump {
				godump.Fdump(os.Stderr, s.Aircraft())
			}
			return nil, fmt.Errorf("seed %d, %g hours: %w", spec.seed, spec.hours, err)
		}
		if sub != nil {
			for _, ev := range sub.Get() {
				lg.Debug("event", slog.Any("event", ev))
				fmt.Printf("[seed %d] %s\n", spec.seed, ev.String())
			}
		}
	}

	return report.MakeResults(s, spec.seed, spec.replicate)
}

func writeReports(w io.Writer, results []*report.Results, lg *log.Logger) error {
	var text []io.Writer
	text = append(text, w)
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		text = append(text, f)
	}
	tw := io.MultiWriter(text...)

	for _, r := range results {
		lg.Info("results", slog.Any("run", r), slog.Any("summaries", r.Summaries))

		if err := report.WriteText(tw, r); err != nil {
			return err
		}
		if *perAircraft {
			fmt.Fprintln(tw)
			if err := report.WriteAircraft(tw, r); err != nil {
				return err
			}
		}
		fmt.Fprintln(tw)

		if *dump {
			godump.Dump(r.Aircraft)
		}
	}

	writeFile := func(fn string, write func(io.Writer) error) error {
		if fn == "" {
			return nil
		}
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", fn, err)
		}
		lg.Infof("wrote %s", fn)
		return f.Close()
	}

	if err := writeFile(*jsonFile, func(w io.Writer) error { return report.WriteJSON(w, results, *perAircraft) }); err != nil {
		return err
	}
	if err := writeFile(*xlsxFile, func(w io.Writer) error { return report.WriteXLSX(w, results) }); err != nil {
		return err
	}
	if *saveFile != "" {
		if err := report.SaveFile(*saveFile, results); err != nil {
			return fmt.Errorf("%s: %w", *saveFile, err)
		}
		lg.Infof("saved %d runs to %s", len(results), *saveFile)
	}
	return nil
}

func serveResults(results []*report.Results, lg *log.Logger) {
	rs, err := server.NewResultsServer(results, lg)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
	listener, err := server.Listen(*port)
	if err != nil {
		lg.Errorf("Unable to start HTTP server: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Serving results on http://localhost:%d/sup\n", *port)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rs.Serve(ctx, listener); err != nil {
		os.Exit(1)
	}
}
