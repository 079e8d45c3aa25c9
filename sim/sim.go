// sim/sim.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/log"
	"github.com/evtolsim/evtolsim/rand"

	"github.com/brunoga/deep"
)

// Sim advances a fleet of aircraft through fixed-size ticks. Each tick
// has two phases: first every aircraft is updated in index order (with
// the hourly fault trials following on hour boundaries), then waiting
// aircraft are admitted to free chargers in FIFO order. Because
// admission only happens in the second phase, an aircraft that starts
// charging in a tick accrues its first charge tick in the next one,
// regardless of its position in the aircraft array.
//
// A Sim is not safe for concurrent use; independent runs should each
// have their own.
type Sim struct {
	config   Config
	profiles *fleet.ProfileTable
	aircraft []fleet.Aircraft
	pool     *ChargingPool
	queue    *AdmissionQueue
	faults   FaultSource

	// tick is the index of the next tick to run.
	tick int
	// err latches the first failure; a failed Sim can't be stepped.
	err error

	eventStream *EventStream
	lg          *log.Logger
}

// NewSim returns a Sim that will run the given aircraft, which must all
// be idle with zero counters and have types present in profiles. If
// faults is nil, a randomly seeded RandFaults is used. The aircraft
// slice is copied.
func NewSim(config Config, profiles *fleet.ProfileTable, aircraft []fleet.Aircraft,
	faults FaultSource, lg *log.Logger) (*Sim, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if profiles == nil {
		return nil, ErrNoProfiles
	}
	if profiles.TicksPerMinute() != config.TicksPerMinute {
		return nil, fmt.Errorf("%d vs %d: %w", profiles.TicksPerMinute(), config.TicksPerMinute,
			ErrTickRateMismatch)
	}
	for i, ac := range aircraft {
		if _, ok := profiles.Lookup(ac.Type); !ok {
			return nil, fmt.Errorf("aircraft %d: %s: %w", i, ac.Type, fleet.ErrUnknownVehicleType)
		}
		if ac.Index != i {
			return nil, fmt.Errorf("aircraft %d: index %d: %w", i, ac.Index, ErrAircraftIndexMismatch)
		}
		if !ac.Pristine() {
			return nil, fmt.Errorf("aircraft %d: %w", i, ErrAircraftNotPristine)
		}
	}

	if faults == nil {
		faults = MakeRandFaults(rand.Make())
	}

	s := &Sim{
		config:      config,
		profiles:    profiles,
		aircraft:    append([]fleet.Aircraft(nil), aircraft...),
		pool:        NewChargingPool(config.ChargerCount),
		queue:       NewAdmissionQueue(),
		faults:      faults,
		eventStream: NewEventStream(lg),
		lg:          lg,
	}
	lg.Info("created sim", slog.Any("config", config), slog.Int("aircraft", len(aircraft)))

	return s, nil
}

// Step runs a single tick. Once Step has returned an error, all
// subsequent calls return the same error. Calling Step after the run is
// done is a no-op.
func (s *Sim) Step() error {
	if s.err != nil {
		return s.err
	}
	if s.Done() {
		return nil
	}

	if err := s.step(); err != nil {
		s.err = fmt.Errorf("tick %d: %w: %w", s.tick, ErrSimFailed, err)
		s.lg.Error("simulation failed", slog.Int("tick", s.tick), slog.Any("error", err),
			slog.Any("pool", s.pool), slog.Any("queue", s.queue.Indices()))
		return s.err
	}
	s.tick++
	return nil
}

func (s *Sim) step() error {
	for i := range s.aircraft {
		if err := s.updateAircraft(i); err != nil {
			return err
		}
	}

	if s.tick > 0 && s.tick%s.config.TicksPerHour() == 0 {
		s.checkFaults()
	}

	if err := s.admit(); err != nil {
		return err
	}

	return s.CheckInvariants()
}

// Run steps the simulation until it is done or fails.
func (s *Sim) Run() error {
	for !s.Done() {
		if err := s.Step(); err != nil {
			return err
		}
	}
	s.lg.Info("sim finished", slog.Int("ticks", s.tick), slog.Any("pool", s.pool),
		slog.Int("queued", s.queue.Len()))
	return nil
}

func (s *Sim) updateAircraft(i int) error {
	ac := &s.aircraft[i]
	p := s.profiles.MustLookup(ac.Type)

	switch ac.State {
	case fleet.Idle:
		ac.State = fleet.Flying
		ac.NumFlights++

	case fleet.Flying:
		ac.AirTimeTicks++
		if p.BatteryDepleted(ac.AirTimeTicks) {
			ac.State = fleet.WaitingToCharge
			if err := s.queue.Enqueue(i); err != nil {
				return fmt.Errorf("aircraft %d: %w", i, err)
			}
			s.post(QueuedEvent, ac)
		}

	case fleet.Charging:
		ac.ChargeTimeTicks++
		if p.ChargeComplete(ac.ChargeTimeTicks) {
			if err := s.pool.Release(); err != nil {
				return fmt.Errorf("aircraft %d: %w", i, err)
			}
			ac.State = fleet.Flying
			ac.NumFlights++
			s.post(FinishedChargingEvent, ac)
		}

	case fleet.WaitingToCharge:
		// Nothing happens until admit() finds it a charger.

	default:
		return fmt.Errorf("aircraft %d: %s: %w", i, ac.State, ErrUnreachableState)
	}
	return nil
}

// checkFaults runs one trial per aircraft, whatever its state. Faults
// are only counted; they don't change the aircraft's state.
func (s *Sim) checkFaults() {
	for i := range s.aircraft {
		ac := &s.aircraft[i]
		p := s.profiles.MustLookup(ac.Type)
		if s.faults.Fault(p.FaultProbabilityPerHour) {
			ac.NumFaults++
			s.post(FaultEvent, ac)
		}
	}
}

func (s *Sim) admit() error {
	for s.pool.Available() {
		idx, ok := s.queue.Front()
		if !ok {
			break
		}
		if !s.pool.TryAdmit() {
			return fmt.Errorf("aircraft %d: %w", idx, ErrChargerUnavailable)
		}

		ac := &s.aircraft[idx]
		ac.State = fleet.Charging
		ac.NumChargeSessions++
		s.queue.Dequeue()

		s.post(StartedChargingEvent, ac)
	}
	return nil
}

func (s *Sim) post(t EventType, ac *fleet.Aircraft) {
	s.eventStream.Post(Event{
		Type:          t,
		Tick:          s.tick,
		Minutes:       float64(s.tick) / float64(s.config.TicksPerMinute),
		Aircraft:      ac.Index,
		VehicleType:   ac.Type,
		ChargersInUse: s.pool.InUse(),
		QueueLength:   s.queue.Len(),
	})
}

// CheckInvariants verifies the consistency of the pool, the queue and
// the aircraft states.
func (s *Sim) CheckInvariants() error {
	if s.pool.InUse() < 0 || s.pool.InUse() > s.pool.Capacity() {
		return fmt.Errorf("%d chargers in use with capacity %d: %w", s.pool.InUse(), s.pool.Capacity(),
			ErrInvariantViolation)
	}

	charging := 0
	for i, ac := range s.aircraft {
		if ac.State == fleet.Charging {
			charging++
		}
		if (ac.State == fleet.WaitingToCharge) != s.queue.Contains(i) {
			return fmt.Errorf("aircraft %d: %s but queued=%v: %w", i, ac.State, s.queue.Contains(i),
				ErrInvariantViolation)
		}
	}
	if charging != s.pool.InUse() {
		return fmt.Errorf("%d aircraft charging but %d chargers in use: %w", charging, s.pool.InUse(),
			ErrInvariantViolation)
	}

	seen := make(map[int]struct{}, s.queue.Len())
	for _, idx := range s.queue.indices {
		if _, ok := seen[idx]; ok {
			return fmt.Errorf("aircraft %d queued more than once: %w", idx, ErrInvariantViolation)
		}
		seen[idx] = struct{}{}
	}
	if len(seen) != len(s.queue.queued) {
		return fmt.Errorf("queue holds %d indices but tracks %d: %w", len(seen), len(s.queue.queued),
			ErrInvariantViolation)
	}

	return nil
}

// Tick returns the number of ticks that have been run.
func (s *Sim) Tick() int {
	return s.tick
}

func (s *Sim) Done() bool {
	return s.tick > s.config.TotalTicks
}

// Err returns the error that stopped the Sim, if any.
func (s *Sim) Err() error {
	return s.err
}

// ElapsedMinutes returns the simulated time of the most recently run
// tick.
func (s *Sim) ElapsedMinutes() float64 {
	if s.tick == 0 {
		return 0
	}
	return float64(s.tick-1) / float64(s.config.TicksPerMinute)
}

func (s *Sim) Config() Config {
	return s.config
}

func (s *Sim) Profiles() *fleet.ProfileTable {
	return s.profiles
}

// Aircraft returns a snapshot of the aircraft; changes to it don't affect
// the Sim.
func (s *Sim) Aircraft() []fleet.Aircraft {
	return deep.MustCopy(s.aircraft)
}

func (s *Sim) Pool() PoolStats {
	return s.pool.Stats()
}

func (s *Sim) QueuedIndices() []int {
	return s.queue.Indices()
}

// Subscribe returns a subscription to the Sim's aircraft events.
func (s *Sim) Subscribe() *EventsSubscription {
	return s.eventStream.Subscribe()
}

func (s *Sim) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.tick),
		slog.Any("config", s.config),
		slog.Any("pool", s.pool),
		slog.Any("queue", s.queue.Indices()),
		slog.Any("events", s.eventStream))
}
