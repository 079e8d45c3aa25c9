// sim/eventstream.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/evtolsim/evtolsim/fleet"
	"github.com/evtolsim/evtolsim/log"
)

// EventStream provides a basic pub/sub event interface: the Sim posts
// aircraft lifecycle events and any number of subscribers can collect
// them. Events posted when there are no subscribers are dropped.
type EventStream struct {
	mu            sync.Mutex
	events        []Event
	subscriptions map[*EventsSubscription]any
	lg            *log.Logger
}

type EventsSubscription struct {
	stream *EventStream
	// offset is offset in the EventStream stream array up to which the
	// subscriber has consumed events so far.
	offset int
}

func NewEventStream(lg *log.Logger) *EventStream {
	return &EventStream{
		subscriptions: make(map[*EventsSubscription]any),
		lg:            lg,
	}
}

// Subscribe registers a new subscriber to the stream. Events posted
// before the subscription was made are never reported to it.
func (e *EventStream) Subscribe() *EventsSubscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := &EventsSubscription{
		stream: e,
		offset: len(e.events),
	}
	e.subscriptions[sub] = nil
	return sub
}

func (e *EventsSubscription) Unsubscribe() {
	e.stream.mu.Lock()
	defer e.stream.mu.Unlock()

	if _, ok := e.stream.subscriptions[e]; !ok {
		e.stream.lg.Errorf("Attempted to unsubscribe invalid subscription: %+v", e)
	}
	delete(e.stream.subscriptions, e)
	e.stream.compact()
	e.stream = nil
}

func (e *EventStream) Post(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lg.Debug("posted event", slog.Any("event", event))

	if len(e.subscriptions) > 0 {
		e.events = append(e.events, event)
	}
}

// Get returns all of the events from the stream since the last time Get
// was called on the subscription.
func (e *EventsSubscription) Get() []Event {
	e.stream.mu.Lock()
	defer e.stream.mu.Unlock()

	if _, ok := e.stream.subscriptions[e]; !ok {
		e.stream.lg.Errorf("Attempted to get with unregistered subscription: %+v", e)
		return nil
	}

	events := slices.Clone(e.stream.events[e.offset:])
	e.offset = len(e.stream.events)
	e.stream.compact()

	return events
}

// compact reclaims storage for events that all subscribers have seen.
func (e *EventStream) compact() {
	minOffset := len(e.events)
	for sub := range e.subscriptions {
		minOffset = min(minOffset, sub.offset)
	}

	if minOffset > cap(e.events)/2 {
		n := len(e.events) - minOffset

		copy(e.events, e.events[minOffset:])
		e.events = e.events[:n]

		for sub := range e.subscriptions {
			sub.offset -= minOffset
		}
	}
}

func (e *EventStream) LogValue() slog.Value {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := []slog.Attr{slog.Int("len", len(e.events)), slog.Int("cap", cap(e.events)),
		slog.Int("subscriptions", len(e.subscriptions))}
	if len(e.events) > 0 {
		items = append(items, slog.Any("last_element", e.events[len(e.events)-1]))
	}
	return slog.GroupValue(items...)
}

///////////////////////////////////////////////////////////////////////////

type EventType int

const (
	QueuedEvent EventType = iota
	StartedChargingEvent
	FinishedChargingEvent
	FaultEvent
	NumEventTypes
)

func (t EventType) String() string {
	return []string{"Queued", "StartedCharging", "FinishedCharging", "Fault"}[t]
}

type Event struct {
	Type          EventType
	Tick          int
	Minutes       float64
	Aircraft      int
	VehicleType   fleet.VehicleType
	ChargersInUse int
	QueueLength   int
}

func (e *Event) String() string {
	switch e.Type {
	case QueuedEvent:
		return fmt.Sprintf("%.2f min: aircraft %d (%s) placed in line at position %d, %d chargers in use",
			e.Minutes, e.Aircraft, e.VehicleType, e.QueueLength, e.ChargersInUse)
	case StartedChargingEvent:
		return fmt.Sprintf("%.2f min: aircraft %d (%s) started charging, %d chargers in use",
			e.Minutes, e.Aircraft, e.VehicleType, e.ChargersInUse)
	case FinishedChargingEvent:
		return fmt.Sprintf("%.2f min: aircraft %d (%s) completed charging, %d chargers in use",
			e.Minutes, e.Aircraft, e.VehicleType, e.ChargersInUse)
	default:
		return fmt.Sprintf("%.2f min: aircraft %d (%s) %s", e.Minutes, e.Aircraft, e.VehicleType, e.Type)
	}
}

func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", e.Type.String()),
		slog.Int("tick", e.Tick),
		slog.Float64("minutes", e.Minutes),
		slog.Int("aircraft", e.Aircraft),
		slog.String("vehicle_type", string(e.VehicleType)),
		slog.Int("chargers_in_use", e.ChargersInUse),
		slog.Int("queue_length", e.QueueLength))
}
