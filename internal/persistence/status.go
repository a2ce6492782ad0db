package persistence

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

var ErrInvalidTransition = errors.New("pagekit persistence: invalid status transition")

// Status is the transient sync state of the document. It is never persisted.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSaving    Status = "saving"
	StatusSaved     Status = "saved"
	StatusLocalOnly Status = "local-only"
	StatusError     Status = "error"
)

// Event drives a status transition.
type Event string

const (
	EventLoad          Event = "load"
	EventRemoteLoaded  Event = "remote_loaded"
	EventLocalFallback Event = "local_fallback"
	EventLoadFailed    Event = "load_failed"
	EventSchedule      Event = "schedule"
	EventSaved         Event = "saved"
	EventSaveFailed    Event = "save_failed"
)

var transitions = map[Status]map[Event]Status{
	StatusIdle: {
		EventLoad: StatusLoading,
	},
	StatusLoading: {
		EventRemoteLoaded:  StatusSaved,
		EventLocalFallback: StatusLocalOnly,
		EventLoadFailed:    StatusError,
	},
	StatusSaved: {
		EventSchedule: StatusSaving,
	},
	StatusLocalOnly: {
		EventSchedule: StatusSaving,
	},
	StatusError: {
		EventSchedule: StatusSaving,
	},
	StatusSaving: {
		EventSchedule:   StatusSaving,
		EventSaved:      StatusSaved,
		EventSaveFailed: StatusError,
	},
}

// Next returns the status reached from s on event.
func Next(s Status, event Event) (Status, bool) {
	next, ok := transitions[s][event]
	return next, ok
}

// Machine holds the current status and applies transitions from the table.
type Machine struct {
	mu     sync.Mutex
	state  Status
	subs   map[int]func(from, to Status)
	nextID int
	logger interfaces.Logger
}

// NewMachine starts in StatusIdle.
func NewMachine(logger interfaces.Logger) *Machine {
	return &Machine{
		state:  StatusIdle,
		subs:   make(map[int]func(from, to Status)),
		logger: logging.Ensure(logger),
	}
}

// Status returns the current status.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fire applies event. Invalid transitions leave the status unchanged and are logged.
func (m *Machine) Fire(event Event) (Status, error) {
	m.mu.Lock()
	from := m.state
	to, ok := Next(from, event)
	if !ok {
		m.mu.Unlock()
		m.logger.Warn("persistence.status.rejected", "status", from, "event", event)
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, from)
	}
	m.state = to
	listeners := make([]func(from, to Status), 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	m.logger.Debug("persistence.status.changed", "from", from, "to", to, "event", event)
	for _, fn := range listeners {
		fn(from, to)
	}
	return to, nil
}

// Subscribe observes status changes and returns a func that removes the observer.
func (m *Machine) Subscribe(fn func(from, to Status)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	key := m.nextID
	m.nextID++
	m.subs[key] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, key)
			m.mu.Unlock()
		})
	}
}
