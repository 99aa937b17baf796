// Package lifecycle tracks the pipeline's startup state machine. The
// simulation tick is gated on Ready; presentation code observes transitions
// instead of poking at shared flags.
package lifecycle

import (
	"fmt"
	"sync"
)

// State is the pipeline lifecycle state.
type State string

const (
	// StateBootstrap is the initial state before anything is loaded.
	StateBootstrap State = "bootstrap"
	// StateLoadingAssets covers preset and palette loading.
	StateLoadingAssets State = "loading_assets"
	// StateInitializingAI covers camera open and detector startup.
	StateInitializingAI State = "initializing_ai"
	// StateReady means the detection and simulation loops may run.
	StateReady State = "ready"
	// StateError is terminal; only an external restart leaves it.
	StateError State = "error"
)

// rank orders the monotonic progression. Error sits outside the ladder.
func (s State) rank() int {
	switch s {
	case StateBootstrap:
		return 0
	case StateLoadingAssets:
		return 1
	case StateInitializingAI:
		return 2
	case StateReady:
		return 3
	default:
		return -1
	}
}

// Machine is a thread-safe lifecycle state holder with observer callbacks.
type Machine struct {
	mu        sync.RWMutex
	state     State
	errMsg    string
	observers []func(State, string)
}

// NewMachine creates a Machine in the bootstrap state.
func NewMachine() *Machine {
	return &Machine{state: StateBootstrap}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the failure message, empty unless the machine is in error.
func (m *Machine) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errMsg
}

// Ready reports whether the pipeline may run.
func (m *Machine) Ready() bool {
	return m.Current() == StateReady
}

// OnTransition registers an observer called after every committed
// transition with the new state and the error message (empty unless error).
// Observers run synchronously under no lock; they must not call back into
// the machine's mutators.
func (m *Machine) OnTransition(fn func(State, string)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Advance moves forward to the given state. Transitions are monotonic:
// moving backwards or out of the terminal error state is rejected.
func (m *Machine) Advance(next State) error {
	m.mu.Lock()
	if m.state == StateError {
		m.mu.Unlock()
		return fmt.Errorf("cannot leave error state for %q", next)
	}
	if next.rank() <= m.state.rank() {
		m.mu.Unlock()
		return fmt.Errorf("invalid transition %q -> %q", m.state, next)
	}
	m.state = next
	observers := m.observers
	m.mu.Unlock()

	for _, fn := range observers {
		fn(next, "")
	}
	return nil
}

// Fail moves to the terminal error state with a human-readable message.
// Reachable from any non-terminal state; a second Fail keeps the first
// message.
func (m *Machine) Fail(msg string) {
	m.mu.Lock()
	if m.state == StateError {
		m.mu.Unlock()
		return
	}
	m.state = StateError
	m.errMsg = msg
	observers := m.observers
	m.mu.Unlock()

	for _, fn := range observers {
		fn(StateError, msg)
	}
}
