package lifecycle

import "testing"

func TestMachine_MonotonicProgression(t *testing.T) {
	m := NewMachine()
	if m.Current() != StateBootstrap {
		t.Fatalf("initial state = %q, want bootstrap", m.Current())
	}

	steps := []State{StateLoadingAssets, StateInitializingAI, StateReady}
	for _, s := range steps {
		if err := m.Advance(s); err != nil {
			t.Fatalf("Advance(%q): %v", s, err)
		}
	}
	if !m.Ready() {
		t.Error("Ready() = false after reaching ready")
	}
}

func TestMachine_RejectsBackwardTransition(t *testing.T) {
	m := NewMachine()
	m.Advance(StateLoadingAssets)
	m.Advance(StateInitializingAI)

	if err := m.Advance(StateLoadingAssets); err == nil {
		t.Error("expected error moving backwards")
	}
	if err := m.Advance(StateInitializingAI); err == nil {
		t.Error("expected error re-entering the current state")
	}
}

func TestMachine_ErrorIsTerminal(t *testing.T) {
	m := NewMachine()
	m.Advance(StateLoadingAssets)
	m.Fail("camera permission denied")

	if m.Current() != StateError {
		t.Fatalf("state = %q, want error", m.Current())
	}
	if m.Err() != "camera permission denied" {
		t.Errorf("Err() = %q", m.Err())
	}
	if err := m.Advance(StateReady); err == nil {
		t.Error("expected error leaving the terminal state")
	}

	// A later failure must not clobber the original message.
	m.Fail("detector crashed")
	if m.Err() != "camera permission denied" {
		t.Errorf("Err() = %q, want the first failure kept", m.Err())
	}
}

func TestMachine_ObserverNotified(t *testing.T) {
	m := NewMachine()

	var states []State
	var msgs []string
	m.OnTransition(func(s State, msg string) {
		states = append(states, s)
		msgs = append(msgs, msg)
	})

	m.Advance(StateLoadingAssets)
	m.Fail("boom")

	if len(states) != 2 || states[0] != StateLoadingAssets || states[1] != StateError {
		t.Fatalf("observed states = %v", states)
	}
	if msgs[1] != "boom" {
		t.Errorf("error message = %q, want boom", msgs[1])
	}
}
