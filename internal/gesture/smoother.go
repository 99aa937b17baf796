package gesture

// DefaultWindowSize is the number of consecutive identical classifications
// required before a gesture transition is committed. At 15 detection cycles
// per second this trades roughly one second of reaction latency for a state
// that never flickers on single-frame misclassifications.
const DefaultWindowSize = 15

// Smoother debounces the classifier's noisy per-frame output. It keeps a
// fixed-capacity ring of the most recent classifications and commits a
// transition only when the whole window agrees with the newest sample.
// The committed label is the only gesture value the rest of the pipeline
// ever observes.
//
// Smoother is not safe for concurrent use; it belongs to the simulation
// tick alone.
type Smoother struct {
	window  []Label
	next    int
	filled  int
	current Label
}

// NewSmoother creates a Smoother with the given window size and initial
// committed label. Sizes below 1 fall back to DefaultWindowSize.
func NewSmoother(size int, initial Label) *Smoother {
	if size < 1 {
		size = DefaultWindowSize
	}
	return &Smoother{
		window:  make([]Label, size),
		current: initial,
	}
}

// Observe pushes one per-frame classification, evicting the oldest sample
// once the window is full. It returns the committed label and whether this
// observation changed it. Until the window first fills, the previous
// committed label holds.
func (s *Smoother) Observe(label Label) (Label, bool) {
	s.window[s.next] = label
	s.next = (s.next + 1) % len(s.window)
	if s.filled < len(s.window) {
		s.filled++
	}

	if s.filled < len(s.window) || label == s.current {
		return s.current, false
	}

	for _, l := range s.window {
		if l != label {
			return s.current, false
		}
	}

	s.current = label
	return s.current, true
}

// Current returns the committed label.
func (s *Smoother) Current() Label {
	return s.current
}

// WindowSize returns the configured window capacity.
func (s *Smoother) WindowSize() int {
	return len(s.window)
}

// Reset clears the window and recommits the given label.
func (s *Smoother) Reset(label Label) {
	s.next = 0
	s.filled = 0
	s.current = label
}
