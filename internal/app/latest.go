package app

import (
	"sync"

	"github.com/ayusman/mudra/internal/detector"
)

// resultSlot decouples the detection worker from the simulation tick with
// latest-wins semantics: a single-slot buffer the worker overwrites and the
// tick reads without ever blocking. No queueing, no backpressure; a fast
// producer simply replaces stale cycles and a fast consumer rereads the
// last one. After close, publishes are dropped so an in-flight detection
// can never write past shutdown.
type resultSlot struct {
	mu       sync.Mutex
	result   *detector.Result
	seq      uint64
	readSeq  uint64
	overruns uint64
	closed   bool
}

// publish stores a completed detection cycle, replacing any unread one.
func (s *resultSlot) publish(r *detector.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.seq > s.readSeq {
		s.overruns++
	}
	s.result = r
	s.seq++
}

// latest returns the most recent result and its sequence number without
// blocking. The result stays available for rereads; callers compare
// sequence numbers to tell a fresh cycle from a reused one.
func (s *resultSlot) latest() (*detector.Result, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readSeq = s.seq
	return s.result, s.seq
}

// close permanently rejects further publishes.
func (s *resultSlot) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// overrunCount returns how many results were overwritten before being read.
func (s *resultSlot) overrunCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overruns
}
