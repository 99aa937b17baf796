package app

import (
	"math"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/lifecycle"
	"github.com/ayusman/mudra/internal/shape"
)

// testApp builds a ready pipeline without touching the camera or a real
// detector: assets load normally, the AI init step is skipped.
func testApp(t *testing.T, windowSize int) *App {
	t.Helper()

	cfg := config.Config{
		Strategy:          config.StrategyCPU,
		ParticleCount:     64,
		SmoothingWindow:   windowSize,
		SceneExtent:       240,
		InteractionRadius: 60,
		RepelGain:         45,
		AttractGain:       18,
		ColorBlendRate:    0.05,
		BlendRate:         0.08,
	}
	a := New(cfg, nil)

	if err := a.life.Advance(lifecycle.StateLoadingAssets); err != nil {
		t.Fatal(err)
	}
	if err := a.loadAssets(); err != nil {
		t.Fatal(err)
	}
	if err := a.life.Advance(lifecycle.StateInitializingAI); err != nil {
		t.Fatal(err)
	}
	if err := a.life.Advance(lifecycle.StateReady); err != nil {
		t.Fatal(err)
	}
	return a
}

func publishHands(a *App, hands []detector.Hand) {
	a.slot.publish(&detector.Result{Hands: hands, At: time.Now()})
}

func TestApp_EndToEndGestureDrivesShape(t *testing.T) {
	const window = 5
	a := testApp(t, window)
	hand := detector.FourFingersHand() // classifies as heart

	// One cycle short of the window: still idle.
	now := 0.0
	for i := 0; i < window-1; i++ {
		publishHands(a, []detector.Hand{hand})
		a.Tick(now)
		now += 1.0 / 60
	}
	if got := a.Snapshot().Gesture; got != gesture.LabelIdle {
		t.Fatalf("gesture committed early: %q", got)
	}

	// The final cycle fills the window and commits.
	publishHands(a, []detector.Hand{hand})
	a.Tick(now)
	if got := a.Snapshot().Gesture; got != gesture.LabelHeart {
		t.Fatalf("gesture = %q after %d unanimous cycles, want heart", got, window)
	}

	// With the gesture held, the cloud converges to the heart generator's
	// output for the same particle count.
	for i := 0; i < 500; i++ {
		now += 1.0 / 60
		publishHands(a, []detector.Hand{hand})
		a.Tick(now)
	}

	targets := shape.Generate(gesture.LabelHeart, a.Engine().Count())
	pos := a.Engine().Positions()
	var norm float64
	for i := range pos {
		norm += math.Abs(float64(pos[i] - targets[i]))
	}
	if norm > 1 {
		t.Errorf("position error norm = %f after convergence window", norm)
	}
}

func TestApp_ThumbsUpSettlesOnSphere(t *testing.T) {
	const window = 3
	a := testApp(t, window)
	hand := detector.ThumbsUpHand()

	now := 0.0
	for i := 0; i < window+200; i++ {
		publishHands(a, []detector.Hand{hand})
		a.Tick(now)
		now += 1.0 / 60
	}

	snap := a.Snapshot()
	if snap.Gesture != gesture.LabelThumbsUp {
		t.Fatalf("gesture = %q, want thumbs_up", snap.Gesture)
	}
	if snap.Shape != gesture.LabelThumbsUp {
		t.Errorf("engine shape = %q, want thumbs_up", snap.Shape)
	}

	// Thumbs-up targets the sphere generator; every particle should sit
	// near the sphere surface once settled.
	const radius = shape.SphereRadius
	pos := a.Engine().Positions()
	for i := 0; i < a.Engine().Count(); i++ {
		x := float64(pos[3*i])
		y := float64(pos[3*i+1])
		z := float64(pos[3*i+2])
		r := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(r-radius) > 1 {
			t.Fatalf("particle %d at radius %f, want ~%v", i, r, radius)
		}
	}
}

func TestApp_TickReusesStaleResultWithoutReobserving(t *testing.T) {
	a := testApp(t, 2)
	hand := detector.FourFingersHand()

	// A single detection cycle observed across many ticks must count once
	// toward the smoothing window, not commit by repetition.
	publishHands(a, []detector.Hand{hand})
	for i := 0; i < 20; i++ {
		a.Tick(float64(i) / 60)
	}
	if got := a.Snapshot().Gesture; got != gesture.LabelIdle {
		t.Fatalf("gesture = %q from a single reused cycle, want idle", got)
	}

	// A second genuine cycle completes the window.
	publishHands(a, []detector.Hand{hand})
	a.Tick(1)
	if got := a.Snapshot().Gesture; got != gesture.LabelHeart {
		t.Fatalf("gesture = %q after second cycle, want heart", got)
	}
}

func TestApp_TickBeforeReadyIsNoop(t *testing.T) {
	a := New(config.Config{Strategy: config.StrategyCPU, SmoothingWindow: 3}, nil)
	a.Tick(0) // must not panic with no engine built
	if got := a.Snapshot().State; got != lifecycle.StateBootstrap {
		t.Errorf("state = %q, want bootstrap", got)
	}
}

func TestApp_EmptyCycleDecaysToIdle(t *testing.T) {
	a := testApp(t, 2)
	hand := detector.FourFingersHand()

	publishHands(a, []detector.Hand{hand})
	a.Tick(0)
	publishHands(a, []detector.Hand{hand})
	a.Tick(0.1)
	if a.Snapshot().Gesture != gesture.LabelHeart {
		t.Fatal("setup commit failed")
	}

	// Hands leaving the frame publish empty cycles; the committed gesture
	// decays back to idle after a full window of them.
	publishHands(a, nil)
	a.Tick(0.2)
	publishHands(a, nil)
	a.Tick(0.3)
	if got := a.Snapshot().Gesture; got != gesture.LabelIdle {
		t.Errorf("gesture = %q after empty window, want idle", got)
	}
}

func TestResultSlot_LatestWins(t *testing.T) {
	var s resultSlot

	if r, seq := s.latest(); r != nil || seq != 0 {
		t.Fatal("empty slot must return nil at sequence 0")
	}

	r1 := &detector.Result{At: time.Now()}
	r2 := &detector.Result{At: time.Now()}
	s.publish(r1)
	s.publish(r2)

	r, seq := s.latest()
	if r != r2 {
		t.Error("latest did not return the newest result")
	}
	if seq != 2 {
		t.Errorf("seq = %d, want 2", seq)
	}
	if s.overrunCount() != 1 {
		t.Errorf("overruns = %d, want 1", s.overrunCount())
	}

	// Rereads return the same result and sequence.
	if r, seq2 := s.latest(); r != r2 || seq2 != seq {
		t.Error("reread changed the observed result")
	}
}

func TestResultSlot_ClosedRejectsPublish(t *testing.T) {
	var s resultSlot
	s.publish(&detector.Result{})
	s.close()

	late := &detector.Result{}
	s.publish(late)

	if r, seq := s.latest(); r == late || seq != 1 {
		t.Error("publish after close must be dropped")
	}
}
