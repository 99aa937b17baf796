// Package app wires the mudra pipeline together: camera, hand detection,
// gesture smoothing and the particle engine.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interaction"
	"github.com/ayusman/mudra/internal/lifecycle"
	"github.com/ayusman/mudra/internal/particle"
	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/store"
)

// Detection loop timing constants.
const (
	// IdleFPS is the detection rate while nothing moves.
	IdleFPS = 5
	// ActiveFPS is the detection rate during active tracking.
	ActiveFPS = 15
	// IdleTimeout is how long without motion before dropping back to idle.
	IdleTimeout = 2 * time.Second
)

// Snapshot is the read-only pipeline state handed to presentation code.
// It never feeds back into the simulation.
type Snapshot struct {
	State       lifecycle.State   `json:"state"`
	Err         string            `json:"error,omitempty"`
	Gesture     gesture.Label     `json:"gesture"`
	Shape       gesture.Label     `json:"shape"`
	Interaction interaction.State `json:"interaction"`
	Hands       []detector.Hand   `json:"hands"`
}

// App owns the detection worker and the simulation state. The detection
// worker runs on its own goroutine; everything downstream of the result
// slot (smoother, mapper, engine) is mutated only by Tick, which the
// render loop drives.
type App struct {
	cfg   config.Config
	store *store.Store

	camera capture.Camera
	motion *capture.MotionDetector
	det    detector.Detector

	classifier *gesture.Classifier
	smoother   *gesture.Smoother
	mapper     *interaction.Mapper
	engine     particle.Engine
	life       *lifecycle.Machine

	slot    resultSlot
	lastSeq uint64

	mu       sync.RWMutex
	enabled  bool
	stopCh   chan struct{}
	snapshot Snapshot
}

// New creates an App in the bootstrap state. Nothing heavy happens until
// Start.
func New(cfg config.Config, st *store.Store) *App {
	return &App{
		cfg:        cfg,
		store:      st,
		camera:     capture.NewCamera(cfg.CameraID),
		motion:     capture.NewMotionDetector(cfg.MotionThreshold),
		classifier: gesture.NewClassifier(),
		life:       lifecycle.NewMachine(),
		enabled:    true,
		snapshot:   Snapshot{State: lifecycle.StateBootstrap, Gesture: gesture.LabelIdle},
	}
}

// Start walks the lifecycle ladder and launches the detection worker:
// loading_assets (presets, palette, engine), initializing_ai (camera,
// detector), then ready. Any failure lands in the terminal error state and
// is returned.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.life.Advance(lifecycle.StateLoadingAssets); err != nil {
		return err
	}
	if err := a.loadAssets(); err != nil {
		a.life.Fail(err.Error())
		return err
	}

	if err := a.life.Advance(lifecycle.StateInitializingAI); err != nil {
		return err
	}
	if err := a.initAI(); err != nil {
		a.life.Fail(err.Error())
		return err
	}

	if err := a.life.Advance(lifecycle.StateReady); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	go a.runDetection(a.stopCh)

	log.Println("Pipeline ready")
	return nil
}

// loadAssets builds the palette and particle engine, applying the stored
// preset when one is configured.
func (a *App) loadAssets() error {
	palette := shape.DefaultPalette()
	opts := particle.Options{
		Count:           a.cfg.ParticleCount,
		Palette:         palette,
		ColorBlendRate:  float32(a.cfg.ColorBlendRate),
		BlendRate:       float32(a.cfg.BlendRate),
		InfluenceRadius: a.cfg.InteractionRadius,
		RepelGain:       a.cfg.RepelGain,
		AttractGain:     a.cfg.AttractGain,
	}

	if a.cfg.Preset != "" && a.store != nil {
		p, err := a.store.Presets().GetByName(a.cfg.Preset)
		if err != nil {
			return fmt.Errorf("load preset %q: %w", a.cfg.Preset, err)
		}
		for label, c := range p.Colors {
			palette[label] = c
		}
		opts.Count = p.ParticleCount
		opts.BlendRate = float32(p.BlendRate)
		opts.ColorBlendRate = float32(p.ColorBlendRate)
		opts.InfluenceRadius = p.InteractionRadius
		opts.RepelGain = p.RepelGain
		opts.AttractGain = p.AttractGain
		if p.Strategy != "" {
			a.cfg.Strategy = p.Strategy
		}
		log.Printf("Applied preset %q", p.Name)
	}

	switch a.cfg.Strategy {
	case config.StrategyPingPong:
		a.engine = particle.NewPingPongEngine(opts, a.cfg.TexWidth, a.cfg.TexHeight)
	default:
		a.engine = particle.NewCPUEngine(opts)
	}

	a.smoother = gesture.NewSmoother(a.cfg.SmoothingWindow, gesture.LabelIdle)
	a.mapper = interaction.NewMapper(a.cfg.SceneExtent)
	return nil
}

// initAI opens the camera and picks a detector, preferring MediaPipe with
// the mock as fallback.
func (a *App) initAI() error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.camera.SetFPS(IdleFPS)

	if a.det == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.det = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.det = detector.NewMockDetector()
		}
	}
	return nil
}

// Stop halts the detection worker and releases resources. The slot closes
// first so a detection finishing mid-shutdown cannot publish afterwards.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.slot.close()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if a.det != nil {
		if err := a.det.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Pipeline stopped")
}

// Tick advances the simulation one frame. It must be called from a single
// goroutine (the render loop). A tick never blocks on detection: it reads
// whatever the latest completed cycle is, reusing it freely, and feeds the
// smoother only when the cycle is new.
func (a *App) Tick(now float64) {
	if !a.life.Ready() || a.engine == nil {
		return
	}

	res, seq := a.slot.latest()
	if res != nil && seq != a.lastSeq {
		a.lastSeq = seq
		a.smoother.Observe(a.classifier.Classify(res.Hands))
	}

	var hands []detector.Hand
	if res != nil {
		hands = res.Hands
	}

	committed := a.smoother.Current()
	inter := a.mapper.Map(hands, committed)
	a.engine.Step(now, inter, committed)

	a.mu.Lock()
	a.snapshot = Snapshot{
		State:       a.life.Current(),
		Err:         a.life.Err(),
		Gesture:     committed,
		Shape:       a.engine.Shape(),
		Interaction: inter,
		Hands:       hands,
	}
	a.mu.Unlock()
}

// Snapshot returns the latest pipeline state for presentation code.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Engine returns the particle engine. Its buffers may only be read from
// the goroutine driving Tick.
func (a *App) Engine() particle.Engine {
	return a.engine
}

// Lifecycle returns the lifecycle machine for observers.
func (a *App) Lifecycle() *lifecycle.Machine {
	return a.life
}

// Camera returns the camera, used by the MJPEG stream handler.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// SetDetector injects a detector before Start; tests use this to run the
// pipeline against canned hands.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.det = d
}

// SetEnabled pauses or resumes detection without tearing down the worker.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled reports whether detection is running.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}
