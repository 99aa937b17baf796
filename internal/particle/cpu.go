package particle

import (
	"log"
	"math"
	"math/rand"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interaction"
	"github.com/ayusman/mudra/internal/shape"
)

// CPUEngine is the direct buffer strategy: one dense position and color
// slice updated in place every tick. Suited to counts up to the low
// hundreds of thousands.
type CPUEngine struct {
	opts Options

	pos     []float32
	col     []float32
	targets []float32

	label       gesture.Label
	targetColor shape.RGB

	// rates holds each particle's fixed blend rate, jittered at
	// construction so the field never moves as a rigid body.
	rates []float32

	rng      *rand.Rand
	warnedID gesture.Label
}

// NewCPUEngine creates a CPU engine seeded on the neutral shape.
func NewCPUEngine(opts Options) *CPUEngine {
	opts.withDefaults()
	if opts.Count < 0 {
		opts.Count = 0
	}

	e := &CPUEngine{
		opts:  opts,
		label: gesture.LabelIdle,
		rng:   rand.New(rand.NewSource(opts.Seed)),
	}

	n := opts.Count
	e.targets = shape.Generate(e.label, n)
	e.pos = make([]float32, 3*n)
	copy(e.pos, e.targets)

	e.targetColor = opts.Palette.Color(e.label)
	e.col = make([]float32, 3*n)
	for i := 0; i < n; i++ {
		e.col[3*i] = e.targetColor.R
		e.col[3*i+1] = e.targetColor.G
		e.col[3*i+2] = e.targetColor.B
	}

	e.rates = make([]float32, n)
	for i := range e.rates {
		e.rates[i] = opts.BlendRate + e.rng.Float32()*opts.BlendJitter
	}

	return e
}

// Step advances every particle one tick. Each update is a convex blend
// toward a forced target, so with a fixed shape and no interaction the
// position error norm is non-increasing and converges to zero.
func (e *CPUEngine) Step(now float64, inter interaction.State, label gesture.Label) {
	e.retarget(label)
	e.blendColors()

	radius := e.opts.InfluenceRadius
	for i := 0; i < e.opts.Count; i++ {
		tx := float64(e.targets[3*i])
		ty := float64(e.targets[3*i+1])
		tz := float64(e.targets[3*i+2])

		if inter.Active && inter.Mode != interaction.ModeNone {
			dx := tx - inter.X
			dy := ty - inter.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < radius {
				if dist < minDist {
					// Degenerate overlap: push along a fixed unit axis.
					dx, dy, dist = 1, 0, 1
				}
				falloff := (radius - dist) / radius
				switch inter.Mode {
				case interaction.ModeRepel:
					tx += dx / dist * falloff * e.opts.RepelGain
					ty += dy / dist * falloff * e.opts.RepelGain
				case interaction.ModeAttract:
					tx -= dx / dist * falloff * e.opts.AttractGain
					ty -= dy / dist * falloff * e.opts.AttractGain
					// Bounded scatter keeps the cloud from collapsing
					// onto the pinch point.
					tx += (e.rng.Float64()*2 - 1) * e.opts.AttractJitter
					ty += (e.rng.Float64()*2 - 1) * e.opts.AttractJitter
					tz += (e.rng.Float64()*2 - 1) * e.opts.AttractJitter
				}
			}
		}

		rate := e.rates[i]
		e.pos[3*i] += (float32(tx) - e.pos[3*i]) * rate
		e.pos[3*i+1] += (float32(ty) - e.pos[3*i+1]) * rate
		e.pos[3*i+2] += (float32(tz) - e.pos[3*i+2]) * rate
	}
}

func (e *CPUEngine) retarget(label gesture.Label) {
	norm, known := normalizeLabel(label)
	if !known && e.warnedID != label {
		log.Printf("particle: unknown shape id %q, falling back to %q", label, norm)
		e.warnedID = label
	}
	label = norm
	if label == e.label {
		return
	}
	e.label = label
	e.targets = shape.Generate(label, e.opts.Count)
	e.targetColor = e.opts.Palette.Color(label)
}

// blendColors runs the per-channel exponential moving average toward the
// target color. Convergence is asymptotic, not a linear ramp.
func (e *CPUEngine) blendColors() {
	rate := e.opts.ColorBlendRate
	target := [3]float32{e.targetColor.R, e.targetColor.G, e.targetColor.B}
	for i := 0; i < e.opts.Count; i++ {
		for c := 0; c < 3; c++ {
			e.col[3*i+c] += (target[c] - e.col[3*i+c]) * rate
		}
	}
}

// Positions returns the live positions, valid until the next Step.
func (e *CPUEngine) Positions() []float32 { return e.pos }

// Colors returns the live colors, valid until the next Step.
func (e *CPUEngine) Colors() []float32 { return e.col }

// Shape returns the active target shape label.
func (e *CPUEngine) Shape() gesture.Label { return e.label }

// Count returns the particle count.
func (e *CPUEngine) Count() int { return e.opts.Count }
