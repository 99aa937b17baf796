package particle

import (
	"log"
	"math"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interaction"
	"github.com/ayusman/mudra/internal/shape"
)

// Ping-pong tuning.
const (
	DefaultTexWidth  = 512
	DefaultTexHeight = 512

	// DefaultMorphRate ramps the morph factor per tick; the field eases
	// between free flow and the shaped state instead of snapping.
	DefaultMorphRate = 0.03

	// DefaultDriftGain scales the curl-noise drift velocity.
	DefaultDriftGain = 22.0

	// DefaultCurlScale is the spatial frequency of the drift field.
	DefaultCurlScale = 1.0 / 140.0
)

// PingPongEngine is the double-buffered strategy for particle counts in the
// hundreds of thousands to millions. Positions live in a pair of
// width*height "texture" buffers, one particle per texel; every tick reads
// last tick's state from one buffer and writes the new state into the
// other, then the roles swap. The buffer being read is never the buffer
// being written within a tick.
type PingPongEngine struct {
	opts   Options
	width  int
	height int

	bufs  [2][]float32
	read  int // index into bufs holding last tick's state
	write int

	col     []float32
	targets []float32

	label       gesture.Label
	targetColor shape.RGB

	// morph blends free curl drift (0) against the shaped state (1).
	morph      float32
	morphGoal  float32
	curl       *CurlField
	driftGain  float64
	lastTime   float64
	seeded     bool
	warnedOnce bool
}

// NewPingPongEngine creates a ping-pong engine with count = width*height.
// Non-positive dimensions fall back to the defaults.
func NewPingPongEngine(opts Options, width, height int) *PingPongEngine {
	if width <= 0 {
		width = DefaultTexWidth
	}
	if height <= 0 {
		height = DefaultTexHeight
	}
	opts.Count = width * height
	opts.withDefaults()

	n := opts.Count
	e := &PingPongEngine{
		opts:      opts,
		width:     width,
		height:    height,
		read:      0,
		write:     1,
		label:     gesture.LabelIdle,
		morphGoal: 1,
		curl:      NewCurlField(DefaultCurlScale, opts.Seed),
		driftGain: DefaultDriftGain,
	}
	e.bufs[0] = make([]float32, 3*n)
	e.bufs[1] = make([]float32, 3*n)

	e.targets = shape.Generate(e.label, n)
	e.targetColor = opts.Palette.Color(e.label)
	e.col = make([]float32, 3*n)
	for i := 0; i < n; i++ {
		e.col[3*i] = e.targetColor.R
		e.col[3*i+1] = e.targetColor.G
		e.col[3*i+2] = e.targetColor.B
	}

	return e
}

// Step advances one tick: read bufs[read], write bufs[write], swap.
// The very first call is an init pass that seeds the read buffer from the
// neutral shape, since no prior state exists yet.
func (e *PingPongEngine) Step(now float64, inter interaction.State, label gesture.Label) {
	if !e.seeded {
		copy(e.bufs[e.read], e.targets)
		e.lastTime = now
		e.seeded = true
	}

	dt := now - e.lastTime
	e.lastTime = now
	if dt <= 0 || dt > 0.25 {
		dt = 1.0 / 60.0
	}

	e.retarget(label)
	e.blendColors()

	// Ramp the morph factor toward its goal: 0 while idle, 1 when a
	// shaped gesture is committed.
	e.morph += (e.morphGoal - e.morph) * DefaultMorphRate

	src := e.bufs[e.read]
	dst := e.bufs[e.write]
	radius := e.opts.InfluenceRadius

	for i := 0; i < e.opts.Count; i++ {
		x := float64(src[3*i])
		y := float64(src[3*i+1])
		z := float64(src[3*i+2])

		// (i) divergence-free drift for organic idle motion.
		vx, vy, vz := e.curl.At(x, y, z, now)
		x += vx * e.driftGain * dt
		y += vy * e.driftGain * dt
		z += vz * e.driftGain * dt

		// (ii) interaction term with inverse-distance falloff inside the
		// capture radius: zero at the boundary, growing as 1/dist toward
		// the point.
		if inter.Active && inter.Mode != interaction.ModeNone {
			dx := inter.X - x
			dy := inter.Y - y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < radius {
				if dist < 1 {
					// Clamp keeps the 1/dist pull bounded near the point.
					dist = 1
				}
				gain := e.opts.AttractGain
				if inter.Mode == interaction.ModeRepel {
					gain = -e.opts.RepelGain
				}
				pull := gain * (radius/dist - 1) * dt
				x += dx / dist * pull
				y += dy / dist * pull
			}
		}

		// (iii) blend the drifted position toward the shape target by the
		// morph factor.
		m := float64(e.morph) * float64(e.opts.BlendRate)
		x += (float64(e.targets[3*i]) - x) * m
		y += (float64(e.targets[3*i+1]) - y) * m
		z += (float64(e.targets[3*i+2]) - z) * m

		dst[3*i] = float32(x)
		dst[3*i+1] = float32(y)
		dst[3*i+2] = float32(z)
	}

	e.read, e.write = e.write, e.read
}

func (e *PingPongEngine) retarget(label gesture.Label) {
	norm, known := normalizeLabel(label)
	if !known && !e.warnedOnce {
		log.Printf("particle: unknown shape id %q, falling back to %q", label, norm)
		e.warnedOnce = true
	}
	label = norm

	if label == gesture.LabelIdle {
		e.morphGoal = 0
	} else {
		e.morphGoal = 1
	}

	if label == e.label {
		return
	}
	e.label = label
	e.targets = shape.Generate(label, e.opts.Count)
	e.targetColor = e.opts.Palette.Color(label)
}

func (e *PingPongEngine) blendColors() {
	rate := e.opts.ColorBlendRate
	target := [3]float32{e.targetColor.R, e.targetColor.G, e.targetColor.B}
	for i := 0; i < e.opts.Count; i++ {
		for c := 0; c < 3; c++ {
			e.col[3*i+c] += (target[c] - e.col[3*i+c]) * rate
		}
	}
}

// Positions returns the buffer written by the latest Step.
func (e *PingPongEngine) Positions() []float32 { return e.bufs[e.read] }

// Colors returns the live colors, valid until the next Step.
func (e *PingPongEngine) Colors() []float32 { return e.col }

// Shape returns the active target shape label.
func (e *PingPongEngine) Shape() gesture.Label { return e.label }

// Count returns the particle count (texture width * height).
func (e *PingPongEngine) Count() int { return e.opts.Count }

// Texture returns the buffer dimensions.
func (e *PingPongEngine) Texture() (width, height int) { return e.width, e.height }

// Buffers exposes the current read and write buffers for invariant checks;
// the two are always distinct allocations whose roles strictly alternate.
func (e *PingPongEngine) Buffers() (read, write []float32) {
	return e.bufs[e.read], e.bufs[e.write]
}

// Morph returns the current morph factor in [0,1].
func (e *PingPongEngine) Morph() float64 { return float64(e.morph) }
