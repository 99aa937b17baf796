// Package particle owns the live particle state and advances it toward the
// committed gesture's target shape. Two interchangeable strategies implement
// the same contract: a direct CPU buffer update and a double-buffered
// ping-pong update sized for very large particle counts.
package particle

import (
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interaction"
	"github.com/ayusman/mudra/internal/shape"
)

// Engine advances particle state once per simulation tick. Implementations
// are not safe for concurrent use; the tick loop owns them exclusively.
// Positions and Colors return read-only views for the renderer, valid until
// the next Step.
type Engine interface {
	// Step advances the simulation. now is in seconds on any monotonic
	// scale; label is the committed (smoothed) gesture, never a raw
	// per-frame classification.
	Step(now float64, inter interaction.State, label gesture.Label)

	// Positions returns the live positions, length 3*Count.
	Positions() []float32

	// Colors returns the live colors, length 3*Count.
	Colors() []float32

	// Shape returns the label whose target shape is currently active.
	Shape() gesture.Label

	// Count returns the particle count.
	Count() int
}

// Options configures either engine strategy.
type Options struct {
	// Count is the number of particles. For the ping-pong strategy this
	// is derived from TexWidth*TexHeight instead.
	Count int

	// Palette maps labels to target colors; nil uses the defaults.
	Palette shape.Palette

	// ColorBlendRate is the per-tick exponential blend toward the target
	// color, per channel.
	ColorBlendRate float32

	// BlendRate is the base per-tick exponential blend of a particle
	// toward its forced target position.
	BlendRate float32

	// BlendJitter is the per-particle random addition to BlendRate, fixed
	// at construction so particles never move in lockstep.
	BlendJitter float32

	// InfluenceRadius is the interaction force radius in world units.
	InfluenceRadius float64

	// RepelGain scales the push away from an active repel point.
	RepelGain float64

	// AttractGain scales the pull toward an active attract point.
	AttractGain float64

	// AttractJitter bounds the random scatter injected during attraction
	// so particles never collapse onto a single point.
	AttractJitter float64

	// Seed seeds the engine's private RNG. Zero picks a fixed default.
	Seed int64
}

// Tuning defaults shared by both strategies.
const (
	DefaultColorBlendRate  = 0.05
	DefaultBlendRate       = 0.08
	DefaultBlendJitter     = 0.04
	DefaultInfluenceRadius = 60.0
	DefaultRepelGain       = 45.0
	DefaultAttractGain     = 18.0
	DefaultAttractJitter   = 3.0

	// minDist guards every force computation against division by zero.
	minDist = 1e-6
)

func (o *Options) withDefaults() {
	if o.Palette == nil {
		o.Palette = shape.DefaultPalette()
	}
	if o.ColorBlendRate <= 0 {
		o.ColorBlendRate = DefaultColorBlendRate
	}
	if o.BlendRate <= 0 {
		o.BlendRate = DefaultBlendRate
	}
	if o.BlendJitter < 0 {
		o.BlendJitter = DefaultBlendJitter
	}
	if o.InfluenceRadius <= 0 {
		o.InfluenceRadius = DefaultInfluenceRadius
	}
	if o.RepelGain <= 0 {
		o.RepelGain = DefaultRepelGain
	}
	if o.AttractGain <= 0 {
		o.AttractGain = DefaultAttractGain
	}
	if o.AttractJitter <= 0 {
		o.AttractJitter = DefaultAttractJitter
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
}

// normalizeLabel maps unknown labels to idle so a bad shape id can never
// crash the engine. Callers log the fallback.
func normalizeLabel(label gesture.Label) (gesture.Label, bool) {
	if label.Valid() {
		return label, true
	}
	return gesture.LabelIdle, false
}
