// Package interaction converts hand position and pinch state into a
// scene-space force point for the particle engine.
package interaction

import (
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Mode selects the force applied around the interaction point.
type Mode string

const (
	ModeNone    Mode = "none"
	ModeAttract Mode = "attract"
	ModeRepel   Mode = "repel"
)

// State is the per-frame interaction signal. It is recomputed from scratch
// every frame and never persisted.
type State struct {
	Active bool    `json:"active"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Mode   Mode    `json:"mode"`
}

// DefaultPinchThreshold is the planar thumb-tip to index-tip distance below
// which a pinch registers, in normalized image coordinates.
const DefaultPinchThreshold = 0.055

// Mapper maps the primary hand onto the particle scene. Pinch detection is
// orthogonal to gesture classification: the committed gesture picks the
// target shape while the pinch picks the force mode, and both are read from
// the same hand.
type Mapper struct {
	// Extent is the half-width of the scene in world units; normalized
	// hand coordinates map onto [-Extent, Extent].
	Extent float64
	// PinchThreshold is the pinch trigger distance.
	PinchThreshold float64
	// Mirror flips the x axis so on-screen motion matches a front camera.
	Mirror bool
}

// NewMapper creates a Mapper for a scene of the given half-extent,
// mirrored for a front-facing camera.
func NewMapper(extent float64) *Mapper {
	return &Mapper{
		Extent:         extent,
		PinchThreshold: DefaultPinchThreshold,
		Mirror:         true,
	}
}

// Map computes the interaction state for one frame. The point tracks the
// primary hand's middle knuckle, the same landmark the clasp test uses.
// Mode resolution: pinch wins, then an open palm repels, otherwise none.
func (m *Mapper) Map(hands []detector.Hand, committed gesture.Label) State {
	if len(hands) == 0 {
		return State{Mode: ModeNone}
	}

	center := hands[0].Points[detector.MiddleMCP]
	x := center.X
	if m.Mirror {
		x = 1 - x
	}

	st := State{
		Active: true,
		// Normalized [0,1] maps to [-Extent, Extent]; the y axis flips so
		// up on camera is up in the scene.
		X:    (x*2 - 1) * m.Extent,
		Y:    (1 - center.Y*2) * m.Extent,
		Mode: ModeNone,
	}

	if m.pinched(&hands[0]) {
		st.Mode = ModeAttract
	} else if committed == gesture.LabelFireworks {
		st.Mode = ModeRepel
	}

	return st
}

func (m *Mapper) pinched(h *detector.Hand) bool {
	d := detector.PlanarDist(
		h.Points[detector.ThumbTip],
		h.Points[detector.IndexTip],
	)
	return d < m.PinchThreshold
}
