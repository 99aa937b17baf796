// Package detector provides hand detection interfaces and types for the
// mudra particle pipeline.
package detector

import (
	"math"
	"time"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a single tracked keypoint. X and Y are normalized image
// coordinates in [0,1]; Z is relative depth as reported by the detector.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand represents the 21 landmarks of one detected hand.
type Hand struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Result is one completed detection cycle: zero, one or two hands.
// The hand at index 0 is the primary hand for single-hand gestures.
type Result struct {
	Hands []Hand    `json:"hands"`
	At    time.Time `json:"at"`
}

// Primary returns the primary hand, or nil if no hands were detected.
func (r *Result) Primary() *Hand {
	if r == nil || len(r.Hands) == 0 {
		return nil
	}
	return &r.Hands[0]
}

// PlanarDist calculates the distance between two landmarks in the image
// plane, ignoring depth. The gesture heuristics operate on screen-space
// relations only; the Z channel from the detector is too noisy to gate on.
func PlanarDist(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Dist3D calculates the full Euclidean distance between two landmarks.
func Dist3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
