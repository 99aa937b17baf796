package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture hands below are laid out in normalized image coordinates with the
// wrist at (0.5, 0.8) and fingers pointing up (Y decreases upward). They are
// built to satisfy the planar extension heuristics: an extended finger's tip
// is well past its PIP joint relative to the wrist, a curled finger's tip
// folds back toward the palm.

// buildHand constructs a Hand with the given thumb and finger states.
// fingers is ordered index, middle, ring, pinky.
func buildHand(thumbExtended bool, fingers [4]bool) Hand {
	h := Hand{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Knuckle row across the palm.
	mcps := [4]Point3D{
		{X: 0.46, Y: 0.62}, // index
		{X: 0.50, Y: 0.60}, // middle
		{X: 0.54, Y: 0.62}, // ring
		{X: 0.58, Y: 0.64}, // pinky
	}
	mcpIdx := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	pipIdx := [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
	dipIdx := [4]int{IndexDIP, MiddleDIP, RingDIP, PinkyDIP}
	tipIdx := [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}

	for i := 0; i < 4; i++ {
		mcp := mcps[i]
		h.Points[mcpIdx[i]] = mcp
		if fingers[i] {
			// Straight up from the knuckle.
			h.Points[pipIdx[i]] = Point3D{X: mcp.X, Y: mcp.Y - 0.08}
			h.Points[dipIdx[i]] = Point3D{X: mcp.X, Y: mcp.Y - 0.14}
			h.Points[tipIdx[i]] = Point3D{X: mcp.X, Y: mcp.Y - 0.20}
		} else {
			// Folded back over the palm.
			h.Points[pipIdx[i]] = Point3D{X: mcp.X, Y: mcp.Y - 0.05, Z: -0.03}
			h.Points[dipIdx[i]] = Point3D{X: mcp.X, Y: mcp.Y + 0.02, Z: -0.04}
			h.Points[tipIdx[i]] = Point3D{X: mcp.X, Y: mcp.Y + 0.08, Z: -0.02}
		}
	}

	h.Points[ThumbCMC] = Point3D{X: 0.46, Y: 0.74}
	if thumbExtended {
		// Thumb swung out and up, away from the pinky side.
		h.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.70}
		h.Points[ThumbIP] = Point3D{X: 0.43, Y: 0.66}
		h.Points[ThumbTip] = Point3D{X: 0.40, Y: 0.55}
	} else {
		// Thumb tucked across the palm toward the pinky.
		h.Points[ThumbMCP] = Point3D{X: 0.46, Y: 0.71}
		h.Points[ThumbIP] = Point3D{X: 0.45, Y: 0.70}
		h.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.68}
	}

	return h
}

// FistHand returns a hand with all fingers curled and the thumb tucked.
func FistHand() Hand {
	return buildHand(false, [4]bool{false, false, false, false})
}

// ThumbsUpHand returns a hand with only the thumb extended.
func ThumbsUpHand() Hand {
	return buildHand(true, [4]bool{false, false, false, false})
}

// PeaceHand returns a hand with index and middle fingers extended.
func PeaceHand() Hand {
	return buildHand(false, [4]bool{true, true, false, false})
}

// ThreeFingersHand returns a hand with index, middle and ring extended.
func ThreeFingersHand() Hand {
	return buildHand(false, [4]bool{true, true, true, false})
}

// FourFingersHand returns a hand with all four non-thumb fingers extended.
func FourFingersHand() Hand {
	return buildHand(false, [4]bool{true, true, true, true})
}

// OpenPalmHand returns a hand with thumb and all four fingers extended.
func OpenPalmHand() Hand {
	return buildHand(true, [4]bool{true, true, true, true})
}

// PinchHand returns an open hand whose thumb tip and index tip are touching.
func PinchHand() Hand {
	h := buildHand(true, [4]bool{true, true, true, true})
	h.Points[IndexTip] = Point3D{X: 0.47, Y: 0.48}
	h.Points[ThumbTip] = Point3D{X: 0.48, Y: 0.50}
	return h
}

// ClaspHands returns two hands brought together so that their middle-finger
// knuckles nearly touch.
func ClaspHands() []Hand {
	left := buildHand(true, [4]bool{true, true, true, true})
	right := buildHand(true, [4]bool{true, true, true, true})
	left.Handedness = "Left"

	// Shift both hands so the MiddleMCP landmarks meet near the center.
	shift := func(h *Hand, dx float64) {
		target := Point3D{X: 0.5 + dx, Y: 0.5}
		off := Point3D{
			X: target.X - h.Points[MiddleMCP].X,
			Y: target.Y - h.Points[MiddleMCP].Y,
		}
		for i := range h.Points {
			h.Points[i].X += off.X
			h.Points[i].Y += off.Y
		}
	}
	shift(&left, -0.02)
	shift(&right, 0.02)

	return []Hand{left, right}
}
