package gesture

import (
	"github.com/ayusman/mudra/internal/detector"
)

// Classification thresholds. All tests are planar (screen-space x,y);
// relative depth from the detector is never consulted.
const (
	// DefaultClaspThreshold is the maximum planar distance between the two
	// hands' middle-finger knuckles (landmark 9) for a clasp. The knuckle is
	// used rather than the wrist because it sits near the visual center of
	// the hand and is tracked more stably when the palms overlap.
	DefaultClaspThreshold = 0.18

	// DefaultExtendMargin is the multiplicative margin by which a fingertip
	// must be farther from the wrist than its PIP joint to count as extended.
	DefaultExtendMargin = 1.15

	// minHandSpan rejects degenerate hands whose landmarks collapse to a
	// point, as happens with zero-filled payloads from a failing detector.
	minHandSpan = 1e-6
)

// Classifier maps one detection cycle's hands to a gesture label.
// It is pure and stateless; the zero value is not usable, construct with
// NewClassifier.
type Classifier struct {
	// ClaspThreshold is the two-hand proximity threshold.
	ClaspThreshold float64
	// ExtendMargin is the fingertip extension margin.
	ExtendMargin float64
}

// NewClassifier creates a Classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		ClaspThreshold: DefaultClaspThreshold,
		ExtendMargin:   DefaultExtendMargin,
	}
}

// Classify returns the gesture label for one detection cycle.
// Rules are evaluated in priority order, first match wins:
//
//  1. Exactly two hands with middle knuckles within ClaspThreshold -> clasp.
//  2. Named single-hand combinations on the primary hand:
//     thumb only -> thumbs up; index+middle only -> peace.
//  3. Extended finger count: 0 -> fist, 3 -> saturn, 4 -> heart,
//     5 (including thumb) -> fireworks.
//  4. Anything else -> idle.
//
// Malformed input (no hands, degenerate landmarks) yields the idle label;
// Classify never panics.
func (c *Classifier) Classify(hands []detector.Hand) Label {
	if len(hands) == 0 {
		return LabelIdle
	}

	if len(hands) == 2 {
		d := detector.PlanarDist(
			hands[0].Points[detector.MiddleMCP],
			hands[1].Points[detector.MiddleMCP],
		)
		if d < c.ClaspThreshold {
			return LabelClasp
		}
	}

	primary := &hands[0]
	if handSpan(primary) < minHandSpan {
		return LabelIdle
	}

	thumb := c.thumbExtended(primary)
	fingers := c.fingersExtended(primary)
	count := 0
	for _, up := range fingers {
		if up {
			count++
		}
	}

	// Named combinations outrank bare counts.
	if thumb && count == 0 {
		return LabelThumbsUp
	}
	if !thumb && count == 2 && fingers[0] && fingers[1] {
		return LabelPeace
	}

	total := count
	if thumb {
		total++
	}

	switch {
	case total == 0:
		return LabelFist
	case count == 3:
		return LabelSaturn
	case count == 4 && !thumb:
		return LabelHeart
	case total == 5:
		return LabelFireworks
	}

	return LabelIdle
}

// fingersExtended tests the four non-thumb fingers, ordered index, middle,
// ring, pinky. A finger counts as extended iff its tip is farther from the
// wrist than its PIP joint by ExtendMargin, measured in the image plane.
func (c *Classifier) fingersExtended(h *detector.Hand) [4]bool {
	wrist := h.Points[detector.Wrist]
	tips := [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	pips := [4]int{detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}

	var out [4]bool
	for i := 0; i < 4; i++ {
		tipDist := detector.PlanarDist(h.Points[tips[i]], wrist)
		pipDist := detector.PlanarDist(h.Points[pips[i]], wrist)
		out[i] = tipDist > pipDist*c.ExtendMargin
	}
	return out
}

// thumbExtended tests the thumb against the opposite side of the palm:
// extended iff the tip is farther from the pinky knuckle than the IP joint
// is. This holds for a thumb swung away from the palm in any orientation
// without needing 3D joint angles.
func (c *Classifier) thumbExtended(h *detector.Hand) bool {
	pinkyMCP := h.Points[detector.PinkyMCP]
	tipDist := detector.PlanarDist(h.Points[detector.ThumbTip], pinkyMCP)
	ipDist := detector.PlanarDist(h.Points[detector.ThumbIP], pinkyMCP)
	return tipDist > ipDist
}

// handSpan returns the largest planar distance from the wrist to any
// landmark, used to reject degenerate hands.
func handSpan(h *detector.Hand) float64 {
	wrist := h.Points[detector.Wrist]
	max := 0.0
	for i := 1; i < detector.NumLandmarks; i++ {
		if d := detector.PlanarDist(h.Points[i], wrist); d > max {
			max = d
		}
	}
	return max
}
