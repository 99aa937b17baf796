// Package gesture turns raw hand landmarks into a stable, debounced gesture
// state. The Classifier is a pure per-frame geometric rule set; the Smoother
// is the only component allowed to commit a gesture transition.
package gesture

// Label is a discrete classification of a hand pose.
type Label string

const (
	// LabelIdle is the neutral label: no hands, or no rule matched.
	LabelIdle Label = "idle"
	// LabelFist is all four fingers curled with the thumb tucked.
	LabelFist Label = "fist"
	// LabelThumbsUp is the thumb extended with all fingers curled.
	LabelThumbsUp Label = "thumbs_up"
	// LabelPeace is index and middle fingers extended only.
	LabelPeace Label = "peace"
	// LabelSaturn is three non-thumb fingers extended.
	LabelSaturn Label = "saturn"
	// LabelHeart is four non-thumb fingers extended.
	LabelHeart Label = "heart"
	// LabelFireworks is an open palm, thumb and all four fingers extended.
	LabelFireworks Label = "fireworks"
	// LabelClasp is both hands brought together. Outranks every
	// single-hand label.
	LabelClasp Label = "clasp"
)

// Priority orders labels when multiple conditions could match at once.
// Higher wins: the two-hand clasp beats any single-hand pose, named
// combinations beat bare finger counts, and idle loses to everything.
func (l Label) Priority() int {
	switch l {
	case LabelClasp:
		return 4
	case LabelThumbsUp, LabelPeace:
		return 3
	case LabelFist, LabelSaturn, LabelHeart, LabelFireworks:
		return 2
	case LabelIdle:
		return 0
	default:
		return 1
	}
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	switch l {
	case LabelIdle, LabelFist, LabelThumbsUp, LabelPeace,
		LabelSaturn, LabelHeart, LabelFireworks, LabelClasp:
		return true
	}
	return false
}
