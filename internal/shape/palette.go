package shape

import "github.com/ayusman/mudra/internal/gesture"

// RGB is a color with channels in [0,1], matching the particle color buffer.
type RGB struct {
	R, G, B float32
}

// DefaultColor is used for labels without a palette entry.
var DefaultColor = RGB{R: 0.55, G: 0.65, B: 0.9}

// Palette maps gesture labels to particle colors. A Palette with overrides
// from the preset store is built at startup; the zero map falls through to
// the defaults.
type Palette map[gesture.Label]RGB

// DefaultPalette returns the built-in label colors.
func DefaultPalette() Palette {
	return Palette{
		gesture.LabelIdle:      {R: 0.35, G: 0.55, B: 0.95},
		gesture.LabelFist:      {R: 0.35, G: 0.55, B: 0.95},
		gesture.LabelThumbsUp:  {R: 0.3, G: 0.85, B: 1.0},
		gesture.LabelPeace:     {R: 0.4, G: 0.95, B: 0.5},
		gesture.LabelSaturn:    {R: 1.0, G: 0.78, B: 0.25},
		gesture.LabelHeart:     {R: 1.0, G: 0.3, B: 0.45},
		gesture.LabelClasp:     {R: 1.0, G: 0.4, B: 0.55},
		gesture.LabelFireworks: {R: 1.0, G: 0.55, B: 0.15},
	}
}

// Color returns the color for the label, or DefaultColor if unmapped.
func (p Palette) Color(label gesture.Label) RGB {
	if c, ok := p[label]; ok {
		return c
	}
	return DefaultColor
}
