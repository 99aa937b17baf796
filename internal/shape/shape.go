// Package shape generates target point clouds for the particle engine.
// Every generator returns exactly 3*n floats (x,y,z per particle) in world
// units, deterministic for a given label and particle count.
package shape

import (
	"math"
	"math/rand"

	"github.com/ayusman/mudra/internal/gesture"
)

// Geometry constants, in world units. The viewer camera frames roughly
// ±300 units on each axis.
const (
	SphereRadius = 160.0

	HeartScale = 10.0
	HeartDepth = 14.0

	HelixRadius = 100.0
	HelixHeight = 340.0
	HelixTurns  = 3.0

	SaturnCoreRadius = 90.0
	SaturnRingMin    = 140.0
	SaturnRingMax    = 220.0
	SaturnRingTilt   = 0.42 // radians about the x axis
	SaturnRingBand   = 6.0  // half-thickness of the ring in z
	saturnCoreShare  = 0.7

	FireworksRadius = 260.0
)

// goldenAngle spaces points on the Fibonacci sphere lattice.
var goldenAngle = math.Pi * (1 + math.Sqrt(5))

// Generate returns the target positions for the given gesture label.
// Unrecognized labels fall back to the sphere, the neutral shape.
func Generate(label gesture.Label, n int) []float32 {
	switch label {
	case gesture.LabelPeace:
		return Helix(n)
	case gesture.LabelSaturn:
		return Saturn(n)
	case gesture.LabelHeart, gesture.LabelClasp:
		return Heart(n)
	case gesture.LabelFireworks:
		return Fireworks(n)
	default:
		// Idle, fist, thumbs up and anything unknown.
		return Sphere(n)
	}
}

// Sphere distributes n particles on a Fibonacci lattice over the sphere
// surface: phi = acos(1 - 2(i+0.5)/n), theta = i * pi * (1 + sqrt 5).
func Sphere(n int) []float32 {
	out := make([]float32, 3*n)
	for i := 0; i < n; i++ {
		phi := math.Acos(1 - 2*(float64(i)+0.5)/float64(n))
		theta := float64(i) * goldenAngle

		sinPhi := math.Sin(phi)
		out[3*i] = float32(SphereRadius * sinPhi * math.Cos(theta))
		out[3*i+1] = float32(SphereRadius * sinPhi * math.Sin(theta))
		out[3*i+2] = float32(SphereRadius * math.Cos(phi))
	}
	return out
}

// Heart traces the classic parametric heart curve
// x = 16 sin^3 t, y = 13 cos t - 5 cos 2t - 2 cos 3t - cos 4t
// scaled by HeartScale. Depth is a layered sinusoidal offset rather than
// random jitter so the shape is fully deterministic.
func Heart(n int) []float32 {
	out := make([]float32, 3*n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 2 * math.Pi

		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)

		out[3*i] = float32(x * HeartScale)
		out[3*i+1] = float32(y * HeartScale)
		out[3*i+2] = float32(HeartDepth * math.Sin(3*t+float64(i)))
	}
	return out
}

// Helix builds a double helix: two strands interleaved by index parity,
// phase-offset by pi, with y ramping linearly across the full height.
func Helix(n int) []float32 {
	out := make([]float32, 3*n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * HelixTurns * 2 * math.Pi
		offset := 0.0
		if i%2 == 1 {
			offset = math.Pi
		}

		out[3*i] = float32(HelixRadius * math.Cos(t+offset))
		out[3*i+1] = float32(float64(i)/float64(n)*HelixHeight - HelixHeight/2)
		out[3*i+2] = float32(HelixRadius * math.Sin(t+offset))
	}
	return out
}

// Saturn partitions particles roughly 70/30 between an inner Fibonacci
// sphere and a flattened, tilted annulus with random angle and radius.
func Saturn(n int) []float32 {
	core := int(float64(n) * saturnCoreShare)
	out := make([]float32, 0, 3*n)

	inner := Sphere(core)
	for i := 0; i < core; i++ {
		out = append(out,
			inner[3*i]*float32(SaturnCoreRadius/SphereRadius),
			inner[3*i+1]*float32(SaturnCoreRadius/SphereRadius),
			inner[3*i+2]*float32(SaturnCoreRadius/SphereRadius),
		)
	}

	rng := rand.New(rand.NewSource(int64(n)*31 + 7))
	sinT, cosT := math.Sin(SaturnRingTilt), math.Cos(SaturnRingTilt)
	for i := core; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		radius := SaturnRingMin + rng.Float64()*(SaturnRingMax-SaturnRingMin)
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		z := (rng.Float64()*2 - 1) * SaturnRingBand

		// Tilt the ring plane about the x axis.
		out = append(out,
			float32(x),
			float32(y*cosT-z*sinT),
			float32(y*sinT+z*cosT),
		)
	}
	return out
}

// Fireworks scatters particles uniformly within a large ball:
// theta uniform in [0,2pi), phi = acos(2u-1), r = cbrt(u) * radius.
func Fireworks(n int) []float32 {
	out := make([]float32, 3*n)
	rng := rand.New(rand.NewSource(int64(n)*17 + 3))
	for i := 0; i < n; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := math.Cbrt(rng.Float64()) * FireworksRadius

		sinPhi := math.Sin(phi)
		out[3*i] = float32(r * sinPhi * math.Cos(theta))
		out[3*i+1] = float32(r * sinPhi * math.Sin(theta))
		out[3*i+2] = float32(r * math.Cos(phi))
	}
	return out
}
