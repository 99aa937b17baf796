package shape

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestGenerators_LengthContract(t *testing.T) {
	generators := map[string]func(int) []float32{
		"sphere":    Sphere,
		"heart":     Heart,
		"helix":     Helix,
		"saturn":    Saturn,
		"fireworks": Fireworks,
	}
	counts := []int{0, 1, 1000, 1_000_000}

	for name, gen := range generators {
		for _, n := range counts {
			got := gen(n)
			if len(got) != 3*n {
				t.Errorf("%s(%d) returned %d floats, want %d", name, n, len(got), 3*n)
			}
		}
	}
}

func TestGenerators_NoNaN(t *testing.T) {
	for _, label := range []gesture.Label{
		gesture.LabelIdle, gesture.LabelPeace, gesture.LabelSaturn,
		gesture.LabelHeart, gesture.LabelFireworks,
	} {
		for _, v := range Generate(label, 500) {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("Generate(%q) produced a non-finite coordinate", label)
			}
		}
	}
}

func TestSphere_PointsOnSurface(t *testing.T) {
	pts := Sphere(200)
	for i := 0; i < 200; i++ {
		x, y, z := float64(pts[3*i]), float64(pts[3*i+1]), float64(pts[3*i+2])
		r := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(r-SphereRadius) > 1e-3 {
			t.Fatalf("point %d at radius %f, want %f", i, r, SphereRadius)
		}
	}
}

func TestFireworks_WithinBall(t *testing.T) {
	pts := Fireworks(500)
	for i := 0; i < 500; i++ {
		x, y, z := float64(pts[3*i]), float64(pts[3*i+1]), float64(pts[3*i+2])
		if r := math.Sqrt(x*x + y*y + z*z); r > FireworksRadius+1e-3 {
			t.Fatalf("point %d at radius %f exceeds %f", i, r, FireworksRadius)
		}
	}
}

func TestHelix_StrandParity(t *testing.T) {
	n := 100
	pts := Helix(n)

	// Adjacent particles belong to opposite strands, so their planar
	// positions sit on opposite sides of the axis.
	for i := 0; i+1 < n; i += 2 {
		x0, z0 := float64(pts[3*i]), float64(pts[3*i+2])
		x1, z1 := float64(pts[3*(i+1)]), float64(pts[3*(i+1)+2])
		if x0*x1+z0*z1 > 0 {
			t.Fatalf("particles %d and %d are not phase-opposed", i, i+1)
		}
	}
}

func TestGenerate_UnknownLabelFallsBackToSphere(t *testing.T) {
	got := Generate(gesture.Label("bogus"), 64)
	want := Sphere(64)
	for i := range want {
		if got[i] != want[i] {
			t.Fatal("unknown label did not fall back to the sphere shape")
		}
	}
}

func TestPalette_Lookup(t *testing.T) {
	p := DefaultPalette()
	if c := p.Color(gesture.LabelHeart); c == DefaultColor {
		t.Error("heart label should have its own palette entry")
	}
	if c := p.Color(gesture.Label("bogus")); c != DefaultColor {
		t.Errorf("unmapped label color = %+v, want DefaultColor", c)
	}
}
