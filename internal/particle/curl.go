package particle

import "math"

// CurlField is a divergence-free 3D vector field derived from a scalar
// value-noise lattice. The field is the curl of a vector potential whose
// three components are independent noise samples, so its divergence is zero
// by construction and particles drifting along it neither bunch up nor
// thin out. Time shifts the lattice so the drift stays organic.
type CurlField struct {
	scale float64
	seed  uint64
}

// NewCurlField creates a field with the given spatial frequency. Smaller
// scales give broader, slower swirls.
func NewCurlField(scale float64, seed int64) *CurlField {
	if scale <= 0 {
		scale = 0.01
	}
	return &CurlField{scale: scale, seed: uint64(seed)*0x9e3779b97f4a7c15 + 1}
}

// At samples the field at a world position and time.
func (f *CurlField) At(x, y, z, t float64) (vx, vy, vz float64) {
	const eps = 0.75

	sx := x * f.scale
	sy := y * f.scale
	sz := z*f.scale + t*0.12

	// Central differences of the three potential components.
	dp2dy := (f.potential(2, sx, sy+eps, sz) - f.potential(2, sx, sy-eps, sz)) / (2 * eps)
	dp1dz := (f.potential(1, sx, sy, sz+eps) - f.potential(1, sx, sy, sz-eps)) / (2 * eps)
	dp0dz := (f.potential(0, sx, sy, sz+eps) - f.potential(0, sx, sy, sz-eps)) / (2 * eps)
	dp2dx := (f.potential(2, sx+eps, sy, sz) - f.potential(2, sx-eps, sy, sz)) / (2 * eps)
	dp1dx := (f.potential(1, sx+eps, sy, sz) - f.potential(1, sx-eps, sy, sz)) / (2 * eps)
	dp0dy := (f.potential(0, sx, sy+eps, sz) - f.potential(0, sx, sy-eps, sz)) / (2 * eps)

	return dp2dy - dp1dz, dp0dz - dp2dx, dp1dx - dp0dy
}

// potential is one component of the vector potential: value noise over a
// hashed integer lattice with smoothstep interpolation, range [-1,1].
func (f *CurlField) potential(component int, x, y, z float64) float64 {
	// Decorrelate the three components by shifting the lattice.
	off := float64(component) * 37.61
	x += off
	y += off * 1.7
	z += off * 2.3

	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := smooth(x-x0), smooth(y-y0), smooth(z-z0)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }

	c000 := f.lattice(ix, iy, iz)
	c100 := f.lattice(ix+1, iy, iz)
	c010 := f.lattice(ix, iy+1, iz)
	c110 := f.lattice(ix+1, iy+1, iz)
	c001 := f.lattice(ix, iy, iz+1)
	c101 := f.lattice(ix+1, iy, iz+1)
	c011 := f.lattice(ix, iy+1, iz+1)
	c111 := f.lattice(ix+1, iy+1, iz+1)

	return lerp(
		lerp(lerp(c000, c100, fx), lerp(c010, c110, fx), fy),
		lerp(lerp(c001, c101, fx), lerp(c011, c111, fx), fy),
		fz,
	)
}

// lattice hashes an integer lattice point to a value in [-1,1].
func (f *CurlField) lattice(x, y, z int64) float64 {
	h := f.seed
	h ^= uint64(x) * 0xff51afd7ed558ccd
	h = (h << 31) | (h >> 33)
	h ^= uint64(y) * 0xc4ceb9fe1a85ec53
	h = (h << 29) | (h >> 35)
	h ^= uint64(z) * 0x9e3779b97f4a7c15
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 29
	return float64(int64(h)) / float64(math.MaxInt64)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
