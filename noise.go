package libled

import "math"

// --- Vector helpers ---

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float32 { return sqrt32(v.X*v.X + v.Y*v.Y) }

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Mul returns v scaled by s.
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Color converts an RGB triple in [0, 1] to an opaque color, clamping.
func (v Vec3) Color() Color {
	return Color{clampByte(v.X * 255), clampByte(v.Y * 255), clampByte(v.Z * 255), 255}
}

// --- Scalar helpers ---

// Fract returns the fractional part x - floor(x).
func Fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}

// Mix interpolates linearly from a to b by t.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MixVec3 interpolates each component from a to b by t.
func MixVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{Mix(a.X, b.X, t), Mix(a.Y, b.Y, t), Mix(a.Z, b.Z, t)}
}

// SmoothStep is the Hermite step between edge0 and edge1. Reversed edges
// produce a falling step.
func SmoothStep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Rotate2D rotates p by angle radians counter-clockwise.
func Rotate2D(p Vec2, angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	cs, sn := float32(c), float32(s)
	return Vec2{cs*p.X - sn*p.Y, sn*p.X + cs*p.Y}
}

func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func sin32(x float32) float32  { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32  { return float32(math.Cos(float64(x))) }
func abs32(x float32) float32  { return float32(math.Abs(float64(x))) }

func floor32(x float32) float32 { return float32(math.Floor(float64(x))) }

// --- Noise ---

// NoiseHash maps a lattice point to a pseudo-random gradient in [-1, 1]².
func NoiseHash(p Vec2) Vec2 {
	q := Vec2{p.Dot(Vec2{127.1, 311.7}), p.Dot(Vec2{269.5, 183.3})}
	return Vec2{
		-1 + 2*Fract(sin32(q.X)*43758.5453123),
		-1 + 2*Fract(sin32(q.Y)*43758.5453123),
	}
}

// Noise is 2D simplex noise in roughly [-1, 1].
func Noise(p Vec2) float32 {
	const (
		k1 = 0.366025404 // (sqrt(3)-1)/2
		k2 = 0.211324865 // (3-sqrt(3))/6
	)
	s := (p.X + p.Y) * k1
	i := Vec2{floor32(p.X + s), floor32(p.Y + s)}
	t := (i.X + i.Y) * k2
	a := Vec2{p.X - i.X + t, p.Y - i.Y + t}
	var o Vec2
	if a.X > a.Y {
		o = Vec2{1, 0}
	} else {
		o = Vec2{0, 1}
	}
	b := Vec2{a.X - o.X + k2, a.Y - o.Y + k2}
	c := Vec2{a.X - 1 + 2*k2, a.Y - 1 + 2*k2}

	ha := max(0.5-a.Dot(a), 0)
	hb := max(0.5-b.Dot(b), 0)
	hc := max(0.5-c.Dot(c), 0)
	n := ha*ha*ha*ha*a.Dot(NoiseHash(i)) +
		hb*hb*hb*hb*b.Dot(NoiseHash(i.Add(o))) +
		hc*hc*hc*hc*c.Dot(NoiseHash(i.Add(Vec2{1, 1})))
	return n * 70
}

// FBMOctaves is the octave count used by FBM.
const FBMOctaves = 5

// FBM is fractional Brownian motion over Noise, remapped to roughly [0, 1].
func FBM(p Vec2) float32 {
	return FBMN(p, FBMOctaves)
}

// FBMN is FBM with an explicit octave count.
func FBMN(p Vec2, octaves int) float32 {
	var v float32
	amp := float32(0.5)
	for range octaves {
		v += amp * Noise(p)
		p = p.Mul(2)
		amp *= 0.5
	}
	return v*0.5 + 0.5
}

// Voronoi returns the distance from p to the nearest jittered cell point
// (F1 cellular noise). t animates the points.
func Voronoi(p Vec2, t float32) float32 {
	cell := Vec2{floor32(p.X), floor32(p.Y)}
	f := p.Sub(cell)
	best := float32(8)
	for y := -1; y <= 1; y++ {
		for x := -1; x <= 1; x++ {
			g := Vec2{float32(x), float32(y)}
			h := NoiseHash(cell.Add(g))
			pt := Vec2{
				0.5 + 0.5*sin32(t+6.2831*h.X),
				0.5 + 0.5*sin32(t+6.2831*h.Y),
			}
			d := g.Add(pt).Sub(f)
			best = min(best, d.Dot(d))
		}
	}
	return sqrt32(best)
}
