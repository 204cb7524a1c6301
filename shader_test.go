package libled

import (
	"math/rand/v2"
	"testing"
)

func TestScalarHelpers(t *testing.T) {
	assertNear(t, "fract", float64(Fract(2.25)), 0.25)
	assertNear(t, "fract negative", float64(Fract(-0.25)), 0.75)
	assertNear(t, "clamp low", float64(Clamp(-1, 0, 1)), 0)
	assertNear(t, "clamp high", float64(Clamp(3, 0, 1)), 1)
	assertNear(t, "mix", float64(Mix(2, 4, 0.5)), 3)

	v := MixVec3(Vec3{0, 0, 0}, Vec3{1, 2, 4}, 0.5)
	assertNear(t, "mixvec", float64(v.Z), 2)

	r := Rotate2D(Vec2{1, 0}, 3.14159265/2)
	assertNear(t, "rotate x", float64(r.X), 0)
	assertNear(t, "rotate y", float64(r.Y), 1)
}

func TestSmoothStep(t *testing.T) {
	tests := []struct {
		e0, e1, x float32
		want      float64
	}{
		{0, 1, -1, 0},
		{0, 1, 0.5, 0.5},
		{0, 1, 2, 1},
		{0, 1, 0.25, 0.15625},
		{1, 0, 0.25, 0.84375},
		{0.5, 0.5, 0.4, 0},
		{0.5, 0.5, 0.5, 1},
	}
	for _, tt := range tests {
		assertNear(t, "smoothstep", float64(SmoothStep(tt.e0, tt.e1, tt.x)), tt.want)
	}
}

func TestNoiseRangeAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		p := Vec2{rng.Float32()*200 - 100, rng.Float32()*200 - 100}
		n := Noise(p)
		if n < -1.5 || n > 1.5 {
			t.Fatalf("Noise(%v) = %v out of range", p, n)
		}
		if Noise(p) != n {
			t.Fatalf("Noise(%v) is not deterministic", p)
		}
		if f := FBM(p); f < -0.25 || f > 1.25 {
			t.Fatalf("FBM(%v) = %v out of range", p, f)
		}
		if v := Voronoi(p, 1); v < 0 || v > 1.5 {
			t.Fatalf("Voronoi(%v) = %v out of range", p, v)
		}
		h := NoiseHash(p)
		if h.X < -1 || h.X > 1 || h.Y < -1 || h.Y > 1 {
			t.Fatalf("NoiseHash(%v) = %v out of range", p, h)
		}
	}
	assertNear(t, "lattice point", float64(Noise(Vec2{})), 0)
}

func TestShaderEffectTime(t *testing.T) {
	var seen []float32
	e := NewShaderEffect(func(u, v, tt float32) Color {
		if u == 0 && v == 0 {
			seen = append(seen, tt)
		}
		return Color{uint8(u * 4 * 64), uint8(v * 2 * 64), 0, 255}
	})
	c := NewCanvas(4, 2)
	c.Clear(Red)
	e.Render(c, 5000)
	e.Render(c, 5500)
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 0.5 {
		t.Errorf("shader times = %v, want [0 0.5]", seen)
	}
	assertColor(t, "origin", c.GetPixel(0, 0), Color{0, 0, 0, 255})
	assertColor(t, "u step", c.GetPixel(3, 0), Color{192, 0, 0, 255})
	assertColor(t, "v step", c.GetPixel(0, 1), Color{0, 64, 0, 255})

	e.Reset()
	e.Render(c, 9000)
	if seen[2] != 0 {
		t.Errorf("time after Reset = %v, want 0", seen[2])
	}
	if e.IsFinished() {
		t.Error("shader effects are continuous")
	}
}

func TestShaderFill(t *testing.T) {
	img := NewColorImage(3, 3)
	SolidShader(Gold).Fill(img, 0)
	for _, px := range img.Pix {
		if px != Gold {
			t.Fatalf("filled pixel = %v", px)
		}
	}
}

func TestBuiltinShadersOpaque(t *testing.T) {
	shaders := map[string]Shader{
		"fire":    FireShader,
		"plasma":  PlasmaShader,
		"ripple":  SineRippleShader(64, 32),
		"field":   FieldLineShader(64, 32),
		"waves":   WavesShader(64, 32),
		"voronoi": VoronoiShader(64, 32),
		"grid":    GridShader(64, 32),
	}
	for name, s := range shaders {
		for _, tt := range []float32{0, 1.5, 17} {
			for _, uv := range []Vec2{{0, 0}, {0.5, 0.5}, {0.99, 0.2}} {
				if px := s(uv.X, uv.Y, tt); px.A != 255 {
					t.Errorf("%s(%v, %v) = %v, want opaque", name, uv, tt, px)
				}
			}
		}
	}
}

func TestShaderEffectZeroAllocs(t *testing.T) {
	e := NewShaderEffect(PlasmaShader)
	c := NewCanvas(64, 32)
	e.Render(c, 0)
	allocs := testing.AllocsPerRun(20, func() {
		e.Render(c, 40)
	})
	if allocs > 0 {
		t.Errorf("Render allocs = %f, want 0", allocs)
	}
}
