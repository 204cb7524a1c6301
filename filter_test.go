package libled

import (
	"math/rand/v2"
	"testing"
)

func dot(x, y int, col Color) Effect {
	return EffectFunc(func(c *Canvas, timeMs int64) { c.SetPixel(x, y, col) })
}

func TestWrappersTolerateNilSource(t *testing.T) {
	wrappers := map[string]Effect{
		"fade":     NewFade(nil),
		"blur":     NewBlur(nil),
		"flash":    NewFlash(nil),
		"filtered": NewFiltered(nil, NewBlurFilter(1)),
		"scroll":   NewScroll(nil, 10, 0),
		"shake":    NewShake(nil),
		"jitter":   NewJitter(nil),
	}
	for name, e := range wrappers {
		c := NewCanvas(4, 4)
		c.Clear(Red)
		e.Render(c, 0)
		e.Render(c, 100)
		if got := c.GetPixel(1, 1); got != Red {
			t.Errorf("%s with nil source drew %v", name, got)
		}
		if e.IsFinished() {
			t.Errorf("%s with nil source reports finished", name)
		}
	}
}

func TestFadeBrightness(t *testing.T) {
	f := NewFade(fill(White))
	f.SetBrightness(0.5)
	c := NewCanvas(2, 2)
	c.Clear(Black)
	f.Render(c, 0)
	assertColor(t, "half", c.GetPixel(0, 0), Color{128, 128, 128, 255})

	f.SetBrightness(2)
	assertNear(t, "clamped", float64(f.Brightness()), 1)
}

func TestFadeRamp(t *testing.T) {
	f := NewFade(fill(White)).FadeIn(100)
	c := NewCanvas(1, 1)

	c.Clear(Black)
	f.Render(c, 1000)
	assertColor(t, "start", c.GetPixel(0, 0), Black)
	if f.IsFinished() {
		t.Error("ramp finished at its start")
	}

	c.Clear(Black)
	f.Render(c, 1050)
	assertNear(t, "brightness", float64(f.Brightness()), 0.5)

	c.Clear(Black)
	f.Render(c, 1100)
	assertColor(t, "end", c.GetPixel(0, 0), White)
	if !f.IsFinished() {
		t.Error("ramp should be finished")
	}

	f.SetBrightness(1)
	if f.IsFinished() {
		t.Error("a fixed brightness defers to the continuous source")
	}
}

func TestFlashDecay(t *testing.T) {
	f := NewFlash(fill(Black))
	c := NewCanvas(2, 1)
	steps := []struct {
		at   int64
		want Color
	}{
		{0, White},
		{100, Color{128, 128, 128, 255}},
		{200, Black},
		{999, Black},
		{1000, White},
	}
	for _, s := range steps {
		f.Render(c, s.at)
		assertColor(t, "flash", c.GetPixel(1, 0), s.want)
	}
}

func TestBlurAveragesNeighbours(t *testing.T) {
	b := NewBlur(EffectFunc(func(c *Canvas, timeMs int64) {
		c.Clear(Black)
		c.SetPixel(1, 1, White)
	}))
	c := NewCanvas(3, 3)
	b.Render(c, 0)
	if g := c.GetPixel(1, 1).R; g != 255/9 {
		t.Errorf("center = %d, want %d", g, 255/9)
	}
	if g := c.GetPixel(0, 0).R; g != 255/4 {
		t.Errorf("corner = %d, want %d", g, 255/4)
	}
	if a := c.GetPixel(0, 0).A; a != 255 {
		t.Errorf("corner alpha = %d, want 255", a)
	}
}

func TestColorMatrixFilter(t *testing.T) {
	src := NewCanvas(1, 1)
	src.SetPixel(0, 0, Color{200, 100, 50, 255})
	dst := NewCanvas(1, 1)

	NewColorMatrixFilter().Apply(src, dst)
	assertColor(t, "identity", dst.GetPixel(0, 0), Color{200, 100, 50, 255})

	f := NewColorMatrixFilter()
	f.SetSaturation(0)
	f.Apply(src, dst)
	px := dst.GetPixel(0, 0)
	if px.R != px.G || px.G != px.B {
		t.Errorf("desaturated = %v, want grey", px)
	}

	f.SetBrightness(1)
	f.Apply(src, dst)
	assertColor(t, "bright", dst.GetPixel(0, 0), White)
}

func TestOutlineFilter(t *testing.T) {
	src := NewCanvas(5, 5)
	src.SetPixel(2, 2, Red)
	dst := NewCanvas(5, 5)
	NewOutlineFilter(1, Blue).Apply(src, dst)
	assertColor(t, "shape", dst.GetPixel(2, 2), Red)
	for _, p := range []Point{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		assertColor(t, "outline", dst.GetPixel(p.X, p.Y), Blue)
	}
	assertColor(t, "diagonal", dst.GetPixel(1, 1), Transparent)
	assertColor(t, "far", dst.GetPixel(0, 0), Transparent)
}

func TestPaletteFilterCycles(t *testing.T) {
	f := NewPaletteFilter()
	var pal [256]Color
	for i := range pal {
		pal[i] = Color{uint8(i), 0, 0, 255}
	}
	f.SetPalette(pal)
	f.CycleOffset = 5

	src := NewCanvas(2, 1)
	src.SetPixel(0, 0, Color{10, 10, 10, 200})
	dst := NewCanvas(2, 1)
	f.Apply(src, dst)
	assertColor(t, "cycled", dst.GetPixel(0, 0), Color{15, 0, 0, 200})
	assertColor(t, "transparent", dst.GetPixel(1, 0), Transparent)
}

func TestFilteredChain(t *testing.T) {
	sat := NewColorMatrixFilter()
	sat.SetSaturation(0)
	f := NewFiltered(dot(1, 1, Red), NewOutlineFilter(1, Blue), sat)
	c := NewCanvas(3, 3)
	c.Clear(Black)
	f.Render(c, 0)
	center, edge := c.GetPixel(1, 1), c.GetPixel(0, 1)
	if center.R != center.G || center.R == 0 {
		t.Errorf("center = %v, want non-black grey", center)
	}
	if edge.R != edge.B || edge.A != 255 {
		t.Errorf("edge = %v, want opaque grey", edge)
	}
	assertColor(t, "corner", c.GetPixel(0, 0), Black)
}

func TestScrollWraps(t *testing.T) {
	s := NewScroll(dot(0, 0, Red), 1, 0)
	c := NewCanvas(4, 1)
	for _, step := range []struct {
		at   int64
		want int
	}{{0, 0}, {2000, 2}, {5000, 1}} {
		c.Clear(Transparent)
		s.Render(c, step.at)
		for x := range 4 {
			got := c.GetPixel(x, 0) == Red
			if got != (x == step.want) {
				t.Fatalf("t=%d: red at x=%d is %v, want red only at %d", step.at, x, got, step.want)
			}
		}
	}
}

func TestShakeAndJitterOffsets(t *testing.T) {
	s := NewShake(dot(2, 2, Red))
	s.Intensity = 0
	c := NewCanvas(5, 5)
	s.Render(c, 0)
	assertColor(t, "no shake", c.GetPixel(2, 2), Red)

	s.Intensity = 1
	s.Rand = rand.New(rand.NewPCG(1, 2))
	for range 20 {
		c.Clear(Transparent)
		s.Render(c, 0)
		found := false
		for y := 1; y <= 2; y++ {
			for x := 1; x <= 2; x++ {
				found = found || c.GetPixel(x, y) == Red
			}
		}
		if !found {
			t.Fatal("shake moved the pixel further than its intensity")
		}
	}

	j := NewJitter(dot(2, 0, Red))
	j.Rand = rand.New(rand.NewPCG(1, 2))
	for range 20 {
		c.Clear(Transparent)
		j.Render(c, 0)
		if c.GetPixel(1, 0) != Red && c.GetPixel(2, 0) != Red && c.GetPixel(3, 0) != Red {
			t.Fatal("jitter moved a row by more than one pixel")
		}
	}
}
