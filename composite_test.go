package libled

import "testing"

// finiteEffect fills the canvas and finishes after a fixed number of frames.
type finiteEffect struct {
	color  Color
	frames int
	count  int
	resets int
}

func (e *finiteEffect) Render(c *Canvas, timeMs int64) {
	c.Clear(e.color)
	e.count++
}
func (e *finiteEffect) Reset()           { e.count = 0; e.resets++ }
func (e *finiteEffect) IsFinished() bool { return e.count >= e.frames }

func fill(col Color) Effect {
	return EffectFunc(func(c *Canvas, timeMs int64) { c.Clear(col) })
}

func TestCompositeOrder(t *testing.T) {
	halfBlue := EffectFunc(func(c *Canvas, timeMs int64) {
		c.FillRect(Rect{0, 0, c.Width() / 2, c.Height()}, Blue, BlendNormal)
	})
	comp := NewComposite(fill(Red), halfBlue)
	c := NewCanvas(8, 4)
	comp.Render(c, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := Red
			if x < 4 {
				want = Blue
			}
			if got := c.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCompositeFinish(t *testing.T) {
	empty := NewComposite()
	if empty.IsFinished() {
		t.Error("empty composite should not be finished")
	}

	a := &finiteEffect{color: Red, frames: 1}
	b := &finiteEffect{color: Blue, frames: 2}
	comp := NewComposite(a, nil, b)
	if comp.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (nil ignored)", comp.Len())
	}
	c := NewCanvas(2, 2)
	comp.Render(c, 0)
	if comp.IsFinished() {
		t.Error("finished while a child is still running")
	}
	comp.Render(c, 25)
	if !comp.IsFinished() {
		t.Error("should finish once every child has")
	}
	comp.Reset()
	if a.resets != 1 || b.resets != 1 {
		t.Errorf("resets = %d, %d, want 1, 1", a.resets, b.resets)
	}
	comp.Clear()
	if comp.Len() != 0 {
		t.Errorf("Len after Clear = %d", comp.Len())
	}
}

func TestOffscreenFollowsSize(t *testing.T) {
	var o offscreen
	a := o.get(NewCanvas(4, 4))
	a.Clear(Red)
	b := o.get(NewCanvas(4, 4))
	if a != b {
		t.Error("same size should reuse the buffer")
	}
	if b.GetPixel(0, 0) != Transparent {
		t.Error("reused buffer should be cleared")
	}
	if c := o.get(NewCanvas(2, 3)); c.Width() != 2 || c.Height() != 3 {
		t.Errorf("resized buffer = %dx%d", c.Width(), c.Height())
	}
}

func TestTypedNilEffectsIgnored(t *testing.T) {
	var fade *Fade
	var fn EffectFunc

	comp := NewComposite(fade, fn, nil, fill(Red))
	if comp.Len() != 1 {
		t.Fatalf("Len = %d, want only the real child", comp.Len())
	}

	c := NewCanvas(2, 2)
	wrappers := []struct {
		name string
		e    Effect
	}{
		{"composite", comp},
		{"fade", NewFade(fade)},
		{"blur", NewBlur(fade)},
		{"flash", NewFlash(fade)},
		{"filtered", NewFiltered(fade, NewBlurFilter(1))},
		{"scroll", NewScroll(fade, 1, 0)},
		{"shake", NewShake(fade)},
		{"jitter", NewJitter(fade)},
		{"light layer", NewLightLayer(fade, 0.5)},
		{"fire text", NewFireText(fade)},
		{"crossfade", NewCrossFade(fade, fn, 100)},
		{"melt", NewMelt(fade, fn, 100)},
		{"playlist", NewPlaylist().Add("none", fade)},
	}
	for _, w := range wrappers {
		t.Run(w.name, func(t *testing.T) {
			w.e.Render(c, 0)
			w.e.Render(c, 50)
			w.e.Reset()
			_ = w.e.IsFinished()
		})
	}
	if NewPlaylist().Add("none", fade).Len() != 0 {
		t.Error("a typed nil scene should be skipped")
	}
}
