package libled

import "testing"

func threeFrames() *Animation {
	return &Animation{Frames: []Frame{
		{Image: solidImage(2, 2, Red), Delay: 100},
		{Image: solidImage(2, 2, Green), Delay: 0},
		{Image: solidImage(2, 2, Blue), Delay: 50},
	}}
}

func TestAnimationDelay(t *testing.T) {
	a := threeFrames()
	tests := []struct {
		i    int
		want int64
	}{
		{0, 100},
		{1, minFrameDelay},
		{2, 50},
		{-1, DefaultFrameDelay},
		{3, DefaultFrameDelay},
	}
	for _, tt := range tests {
		if got := a.Delay(tt.i); got != tt.want {
			t.Errorf("Delay(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestAnimationEffectAdvances(t *testing.T) {
	e := NewAnimationEffect(threeFrames())
	c := NewCanvas(2, 2)
	steps := []struct {
		at    int64
		frame int
		color Color
	}{
		{1000, 0, Red},
		{1099, 0, Red},
		{1100, 1, Green},
		{1110, 2, Blue},
		{1160, 0, Red},
	}
	for _, st := range steps {
		e.Render(c, st.at)
		if e.Frame() != st.frame {
			t.Fatalf("frame at %d = %d, want %d", st.at, e.Frame(), st.frame)
		}
		assertColor(t, "frame color", c.GetPixel(1, 1), st.color)
	}
	e.Reset()
	e.Render(c, 9000)
	if e.Frame() != 0 {
		t.Errorf("frame after Reset = %d", e.Frame())
	}
	if e.IsFinished() {
		t.Error("animations loop")
	}
}

func TestAnimationPaused(t *testing.T) {
	e := NewAnimationEffect(threeFrames())
	e.Playing = false
	c := NewCanvas(2, 2)
	e.Render(c, 0)
	e.Render(c, 5000)
	if e.Frame() != 0 {
		t.Errorf("paused animation advanced to %d", e.Frame())
	}
}

func TestAnimationTransparency(t *testing.T) {
	a := threeFrames()
	if a.HasTransparency() {
		t.Fatal("opaque frames reported transparent")
	}
	a.SetTransparentColor(Green)
	if !a.HasTransparency() {
		t.Fatal("SetTransparentColor should switch to blending")
	}
	e := NewAnimationEffect(a)
	c := NewCanvas(2, 2)
	e.Render(c, 0)
	c.Clear(White)
	e.Render(c, 100)
	assertColor(t, "keyed frame shows background", c.GetPixel(0, 0), White)
}

func TestAnimationEffectEmpty(t *testing.T) {
	c := NewCanvas(2, 2)
	NewAnimationEffect(nil).Render(c, 0)
	NewAnimationEffect(&Animation{}).Render(c, 0)
	if coverage(c) != 0 {
		t.Error("empty animations should draw nothing")
	}
}
