package libled

import (
	"math"
	"math/rand/v2"
)

// Scroll moves its source continuously and wraps it around the canvas.
type Scroll struct {
	Source         Effect
	SpeedX, SpeedY float32 // px/s

	tl  Timeline
	buf offscreen
}

// NewScroll wraps src with a scroll speed in pixels per second.
func NewScroll(src Effect, speedX, speedY float32) *Scroll {
	return &Scroll{Source: effectOrNil(src), SpeedX: speedX, SpeedY: speedY}
}

// Render implements Effect.
func (s *Scroll) Render(c *Canvas, timeMs int64) {
	if s.Source == nil || c.w == 0 || c.h == 0 {
		return
	}
	elapsed, _ := s.tl.Tick(timeMs)
	buf := s.buf.renderInto(s.Source, c, timeMs)
	sec := float64(elapsed) / 1000
	ox := wrap(int(math.Floor(float64(s.SpeedX)*sec)), c.w)
	oy := wrap(int(math.Floor(float64(s.SpeedY)*sec)), c.h)
	for _, dy := range [2]int{oy, oy - c.h} {
		for _, dx := range [2]int{ox, ox - c.w} {
			c.DrawColorImage(Pt(dx, dy), buf, BlendNormal)
		}
	}
}

// Reset implements Effect.
func (s *Scroll) Reset() {
	s.tl.Reset()
	resetEffect(s.Source)
}

// IsFinished implements Effect.
func (s *Scroll) IsFinished() bool { return effectFinished(s.Source) }

// DefaultShakeIntensity is the Shake displacement when none is set.
const DefaultShakeIntensity = 5

// Shake draws its source at a random offset in [-Intensity, Intensity)
// every frame.
type Shake struct {
	Source    Effect
	Intensity int
	Rand      *rand.Rand

	buf offscreen
}

// NewShake wraps src with the default intensity.
func NewShake(src Effect) *Shake {
	return &Shake{Source: effectOrNil(src), Intensity: DefaultShakeIntensity}
}

// Render implements Effect.
func (s *Shake) Render(c *Canvas, timeMs int64) {
	if s.Source == nil {
		return
	}
	if s.Rand == nil {
		s.Rand = newRand()
	}
	buf := s.buf.renderInto(s.Source, c, timeMs)
	var dx, dy int
	if i := s.Intensity; i > 0 {
		dx = s.Rand.IntN(2*i) - i
		dy = s.Rand.IntN(2*i) - i
	}
	c.DrawColorImage(Pt(dx, dy), buf, BlendNormal)
}

// Reset implements Effect.
func (s *Shake) Reset() { resetEffect(s.Source) }

// IsFinished implements Effect.
func (s *Shake) IsFinished() bool { return effectFinished(s.Source) }

// Jitter offsets every scanline of its source horizontally by -1, 0 or 1.
type Jitter struct {
	Source Effect
	Rand   *rand.Rand

	buf offscreen
}

// NewJitter wraps src.
func NewJitter(src Effect) *Jitter {
	return &Jitter{Source: effectOrNil(src)}
}

// Render implements Effect.
func (j *Jitter) Render(c *Canvas, timeMs int64) {
	if j.Source == nil {
		return
	}
	if j.Rand == nil {
		j.Rand = newRand()
	}
	buf := j.buf.renderInto(j.Source, c, timeMs)
	for y := 0; y < c.h; y++ {
		off := j.Rand.IntN(3) - 1
		c.DrawColorImageRect(Pt(off, y), buf, Rect{0, y, c.w, 1}, BlendNormal)
	}
}

// Reset implements Effect.
func (j *Jitter) Reset() { resetEffect(j.Source) }

// IsFinished implements Effect.
func (j *Jitter) IsFinished() bool { return effectFinished(j.Source) }
