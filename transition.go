package libled

import "math/rand/v2"

// ProgressMode selects how elapsed time maps to transition progress.
type ProgressMode uint8

const (
	// PingPong runs 0 -> 1 -> 0 over twice the duration, repeating.
	PingPong ProgressMode = iota
	// OneShot runs 0 -> 1 once and holds at 1.
	OneShot
)

// Progress maps timeMs to a fraction in [0, 1] for a transition of the
// given duration. A non-positive duration is always complete.
func Progress(timeMs, duration int64, mode ProgressMode) float32 {
	if duration <= 0 {
		return 1
	}
	if timeMs < 0 {
		timeMs = 0
	}
	if mode == OneShot {
		if timeMs >= duration {
			return 1
		}
		return float32(timeMs) / float32(duration)
	}
	t := timeMs % (2 * duration)
	if t < duration {
		return float32(t) / float32(duration)
	}
	return 1 - float32(t-duration)/float32(duration)
}

// Direction is the travel direction of Slide and Wipe.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// transition holds the state shared by every two-source transition.
type transition struct {
	A, B     Effect
	Duration int64 // ms
	Mode     ProgressMode
	// Relative measures progress from the first rendered frame instead of
	// from timeMs 0.
	Relative bool

	tl   Timeline
	a, b offscreen
	p    float32
}

func newTransition(a, b Effect, durationMs int64) transition {
	return transition{A: effectOrNil(a), B: effectOrNil(b), Duration: durationMs}
}

// frame renders both sources with the same timeMs into private canvases and
// returns them with the current progress.
func (t *transition) frame(c *Canvas, timeMs int64) (a, b *Canvas, p float32) {
	elapsed, _ := t.tl.Tick(timeMs)
	at := timeMs
	if t.Relative {
		at = elapsed
	}
	t.p = Progress(at, t.Duration, t.Mode)
	a = t.a.renderInto(t.A, c, timeMs)
	b = t.b.renderInto(t.B, c, timeMs)
	return a, b, t.p
}

// Reset restarts the transition and both sources.
func (t *transition) Reset() {
	t.tl.Reset()
	t.p = 0
	resetEffect(t.A)
	resetEffect(t.B)
}

// IsFinished reports whether a OneShot transition has reached B.
func (t *transition) IsFinished() bool {
	return t.Mode == OneShot && t.tl.State() == Running && t.p >= 1
}

// Value returns the progress computed by the last frame.
func (t *transition) Value() float32 { return t.p }

// --- CrossFade ---

// CrossFade lerps every channel from A to B.
type CrossFade struct {
	transition
}

// NewCrossFade builds a ping-pong cross-fade.
func NewCrossFade(a, b Effect, durationMs int64) *CrossFade {
	return &CrossFade{newTransition(a, b, durationMs)}
}

// Render implements Effect.
func (t *CrossFade) Render(c *Canvas, timeMs int64) {
	a, b, p := t.frame(c, timeMs)
	for i := range c.pix {
		c.pix[i] = c.pix[i].Blend(a.pix[i].Lerp(b.pix[i], p))
	}
}

// --- Dissolve ---

// Dissolve replaces A with B pixel by pixel in a fixed scattered order.
type Dissolve struct {
	transition
}

// NewDissolve builds a ping-pong dissolve.
func NewDissolve(a, b Effect, durationMs int64) *Dissolve {
	return &Dissolve{newTransition(a, b, durationMs)}
}

// dissolveOrder is the threshold in [0, 100) at which (x, y) switches to B.
func dissolveOrder(x, y int) int {
	return (x*37 + y*17) % 100
}

// Render implements Effect.
func (t *Dissolve) Render(c *Canvas, timeMs int64) {
	a, b, p := t.frame(c, timeMs)
	c.DrawColorImage(Point{}, a, BlendNormal)
	limit := p * 100
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if float32(dissolveOrder(x, y)) < limit {
				i := y*c.w + x
				c.pix[i] = b.pix[i]
			}
		}
	}
}

// --- Slide ---

// Slide pushes A out and B in along Dir.
type Slide struct {
	transition
	Dir Direction
}

// NewSlide builds a ping-pong slide.
func NewSlide(a, b Effect, durationMs int64, dir Direction) *Slide {
	return &Slide{transition: newTransition(a, b, durationMs), Dir: dir}
}

// Render implements Effect.
func (t *Slide) Render(c *Canvas, timeMs int64) {
	a, b, p := t.frame(c, timeMs)
	dx := int(float32(c.w) * p)
	dy := int(float32(c.h) * p)
	var pa, pb Point
	switch t.Dir {
	case DirLeft:
		pa, pb = Pt(-dx, 0), Pt(c.w-dx, 0)
	case DirRight:
		pa, pb = Pt(dx, 0), Pt(dx-c.w, 0)
	case DirUp:
		pa, pb = Pt(0, -dy), Pt(0, c.h-dy)
	case DirDown:
		pa, pb = Pt(0, dy), Pt(0, dy-c.h)
	}
	c.DrawColorImage(pa, a, BlendNormal)
	c.DrawColorImage(pb, b, BlendNormal)
}

// --- Wipe ---

// Wipe reveals B over A behind an edge moving along Dir.
type Wipe struct {
	transition
	Dir Direction
}

// NewWipe builds a ping-pong wipe.
func NewWipe(a, b Effect, durationMs int64, dir Direction) *Wipe {
	return &Wipe{transition: newTransition(a, b, durationMs), Dir: dir}
}

// Render implements Effect.
func (t *Wipe) Render(c *Canvas, timeMs int64) {
	a, b, p := t.frame(c, timeMs)
	c.DrawColorImage(Point{}, a, BlendNormal)
	rw := int(float32(c.w)*p + 0.5)
	rh := int(float32(c.h)*p + 0.5)
	var r Rect
	switch t.Dir {
	case DirRight:
		r = Rect{0, 0, rw, c.h}
	case DirLeft:
		r = Rect{c.w - rw, 0, rw, c.h}
	case DirDown:
		r = Rect{0, 0, c.w, rh}
	case DirUp:
		r = Rect{0, c.h - rh, c.w, rh}
	}
	c.CopyRegion(b, r, r.Min())
}

// --- Zoom ---

// Zoom grows B from the center over A.
type Zoom struct {
	transition
}

// NewZoom builds a ping-pong zoom.
func NewZoom(a, b Effect, durationMs int64) *Zoom {
	return &Zoom{newTransition(a, b, durationMs)}
}

// Render implements Effect.
func (t *Zoom) Render(c *Canvas, timeMs int64) {
	a, b, p := t.frame(c, timeMs)
	c.DrawColorImage(Point{}, a, BlendNormal)
	if p <= 0.01 {
		return
	}
	sw := int(float32(c.w)*p + 0.5)
	sh := int(float32(c.h)*p + 0.5)
	if sw <= 0 || sh <= 0 {
		return
	}
	ox, oy := (c.w-sw)/2, (c.h-sh)/2
	for dy := 0; dy < sh; dy++ {
		sy := dy * c.h / sh
		for dx := 0; dx < sw; dx++ {
			px := b.pix[sy*c.w+dx*c.w/sw]
			if px.A > 0 {
				c.SetPixel(ox+dx, oy+dy, px)
			}
		}
	}
}

// --- Melt ---

const (
	meltSpeed    = 30  // ms per pixel of fall
	meltMaxDelay = 400 // ms
	meltMaxStep  = 100 // ms between neighbouring columns
)

// Melt drips A down the screen column by column, revealing B behind it.
// Each run picks new column delays and the transition repeats.
type Melt struct {
	A, B     Effect
	Duration int64 // ms
	Rand     *rand.Rand

	tl     Timeline
	delays []int64
	a, b   offscreen
}

// NewMelt builds a looping melt from a to b.
func NewMelt(a, b Effect, durationMs int64) *Melt {
	return &Melt{A: effectOrNil(a), B: effectOrNil(b), Duration: durationMs, tl: Timeline{Policy: FinishRestart}}
}

func (m *Melt) arm(w int) {
	if m.Rand == nil {
		m.Rand = newRand()
	}
	if cap(m.delays) < w {
		m.delays = make([]int64, w)
	}
	m.delays = m.delays[:w]
	off := int64(m.Rand.IntN(meltMaxDelay))
	for x := range m.delays {
		m.delays[x] = off
		off += int64(m.Rand.IntN(2*meltMaxStep) - meltMaxStep)
		off = min(max(off, 0), meltMaxDelay)
	}
}

// Delays returns the per-column delays of the current run.
func (m *Melt) Delays() []int64 { return m.delays }

// Render implements Effect.
func (m *Melt) Render(c *Canvas, timeMs int64) {
	m.tl.Policy = FinishRestart
	elapsed, armed := m.tl.Tick(timeMs)
	if armed || len(m.delays) != c.w {
		m.arm(c.w)
	}
	b := m.b.renderInto(m.B, c, timeMs)
	a := m.a.renderInto(m.A, c, timeMs)
	c.DrawColorImage(Point{}, b, BlendNormal)
	for x := 0; x < c.w; x++ {
		drop := int(max(0, elapsed-m.delays[x]) / meltSpeed)
		if drop >= c.h {
			continue
		}
		for y := 0; y+drop < c.h; y++ {
			px := a.pix[y*c.w+x]
			if px.A > 0 {
				c.BlendPixel(x, y+drop, px)
			}
		}
	}
	if Progress(elapsed, m.Duration, OneShot) >= 1 {
		m.tl.Finish(timeMs)
	}
}

// Reset restarts the melt and both sources.
func (m *Melt) Reset() {
	m.tl.Reset()
	m.delays = m.delays[:0]
	resetEffect(m.A)
	resetEffect(m.B)
}

// IsFinished reports whether the current run has ended. The next frame
// starts a new one.
func (m *Melt) IsFinished() bool { return m.tl.Finished() }
