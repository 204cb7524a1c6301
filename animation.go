package libled

// DefaultFrameDelay is used for frames without a delay.
const DefaultFrameDelay = 100

// minFrameDelay keeps zero-delay GIF frames from spinning.
const minFrameDelay = 10

// Frame is one image of an Animation with its display time in ms.
type Frame struct {
	Image Image
	Delay int64
}

// Animation is a looping sequence of frames.
type Animation struct {
	Frames []Frame
	// LoopCount is informational: 0 loops forever. Playback always loops.
	LoopCount int

	transparent bool
}

// Len returns the frame count.
func (a *Animation) Len() int { return len(a.Frames) }

// Delay returns the effective delay of frame i in ms.
func (a *Animation) Delay(i int) int64 {
	if i < 0 || i >= len(a.Frames) {
		return DefaultFrameDelay
	}
	return max(a.Frames[i].Delay, minFrameDelay)
}

// HasTransparency reports whether frames must be blended rather than copied.
func (a *Animation) HasTransparency() bool {
	if a.transparent {
		return true
	}
	for _, f := range a.Frames {
		if ci, ok := f.Image.(*ColorImage); ok && ci.HasTransparency() {
			a.transparent = true
			return true
		}
	}
	return false
}

// SetTransparentColor makes every pixel matching c transparent in every
// color frame.
func (a *Animation) SetTransparentColor(c Color) {
	a.transparent = true
	for _, f := range a.Frames {
		if ci, ok := f.Image.(*ColorImage); ok {
			ci.ReplaceColor(c)
		}
	}
}

// AnimationEffect plays an Animation at Pos, looping.
type AnimationEffect struct {
	Anim    *Animation
	Pos     Point
	Playing bool

	frame int
	accum int64
	last  int64
	seen  bool
}

// NewAnimationEffect plays a from the top-left corner.
func NewAnimationEffect(a *Animation) *AnimationEffect {
	return &AnimationEffect{Anim: a, Playing: true}
}

// Frame returns the current frame index.
func (e *AnimationEffect) Frame() int { return e.frame }

// Render implements Effect.
func (e *AnimationEffect) Render(c *Canvas, timeMs int64) {
	if e.Anim == nil || e.Anim.Len() == 0 {
		return
	}
	if !e.seen {
		e.seen = true
		e.last = timeMs
	}
	dt := max(timeMs-e.last, 0)
	e.last = timeMs
	if e.Playing {
		e.accum += dt
		if d := e.Anim.Delay(e.frame); e.accum >= d {
			e.accum -= d
			e.frame = (e.frame + 1) % e.Anim.Len()
		}
	}
	img := e.Anim.Frames[e.frame].Image
	if img == nil {
		return
	}
	if e.Anim.HasTransparency() {
		c.DrawColorImage(e.Pos, img, BlendNormal)
	} else {
		c.DrawColorImage(e.Pos, img, BlendNone)
	}
}

// Reset rewinds to the first frame.
func (e *AnimationEffect) Reset() {
	e.frame = 0
	e.accum = 0
	e.seen = false
}

// IsFinished always returns false; animations loop.
func (e *AnimationEffect) IsFinished() bool { return false }
