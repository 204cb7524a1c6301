package libled

import (
	"math"
	"unicode/utf8"

	"github.com/tanema/gween/ease"
)

// textBase carries the fields shared by every text effect.
type textBase struct {
	Text     *Text
	Pos      Point
	Color    Color
	Timeline Timeline
}

func (b *textBase) ok() bool { return b.Text != nil }

// Reset restarts the effect.
func (b *textBase) Reset() { b.Timeline.Reset() }

// IsFinished reports whether the effect's run has ended.
func (b *textBase) IsFinished() bool { return b.Timeline.Finished() }

// --- TextEffect ---

// TextEffect draws a text at a fixed position.
type TextEffect struct {
	textBase
}

// NewTextEffect draws t at pos in col.
func NewTextEffect(t *Text, pos Point, col Color) *TextEffect {
	return &TextEffect{textBase{Text: t, Pos: pos, Color: col}}
}

// Render implements Effect.
func (e *TextEffect) Render(c *Canvas, timeMs int64) {
	if e.ok() {
		e.Text.Draw(c, e.Pos, e.Color, BlendNormal)
	}
}

// IsFinished always returns false.
func (e *TextEffect) IsFinished() bool { return false }

// --- TextScroll ---

// DefaultScrollSpeed is the TextScroll speed in pixels per second.
const DefaultScrollSpeed = 20

// TextScroll moves a text leftwards across the display, entering at the
// right edge and re-entering once it has fully left.
type TextScroll struct {
	textBase
	Speed float32 // px/s

	x int
}

// NewTextScroll scrolls t along row y.
func NewTextScroll(t *Text, y int, col Color) *TextScroll {
	return &TextScroll{textBase: textBase{Text: t, Pos: Pt(0, y), Color: col}, Speed: DefaultScrollSpeed}
}

// X returns the left edge used by the last frame.
func (e *TextScroll) X() int { return e.x }

// Render implements Effect.
func (e *TextScroll) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, _ := e.Timeline.Tick(timeMs)
	cycle := c.w + e.Text.Size().W
	moved := int(float64(e.Speed) * float64(elapsed) / 1000)
	if cycle > 0 {
		moved = wrap(moved, cycle)
	}
	e.x = c.w - moved
	c.DrawMonoImage(Pt(e.x, e.Pos.Y), e.Text.Mask(), e.Color, BlendNormal)
}

// IsFinished always returns false.
func (e *TextScroll) IsFinished() bool { return false }

// --- Typewriter ---

// DefaultTypewriterSpeed is the Typewriter delay per character in ms.
const DefaultTypewriterSpeed = 100

// Typewriter reveals a text one character at a time behind a blinking
// cursor.
type Typewriter struct {
	textBase
	Speed int64 // ms per character

	partial *Text
	shown   int
}

// NewTypewriter types t at pos.
func NewTypewriter(t *Text, pos Point, col Color) *Typewriter {
	return &Typewriter{textBase: textBase{Text: t, Pos: pos, Color: col}, Speed: DefaultTypewriterSpeed}
}

// Shown returns how many characters the last frame revealed.
func (e *Typewriter) Shown() int { return e.shown }

// Render implements Effect.
func (e *Typewriter) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, _ := e.Timeline.Tick(timeMs)
	full := e.Text.String()
	total := utf8.RuneCountInString(full)
	speed := max(e.Speed, 1)
	e.shown = min(int(elapsed/speed), total)

	if e.partial == nil {
		e.partial = NewText("", e.Text.Face())
	}
	e.partial.SetFace(e.Text.Face())
	e.partial.HAlign, e.partial.VAlign = AlignLeft, AlignTop
	e.partial.SetText(prefixRunes(full, e.shown))

	// The full text's rect fixes the origin so alignment does not shift
	// while typing.
	r := e.Text.Rect(e.Pos)
	c.DrawMonoImage(r.Min(), e.partial.Mask(), e.Color, BlendNormal)
	if e.shown >= total {
		e.Timeline.Finish(timeMs)
		return
	}
	if (elapsed/250)%2 == 1 {
		x := r.X + e.partial.Size().W + 1
		c.FillRect(Rect{x, r.Y, 2, r.Height}, e.Color, BlendNone)
	}
}

func prefixRunes(s string, n int) string {
	i := 0
	for range n {
		if i >= len(s) {
			break
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// --- TextWave ---

// TextWave draws a text whose columns ride a travelling sine wave.
type TextWave struct {
	textBase
	Amplitude float32
}

// NewTextWave waves t at pos.
func NewTextWave(t *Text, pos Point, col Color) *TextWave {
	return &TextWave{textBase: textBase{Text: t, Pos: pos, Color: col}, Amplitude: 3}
}

// Render implements Effect.
func (e *TextWave) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, _ := e.Timeline.Tick(timeMs)
	r := e.Text.Rect(e.Pos)
	m := e.Text.Mask()
	for x := 0; x < m.W; x++ {
		off := sin32(float32(elapsed)/200+float32(r.X+x)/10) * e.Amplitude
		c.DrawMonoImageRect(Pt(r.X+x, r.Y+int(off)), m, e.Color, Rect{x, 0, 1, m.H}, BlendNormal)
	}
}

// IsFinished always returns false.
func (e *TextWave) IsFinished() bool { return false }

// --- TextBounce ---

// TextBounce bounces a text up from its position.
type TextBounce struct {
	textBase
	Height float32
}

// NewTextBounce bounces t at pos.
func NewTextBounce(t *Text, pos Point, col Color) *TextBounce {
	return &TextBounce{textBase: textBase{Text: t, Pos: pos, Color: col}, Height: 10}
}

// Render implements Effect.
func (e *TextBounce) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, _ := e.Timeline.Tick(timeMs)
	off := abs32(sin32(float32(elapsed)/300)) * e.Height
	e.Text.Draw(c, e.Pos.Add(Pt(0, -int(off))), e.Color, BlendNormal)
}

// IsFinished always returns false.
func (e *TextBounce) IsFinished() bool { return false }

// --- TextFlash ---

// Default TextFlash timing in ms.
const (
	DefaultTextFlashDuration = 400
	DefaultTextFlashInterval = 2000
)

// TextFlash shows a text at full strength and fades it out linearly, then
// waits for the rest of Interval and repeats.
type TextFlash struct {
	textBase
	Duration int64 // ms
	Interval int64 // ms, flash start to flash start
}

// NewTextFlash flashes t at pos.
func NewTextFlash(t *Text, pos Point, col Color) *TextFlash {
	return &TextFlash{
		textBase: textBase{Text: t, Pos: pos, Color: col},
		Duration: DefaultTextFlashDuration,
		Interval: DefaultTextFlashInterval,
	}
}

// Render implements Effect.
func (e *TextFlash) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	e.Timeline.Policy = FinishRestartAfterIdle
	e.Timeline.Idle = max(e.Interval-e.Duration, 0)
	elapsed, _ := e.Timeline.Tick(timeMs)
	if e.Timeline.Finished() {
		return
	}
	if e.Duration <= 0 || elapsed >= e.Duration {
		e.Timeline.Finish(timeMs)
		return
	}
	a := 1 - float32(elapsed)/float32(e.Duration)
	e.Text.Draw(c, e.Pos, e.Color.ScaleAlpha(a), BlendNormal)
}

// IsFinished always returns false; the flash repeats.
func (e *TextFlash) IsFinished() bool { return false }

// --- TextShine ---

// shineWidth is the width of the TextShine highlight band.
const shineWidth = 32

// TextShine draws a text and sweeps a diagonal white highlight across it.
type TextShine struct {
	textBase
	Duration int64 // ms
	Easing   ease.TweenFunc

	sweep  *Tween
	offset int
}

// NewTextShine shines t at pos over durationMs.
func NewTextShine(t *Text, pos Point, col Color, durationMs int64) *TextShine {
	return &TextShine{textBase: textBase{Text: t, Pos: pos, Color: col}, Duration: durationMs, Easing: ease.InOutCubic}
}

// Progress returns the sweep progress of the last frame.
func (e *TextShine) Progress() float32 {
	if e.sweep == nil {
		return 0
	}
	return e.sweep.Progress()
}

// Render implements Effect.
func (e *TextShine) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, armed := e.Timeline.Tick(timeMs)
	r := e.Text.Rect(e.Pos)
	if armed || e.sweep == nil {
		e.sweep = NewTween(-shineWidth).To(float32(r.Width + r.Height)).During(float32(e.Duration)).Via(e.Easing)
	}
	e.offset = int(e.sweep.Seek(float32(elapsed)))
	m := e.Text.Mask()
	c.DrawMonoImage(r.Min(), m, e.Color, BlendNormal)
	if e.sweep.Finished() {
		e.Timeline.Finish(timeMs)
		return
	}
	for sy := 0; sy < m.H; sy++ {
		for sx := 0; sx < shineWidth; sx++ {
			x := e.offset + sx - sy
			if x >= 0 && x < m.W && m.Pix[sy*m.W+x] > 0 {
				c.SetPixel(r.X+x, r.Y+sy, White)
			}
		}
	}
}

// --- scaling ---

// drawScaled draws the sr region of src scaled to width pixels, keeping its
// aspect ratio, centered on dst. Pixels with alpha are blended after
// modulating their alpha by alpha. Sampling is nearest-neighbour in 16.16
// fixed point.
func drawScaled(dst, src *Canvas, sr Rect, width int, alpha uint8) {
	sr = sr.Intersect(src.Rect())
	if width <= 0 || sr.Empty() {
		return
	}
	height := int(math.Round(float64(width) / float64(sr.Width) * float64(sr.Height)))
	if height <= 0 {
		return
	}
	ox, oy := (dst.w-width)/2, (dst.h-height)/2
	xr := (sr.Width<<16)/width + 1
	yr := (sr.Height<<16)/height + 1
	for i := 0; i < height; i++ {
		sy := sr.Y + (i*yr)>>16
		for j := 0; j < width; j++ {
			px := src.GetPixel(sr.X+(j*xr)>>16, sy)
			if px.A > 0 {
				dst.BlendPixel(ox+j, oy+i, px.ModulateA(alpha))
			}
		}
	}
}

// --- TextScale ---

// TextScale zooms a text between two scale factors. The text is laid out on
// a canvas-sized layer which is then scaled about the center.
type TextScale struct {
	textBase
	From, To float32 // scale factors
	Duration int64   // ms
	Wait     int64   // ms held at To before finishing
	Easing   ease.TweenFunc
	Texture  Image // optional fill; the text gets a black outline when set

	width *Tween
	layer offscreen
}

// NewTextScale scales t between from and to over durationMs.
func NewTextScale(t *Text, pos Point, col Color, from, to float32, durationMs int64) *TextScale {
	return &TextScale{
		textBase: textBase{Text: t, Pos: pos, Color: col},
		From:     from,
		To:       to,
		Duration: durationMs,
		Easing:   ease.Linear,
	}
}

// Width returns the scaled width of the last frame.
func (e *TextScale) Width() int {
	if e.width == nil {
		return 0
	}
	return int(e.width.Peek())
}

// Render implements Effect.
func (e *TextScale) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, armed := e.Timeline.Tick(timeMs)
	if armed || e.width == nil {
		w := float32(c.w)
		e.width = NewTween(float32(int(w * e.From))).To(float32(int(w * e.To))).During(float32(e.Duration)).Via(e.Easing)
		if e.Wait > 0 {
			e.width.Wait(float32(e.Wait))
		}
	}
	width := int(e.width.Seek(float32(elapsed)))
	if e.width.Finished() {
		e.Timeline.Finish(timeMs)
	}
	layer := e.layer.get(c)
	if e.Texture != nil {
		e.Text.DrawOutline(layer, e.Pos, 2, Black)
		e.Text.DrawTextured(layer, e.Pos, e.Texture, Point{}, BlendMask)
	} else {
		e.Text.Draw(layer, e.Pos, e.Color, BlendMask)
	}
	drawScaled(c, layer, layer.Rect(), width, 255)
}

// --- TextApproach ---

// Approach timing and target opacity.
const (
	approachMs    = 3000
	approachAlpha = 204
	approachStart = 0.05
)

// TextApproach flies a text in from the distance: it grows from 5% to its
// full width while fading in, then holds centered on the canvas.
type TextApproach struct {
	textBase
	Texture Image

	ramp  *Tween
	layer offscreen
}

// NewTextApproach approaches t drawn at pos.
func NewTextApproach(t *Text, pos Point, col Color) *TextApproach {
	return &TextApproach{textBase: textBase{Text: t, Pos: pos, Color: col}}
}

// Render implements Effect.
func (e *TextApproach) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	elapsed, armed := e.Timeline.Tick(timeMs)
	if armed || e.ramp == nil {
		e.ramp = NewTween(approachStart, 0).To(1, approachAlpha).During(approachMs).Via(ease.OutCubic)
	}
	e.ramp.Seek(float32(elapsed))
	if e.ramp.Finished() {
		e.Timeline.Finish(timeMs)
	}
	scale, alpha := e.ramp.Value(0), e.ramp.Value(1)
	layer := e.layer.get(c)
	if e.Texture != nil {
		e.Text.DrawTextured(layer, e.Pos, e.Texture, Point{}, BlendMask)
	} else {
		e.Text.Draw(layer, e.Pos, e.Color, BlendMask)
	}
	r := e.Text.Rect(e.Pos)
	drawScaled(c, layer, r, int(float32(r.Width)*scale), clampByte(alpha))
}

// --- ShadowText ---

// ShadowText draws a text over a half-brightness copy offset one pixel to
// the left and one down.
type ShadowText struct {
	textBase
}

// NewShadowText draws t with a drop shadow.
func NewShadowText(t *Text, pos Point, col Color) *ShadowText {
	return &ShadowText{textBase{Text: t, Pos: pos, Color: col}}
}

// Render implements Effect.
func (e *ShadowText) Render(c *Canvas, timeMs int64) {
	if !e.ok() {
		return
	}
	e.Text.Draw(c, e.Pos.Add(Pt(-1, 1)), e.Color.ModulateRGB(128), BlendNormal)
	e.Text.Draw(c, e.Pos, e.Color, BlendNormal)
}

// IsFinished always returns false.
func (e *ShadowText) IsFinished() bool { return false }
