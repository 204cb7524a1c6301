package libled

// Filter transforms a rendered frame. Apply reads src and writes every
// pixel of dst; both have the same size and are never the same canvas.
type Filter interface {
	Apply(src, dst *Canvas)
}

// --- ColorMatrixFilter ---

// ColorMatrixFilter applies a 4x5 color matrix to every pixel. The matrix is
// row-major over normalized channels: [R_r, R_g, R_b, R_a, R_offset, G_r, ...].
type ColorMatrixFilter struct {
	Matrix [20]float32
}

// NewColorMatrixFilter returns a filter initialized to the identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{}
	f.Matrix[0] = 1
	f.Matrix[6] = 1
	f.Matrix[12] = 1
	f.Matrix[18] = 1
	return f
}

// SetBrightness offsets the color channels by b in [-1, 1].
func (f *ColorMatrixFilter) SetBrightness(b float32) {
	f.Matrix = [20]float32{
		1, 0, 0, 0, b,
		0, 1, 0, 0, b,
		0, 0, 1, 0, b,
		0, 0, 0, 1, 0,
	}
}

// SetContrast scales around mid-grey. 1 is unchanged, 0 is flat grey.
func (f *ColorMatrixFilter) SetContrast(c float32) {
	t := (1 - c) / 2
	f.Matrix = [20]float32{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	}
}

// SetSaturation mixes toward luminance. 1 is unchanged, 0 is greyscale.
func (f *ColorMatrixFilter) SetSaturation(s float32) {
	sr := (1 - s) * 0.299
	sg := (1 - s) * 0.587
	sb := (1 - s) * 0.114
	f.Matrix = [20]float32{
		sr + s, sg, sb, 0, 0,
		sr, sg + s, sb, 0, 0,
		sr, sg, sb + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply implements Filter.
func (f *ColorMatrixFilter) Apply(src, dst *Canvas) {
	m := &f.Matrix
	for i, c := range src.pix {
		r := float32(c.R) / 255
		g := float32(c.G) / 255
		b := float32(c.B) / 255
		a := float32(c.A) / 255
		dst.pix[i] = Color{
			R: clampByte((m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]) * 255),
			G: clampByte((m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]) * 255),
			B: clampByte((m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]) * 255),
			A: clampByte((m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]) * 255),
		}
	}
}

// --- BlurFilter ---

// BlurFilter is a box blur. Each output pixel averages the in-bounds
// neighbours within Radius, so edges are not darkened.
type BlurFilter struct {
	Radius int
}

// NewBlurFilter returns a box blur with the given radius.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: max(radius, 0)}
}

// Apply implements Filter.
func (f *BlurFilter) Apply(src, dst *Canvas) {
	r := f.Radius
	if r <= 0 {
		copy(dst.pix, src.pix)
		return
	}
	w, h := src.w, src.h
	for y := 0; y < h; y++ {
		y0, y1 := max(y-r, 0), min(y+r, h-1)
		for x := 0; x < w; x++ {
			x0, x1 := max(x-r, 0), min(x+r, w-1)
			var sr, sg, sb, sa, n uint32
			for yy := y0; yy <= y1; yy++ {
				row := src.pix[yy*w:]
				for xx := x0; xx <= x1; xx++ {
					c := row[xx]
					sr += uint32(c.R)
					sg += uint32(c.G)
					sb += uint32(c.B)
					sa += uint32(c.A)
					n++
				}
			}
			dst.pix[y*w+x] = Color{uint8(sr / n), uint8(sg / n), uint8(sb / n), uint8(sa / n)}
		}
	}
}

// --- OutlineFilter ---

// OutlineFilter paints Color around opaque shapes, Thickness pixels wide,
// and keeps the shapes themselves.
type OutlineFilter struct {
	Thickness int
	Color     Color
}

// NewOutlineFilter returns an outline filter.
func NewOutlineFilter(thickness int, c Color) *OutlineFilter {
	return &OutlineFilter{Thickness: max(thickness, 1), Color: c}
}

// Apply implements Filter.
func (f *OutlineFilter) Apply(src, dst *Canvas) {
	t := f.Thickness
	w, h := src.w, src.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.pix[y*w+x]
			if c.A > 0 {
				dst.pix[y*w+x] = c
				continue
			}
			dst.pix[y*w+x] = Transparent
		search:
			for dy := -t; dy <= t; dy++ {
				for dx := -t; dx <= t; dx++ {
					if dx*dx+dy*dy > t*t {
						continue
					}
					if src.GetPixel(x+dx, y+dy).A > 0 {
						dst.pix[y*w+x] = f.Color
						break search
					}
				}
			}
		}
	}
}

// --- PaletteFilter ---

// PaletteFilter remaps pixels through a 256-entry palette indexed by
// luminance. CycleOffset rotates the palette for color-cycling animation.
type PaletteFilter struct {
	Palette     [256]Color
	CycleOffset int
}

// NewPaletteFilter returns a palette filter with a greyscale ramp.
func NewPaletteFilter() *PaletteFilter {
	f := &PaletteFilter{}
	for i := range f.Palette {
		v := uint8(i)
		f.Palette[i] = Color{v, v, v, 255}
	}
	return f
}

// SetPalette replaces the palette.
func (f *PaletteFilter) SetPalette(p [256]Color) { f.Palette = p }

// Apply implements Filter. Alpha is carried from the source.
func (f *PaletteFilter) Apply(src, dst *Canvas) {
	for i, c := range src.pix {
		if c.A == 0 {
			dst.pix[i] = Transparent
			continue
		}
		idx := (int(c.Gray()) + f.CycleOffset) & 0xff
		dst.pix[i] = f.Palette[idx].WithAlpha(c.A)
	}
}

// --- Filtered ---

// Filtered renders Source off-screen, runs it through Filters in order, and
// blends the result onto the target.
type Filtered struct {
	Source  Effect
	Filters []Filter
	Mode    BlendMode

	buf, tmp offscreen
}

// NewFiltered wraps src with a filter chain.
func NewFiltered(src Effect, filters ...Filter) *Filtered {
	return &Filtered{Source: effectOrNil(src), Filters: filters}
}

// Render implements Effect.
func (f *Filtered) Render(c *Canvas, timeMs int64) {
	if f.Source == nil {
		return
	}
	cur := f.buf.renderInto(f.Source, c, timeMs)
	cur = applyFilters(f.Filters, cur, &f.tmp)
	c.DrawColorImage(Point{}, cur, f.Mode)
}

// Reset implements Effect.
func (f *Filtered) Reset() { resetEffect(f.Source) }

// IsFinished implements Effect.
func (f *Filtered) IsFinished() bool { return effectFinished(f.Source) }

// applyFilters runs a filter chain on src, ping-ponging between src and a
// scratch canvas. It returns whichever holds the final result.
func applyFilters(filters []Filter, src *Canvas, scratch *offscreen) *Canvas {
	if len(filters) == 0 {
		return src
	}
	cur := src
	tmp := scratch.get(src)
	for _, f := range filters {
		f.Apply(cur, tmp)
		cur, tmp = tmp, cur
	}
	return cur
}

// --- Fade ---

// Fade scales the brightness of its source. Brightness is set directly or
// ramped by FadeIn and FadeOut.
type Fade struct {
	Source Effect

	brightness float32
	ramping    bool
	ramp       *Tween
	rampFrom   float32
	rampTo     float32
	rampMs     float32
	tl         Timeline
	buf        offscreen
}

// NewFade wraps src at full brightness.
func NewFade(src Effect) *Fade {
	return &Fade{Source: effectOrNil(src), brightness: 1}
}

// SetBrightness sets a fixed brightness in [0, 1] and cancels any ramp.
func (f *Fade) SetBrightness(b float32) {
	f.brightness = min(max(b, 0), 1)
	f.ramping = false
	f.ramp = nil
}

// Brightness returns the brightness used by the last frame.
func (f *Fade) Brightness() float32 { return f.brightness }

// FadeIn ramps brightness from 0 to 1 over ms, starting at the next frame.
func (f *Fade) FadeIn(ms float32) *Fade { return f.fadeTo(0, 1, ms) }

// FadeOut ramps brightness from 1 to 0 over ms, starting at the next frame.
func (f *Fade) FadeOut(ms float32) *Fade { return f.fadeTo(1, 0, ms) }

func (f *Fade) fadeTo(from, to, ms float32) *Fade {
	f.rampFrom, f.rampTo, f.rampMs = from, to, max(ms, 0)
	f.brightness = from
	f.ramping = true
	f.ramp = nil
	f.tl.Reset()
	return f
}

// Render implements Effect.
func (f *Fade) Render(c *Canvas, timeMs int64) {
	if f.Source == nil {
		return
	}
	if f.ramping {
		elapsed, armed := f.tl.Tick(timeMs)
		if armed || f.ramp == nil {
			f.ramp = NewTween(f.rampFrom).To(f.rampTo).During(f.rampMs)
		}
		f.brightness = f.ramp.Seek(float32(elapsed))
		if f.ramp.Finished() {
			f.tl.Finish(timeMs)
		}
	}
	if f.brightness >= 1 {
		f.Source.Render(c, timeMs)
		return
	}
	buf := f.buf.renderInto(f.Source, c, timeMs)
	buf.ScaleRGB(f.brightness)
	c.DrawColorImage(Point{}, buf, BlendNormal)
}

// Reset restarts any ramp and resets the source.
func (f *Fade) Reset() {
	f.tl.Reset()
	f.ramp = nil
	if f.ramping {
		f.brightness = f.rampFrom
	}
	resetEffect(f.Source)
}

// IsFinished reports whether a ramp has completed, or without a ramp,
// whether the source has.
func (f *Fade) IsFinished() bool {
	if f.ramping {
		return f.tl.Finished()
	}
	return effectFinished(f.Source)
}

// --- Blur ---

// Blur applies a 3x3 box blur to its source's output.
type Blur struct {
	Source Effect

	filter BlurFilter
	buf    offscreen
}

// NewBlur wraps src.
func NewBlur(src Effect) *Blur {
	return &Blur{Source: effectOrNil(src), filter: BlurFilter{Radius: 1}}
}

// Render implements Effect.
func (b *Blur) Render(c *Canvas, timeMs int64) {
	if b.Source == nil {
		return
	}
	b.Source.Render(c, timeMs)
	cp := b.buf.get(c)
	copy(cp.pix, c.pix)
	b.filter.Apply(cp, c)
}

// Reset implements Effect.
func (b *Blur) Reset() { resetEffect(b.Source) }

// IsFinished implements Effect.
func (b *Blur) IsFinished() bool { return effectFinished(b.Source) }

// --- Flash ---

// DefaultFlashPeriod is the Flash period when none is set.
const DefaultFlashPeriod = 1000

const flashLength = 200

// Flash overlays a white burst at the start of every period that decays
// linearly over 200 ms.
type Flash struct {
	Source Effect
	Period int64 // ms

	tl Timeline
}

// NewFlash wraps src with the default period.
func NewFlash(src Effect) *Flash {
	return &Flash{Source: effectOrNil(src), Period: DefaultFlashPeriod}
}

// Render implements Effect.
func (f *Flash) Render(c *Canvas, timeMs int64) {
	if f.Source == nil {
		return
	}
	f.Source.Render(c, timeMs)
	elapsed, _ := f.tl.Tick(timeMs)
	period := f.Period
	if period <= 0 {
		period = DefaultFlashPeriod
	}
	t := elapsed % period
	if t >= flashLength {
		return
	}
	intensity := 1 - float32(t)/flashLength
	c.FillRect(c.Rect(), White.ScaleAlpha(intensity), BlendNormal)
}

// Reset implements Effect.
func (f *Flash) Reset() {
	f.tl.Reset()
	resetEffect(f.Source)
}

// IsFinished implements Effect.
func (f *Flash) IsFinished() bool { return effectFinished(f.Source) }
