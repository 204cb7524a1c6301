package libled

import (
	"math"
	"math/rand/v2"
)

// SolidColor clears the canvas to Color.
type SolidColor struct {
	Continuous
	Color Color
}

// NewSolidColor returns a generator for c.
func NewSolidColor(c Color) *SolidColor { return &SolidColor{Color: c} }

// Render implements Effect.
func (e *SolidColor) Render(c *Canvas, timeMs int64) { c.Clear(e.Color) }

// GradientKind selects the gradient geometry.
type GradientKind uint8

const (
	LinearHorizontal GradientKind = iota
	LinearVertical
	Radial
)

// ColorSpace selects the space gradients interpolate in.
type ColorSpace uint8

const (
	SpaceRGB ColorSpace = iota
	SpaceHSV
	SpaceLab
)

// GradientEffect fills the canvas with a two-stop gradient.
type GradientEffect struct {
	Continuous
	From, To Color
	Kind     GradientKind
	Space    ColorSpace
}

// NewGradient returns a horizontal RGB gradient from one color to another.
func NewGradient(from, to Color) *GradientEffect {
	return &GradientEffect{From: from, To: to}
}

// At returns the gradient color at parameter t in [0, 1].
func (e *GradientEffect) At(t float32) Color {
	t = Clamp(t, 0, 1)
	switch e.Space {
	case SpaceHSV:
		c := FromColorful(e.From.Colorful().BlendHsv(e.To.Colorful(), float64(t)).Clamped())
		return c.WithAlpha(lerp8(e.From.A, e.To.A, t))
	case SpaceLab:
		c := FromColorful(e.From.Colorful().BlendLab(e.To.Colorful(), float64(t)).Clamped())
		return c.WithAlpha(lerp8(e.From.A, e.To.A, t))
	}
	return Gradient(e.From, e.To, t)
}

// Render implements Effect.
func (e *GradientEffect) Render(c *Canvas, timeMs int64) {
	switch e.Kind {
	case LinearHorizontal:
		for x := 0; x < c.w; x++ {
			col := e.At(ratio(x, c.w-1))
			for y := 0; y < c.h; y++ {
				c.pix[y*c.w+x] = col
			}
		}
	case LinearVertical:
		for y := 0; y < c.h; y++ {
			col := e.At(ratio(y, c.h-1))
			row := c.pix[y*c.w : (y+1)*c.w]
			for x := range row {
				row[x] = col
			}
		}
	case Radial:
		cx, cy := float32(c.w)/2, float32(c.h)/2
		maxDist := sqrt32(cx*cx + cy*cy)
		for y := 0; y < c.h; y++ {
			for x := 0; x < c.w; x++ {
				dx, dy := float32(x)-cx, float32(y)-cy
				t := float32(0)
				if maxDist > 0 {
					t = sqrt32(dx*dx+dy*dy) / maxDist
				}
				c.pix[y*c.w+x] = e.At(t)
			}
		}
	}
}

func ratio(v, n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(v) / float32(n)
}

// Plasma is the classic three-sine plasma in a red, cyan and blue palette.
type Plasma struct {
	Continuous
	Timeline Timeline
}

// NewPlasma returns a plasma generator.
func NewPlasma() *Plasma { return &Plasma{} }

// Render implements Effect.
func (e *Plasma) Render(c *Canvas, timeMs int64) {
	elapsed, _ := e.Timeline.Tick(timeMs)
	t := float64(elapsed) / 1000
	for y := 0; y < c.h; y++ {
		fy := float64(y) / 10
		v2 := math.Sin((fy + t) / 2)
		for x := 0; x < c.w; x++ {
			fx := float64(x) / 10
			v1 := math.Sin(fx + t)
			v3 := math.Sin((fx + fy + t) / 2)
			v := float32((math.Sin(v1+v2+v3) + 1) / 2)
			c.pix[y*c.w+x] = Color{clampByte(v * 255), clampByte((1 - v) * 255), 255, 255}
		}
	}
}

// Reset restarts plasma time.
func (e *Plasma) Reset() { e.Timeline.Reset() }

// ImageEffect draws a static image.
type ImageEffect struct {
	Continuous
	Image Image
	Pos   Point
	Mode  BlendMode
}

// NewImageEffect draws img at the origin, blending.
func NewImageEffect(img Image) *ImageEffect {
	return &ImageEffect{Image: img, Mode: BlendNormal}
}

// Render implements Effect.
func (e *ImageEffect) Render(c *Canvas, timeMs int64) {
	if e.Image != nil {
		c.DrawColorImage(e.Pos, e.Image, e.Mode)
	}
}

// --- StarField ---

type star struct {
	x, y       float32
	speed      float32 // px/s
	brightness float32
	size       int
}

// StarField moves parallax stars left to right through a horizontal band
// centered on the canvas. Faster stars are brighter and now and then twice
// the size.
type StarField struct {
	Continuous
	Count      int
	BandHeight int
	Rand       *rand.Rand

	stars []star
	w, h  int
	dt    frameDelta
}

// NewStarField returns count stars in a band bandHeight rows tall.
func NewStarField(count, bandHeight int) *StarField {
	return &StarField{Count: count, BandHeight: bandHeight}
}

// Stars returns the number of live stars.
func (e *StarField) Stars() int { return len(e.stars) }

func (e *StarField) init(s *star, randomX bool) {
	s.x = -5
	if randomX {
		s.x = float32(e.Rand.IntN(max(e.w, 1)))
	}
	band := max(min(e.BandHeight, e.h), 1)
	s.y = float32(e.h/2 - band/2 + e.Rand.IntN(band))
	f := float32(e.Rand.IntN(100)) / 100
	s.speed = 10 + f*40
	s.brightness = 0.3 + f*0.7
	s.size = 1
	if f > 0.8 && e.Rand.IntN(5) == 0 {
		s.size = 2
	}
}

// Render implements Effect.
func (e *StarField) Render(c *Canvas, timeMs int64) {
	if e.Rand == nil {
		e.Rand = newRand()
	}
	if e.stars == nil || e.w != c.w || e.h != c.h {
		e.w, e.h = c.w, c.h
		e.stars = make([]star, max(e.Count, 0))
		for i := range e.stars {
			e.init(&e.stars[i], true)
		}
	}
	dt := e.dt.step(timeMs)
	for i := range e.stars {
		s := &e.stars[i]
		s.x += s.speed * dt
		if s.x > float32(c.w) {
			e.init(s, false)
		}
		b := unit8(s.brightness)
		col := Color{b, b, b, 255}
		ix, iy := int(s.x), int(s.y)
		c.SetPixel(ix, iy, col)
		if s.size == 2 {
			c.SetPixel(ix+1, iy, col)
			c.SetPixel(ix, iy+1, col)
			c.SetPixel(ix+1, iy+1, col)
		}
	}
}

// Reset scatters the stars again on the next frame.
func (e *StarField) Reset() {
	e.stars = nil
	e.dt.reset()
}

// --- FireText ---

// Spark tuning for FireText, in pixels and seconds.
const (
	sparkDelay  = 500  // ms before the first sparks
	sparkChance = 2.0  // per mask pixel per second
	sparkDecay  = 2.0  // life lost per second
	sparkSpeed  = 40.0 // per-frame units to px/s at 25 ms frames
)

// FireText fills the shape drawn by Mask with Shader, and optionally throws
// sparks off it. Mask is rendered into a private layer every frame; any
// pixel it leaves with alpha above zero is painted, with the mask's alpha.
type FireText struct {
	Continuous
	Mask   Effect
	Shader Shader
	Sparks bool
	Rand   *rand.Rand

	Timeline Timeline

	layer offscreen
	pool  particlePool
	dt    frameDelta
}

// NewFireText burns the shape drawn by mask with FireShader and sparks.
func NewFireText(mask Effect) *FireText {
	return &FireText{Mask: effectOrNil(mask), Shader: FireShader, Sparks: true}
}

// SparkCount returns the number of live sparks.
func (e *FireText) SparkCount() int { return e.pool.alive }

// Render implements Effect.
func (e *FireText) Render(c *Canvas, timeMs int64) {
	if e.Mask == nil {
		return
	}
	if e.Rand == nil {
		e.Rand = newRand()
	}
	if e.pool.particles == nil {
		e.pool = newParticlePool(1024)
	}
	elapsed, armed := e.Timeline.Tick(timeMs)
	if armed {
		e.pool.clear()
		e.dt.reset()
	}
	dt := e.dt.step(timeMs)
	layer := e.layer.renderInto(e.Mask, c, timeMs)
	shader := e.Shader
	if shader == nil {
		shader = FireShader
	}
	t := float32(elapsed) / 1000
	fw, fh := float32(c.w), float32(c.h)
	spawn := e.Sparks && elapsed > sparkDelay
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			a := layer.pix[y*c.w+x].A
			if a == 0 {
				continue
			}
			col := shader(float32(x)/fw, float32(y)/fh, t)
			c.BlendPixel(x, y, col.ModulateA(a))
			if spawn && e.Rand.Float32() < sparkChance*dt {
				if p := e.pool.spawn(); p != nil {
					r := e.Rand.Float32()
					p.x, p.y = float32(x), float32(y)
					p.vx = (r - 0.5) * 0.5 * sparkSpeed
					p.vy = (-0.2 - r*0.2) * sparkSpeed
					p.life, p.maxLife = 1, 1
					p.color = col.WithAlpha(255)
				}
			}
		}
	}
	for i := 0; i < e.pool.alive; i++ {
		p := &e.pool.particles[i]
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.life -= sparkDecay * dt
		if p.life <= 0 {
			e.pool.kill(i)
			i--
			continue
		}
		col := p.color
		if p.life < 0.5 {
			col = col.ScaleAlpha(p.life * 2)
		}
		c.BlendPixel(int(p.x), int(p.y), col)
	}
}

// Reset restarts the burn and drops all sparks.
func (e *FireText) Reset() {
	e.Timeline.Reset()
	resetEffect(e.Mask)
	e.pool.clear()
	e.dt.reset()
}
