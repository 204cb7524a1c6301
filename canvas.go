package libled

import (
	"fmt"
	"image"
	"image/color"
)

// Canvas is a fixed-size RGBA frame buffer. Every pixel accessor is bounds
// checked: writes outside the canvas are ignored and reads return
// Transparent. Drawing calls clip their source rectangle against both the
// source image and the canvas before iterating.
//
// A Canvas also satisfies Image, so one canvas can be composited into
// another, and image.Image, so frames can be encoded directly.
type Canvas struct {
	w, h int
	pix  []Color
}

// NewCanvas allocates a transparent canvas. It panics on negative sizes.
func NewCanvas(w, h int) *Canvas {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("libled: invalid canvas size %dx%d", w, h))
	}
	return &Canvas{w: w, h: h, pix: make([]Color, w*h)}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.h }

// Size returns the canvas dimensions.
func (c *Canvas) Size() Size { return Size{c.w, c.h} }

// Rect returns the canvas bounds as a Rect at the origin.
func (c *Canvas) Rect() Rect { return Rect{0, 0, c.w, c.h} }

// Pixels returns the row-major backing slice. Backends read it directly;
// callers must not retain it across frames.
func (c *Canvas) Pixels() []Color { return c.pix }

// HasColors implements Image.
func (c *Canvas) HasColors() bool { return true }

// Mono implements Image by returning the alpha channel.
func (c *Canvas) Mono(x, y int) uint8 { return c.pix[y*c.w+x].A }

// Color implements Image.
func (c *Canvas) Color(x, y int) Color { return c.pix[y*c.w+x] }

// --- image.Image ---

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.w, c.h) }

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color { return c.GetPixel(x, y).NRGBA() }

// --- Pixel access ---

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

// SetPixel overwrites a pixel.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if c.inside(x, y) {
		c.pix[y*c.w+x] = col
	}
}

// GetPixel returns a pixel, or Transparent when (x, y) is out of range.
func (c *Canvas) GetPixel(x, y int) Color {
	if !c.inside(x, y) {
		return Transparent
	}
	return c.pix[y*c.w+x]
}

// BlendPixel alpha-composites col over a pixel.
func (c *Canvas) BlendPixel(x, y int, col Color) {
	if c.inside(x, y) {
		i := y*c.w + x
		c.pix[i] = c.pix[i].Blend(col)
	}
}

// AddPixel adds col to a pixel.
func (c *Canvas) AddPixel(x, y int, col Color) {
	if c.inside(x, y) {
		i := y*c.w + x
		c.pix[i] = c.pix[i].Add(col)
	}
}

// MaskPixel writes col only if it has alpha.
func (c *Canvas) MaskPixel(x, y int, col Color) {
	if c.inside(x, y) {
		i := y*c.w + x
		c.pix[i] = c.pix[i].Mask(col)
	}
}

// ModulatePixel multiplies a pixel by col.
func (c *Canvas) ModulatePixel(x, y int, col Color) {
	if c.inside(x, y) {
		i := y*c.w + x
		c.pix[i] = c.pix[i].Modulate(col)
	}
}

// DrawPixel combines col into a pixel using mode.
func (c *Canvas) DrawPixel(x, y int, col Color, mode BlendMode) {
	if c.inside(x, y) {
		i := y*c.w + x
		c.pix[i] = c.pix[i].Apply(col, mode)
	}
}

// --- Bulk operations ---

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col Color) {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0] = col
	for filled := 1; filled < len(c.pix); filled *= 2 {
		copy(c.pix[filled:], c.pix[:filled])
	}
}

// Modulate multiplies every pixel by m.
func (c *Canvas) Modulate(m Color) {
	for i := range c.pix {
		c.pix[i] = c.pix[i].Modulate(m)
	}
}

// Scale multiplies every pixel's RGBA by f in [0, 1].
func (c *Canvas) Scale(f float32) {
	v := unit8(f)
	if v == 255 {
		return
	}
	c.Modulate(Color{v, v, v, v})
}

// ScaleRGB multiplies every pixel's color channels by f in [0, 1], keeping
// alpha.
func (c *Canvas) ScaleRGB(f float32) {
	v := unit8(f)
	if v == 255 {
		return
	}
	for i := range c.pix {
		c.pix[i] = c.pix[i].ModulateRGB(v)
	}
}

// CopyTo copies the overlapping area of c into dst at the origin.
func (c *Canvas) CopyTo(dst *Canvas) {
	if dst == nil || dst == c {
		return
	}
	if dst.w == c.w && dst.h == c.h {
		copy(dst.pix, c.pix)
		return
	}
	w, h := min(c.w, dst.w), min(c.h, dst.h)
	for y := 0; y < h; y++ {
		copy(dst.pix[y*dst.w:y*dst.w+w], c.pix[y*c.w:y*c.w+w])
	}
}

// CopyRegion copies rect r of src into c with its top-left corner at at.
// Both rectangles are clipped.
func (c *Canvas) CopyRegion(src *Canvas, r Rect, at Point) {
	if src == nil {
		return
	}
	dst, sx, sy, ok := c.clip(at, src, r)
	if !ok {
		return
	}
	for y := 0; y < dst.Height; y++ {
		di := (dst.Y+y)*c.w + dst.X
		si := (sy+y)*src.w + sx
		copy(c.pix[di:di+dst.Width], src.pix[si:si+dst.Width])
	}
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := NewCanvas(c.w, c.h)
	copy(out.pix, c.pix)
	return out
}

// SavePNG encodes the canvas as a PNG file at path.
func (c *Canvas) SavePNG(path string) error { return writePNG(path, c) }

// --- Primitives ---

// DrawLine draws a one-pixel line from p1 to p2 inclusive.
func (c *Canvas) DrawLine(p1, p2 Point, col Color, mode BlendMode) {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X {
		sx = -1
	}
	if p1.Y > p2.Y {
		sy = -1
	}
	e := dx + dy
	x, y := p1.X, p1.Y
	for {
		c.DrawPixel(x, y, col, mode)
		if x == p2.X && y == p2.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// FillRect fills r with col.
func (c *Canvas) FillRect(r Rect, col Color, mode BlendMode) {
	r = r.Intersect(c.Rect())
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := c.pix[y*c.w+r.X : y*c.w+r.Right()]
		if mode == BlendNone {
			for i := range row {
				row[i] = col
			}
			continue
		}
		for i := range row {
			row[i] = row[i].Apply(col, mode)
		}
	}
}

// DrawRect draws r with a one-pixel outline in line and its interior in
// fill. A fully transparent line or fill color skips that part.
func (c *Canvas) DrawRect(r Rect, line, fill Color, mode BlendMode) {
	if r.Empty() {
		return
	}
	if fill.A > 0 || mode == BlendNone && fill != Transparent {
		c.FillRect(Rect{r.X + 1, r.Y + 1, r.Width - 2, r.Height - 2}, fill, mode)
	}
	if line.A == 0 {
		return
	}
	c.FillRect(Rect{r.X, r.Y, r.Width, 1}, line, mode)
	if r.Height > 1 {
		c.FillRect(Rect{r.X, r.Bottom() - 1, r.Width, 1}, line, mode)
	}
	if r.Height > 2 {
		c.FillRect(Rect{r.X, r.Y + 1, 1, r.Height - 2}, line, mode)
		if r.Width > 1 {
			c.FillRect(Rect{r.Right() - 1, r.Y + 1, 1, r.Height - 2}, line, mode)
		}
	}
}

// --- Image drawing ---

// clip intersects the source rect sr with img's bounds and with the canvas
// area it lands on when drawn at pos. It returns the destination rect and
// the matching source origin.
func (c *Canvas) clip(pos Point, img Image, sr Rect) (dst Rect, sx, sy int, ok bool) {
	sr = sr.Intersect(imageRect(img))
	if sr.Empty() {
		return Rect{}, 0, 0, false
	}
	dst = Rect{pos.X, pos.Y, sr.Width, sr.Height}.Intersect(c.Rect())
	if dst.Empty() {
		return Rect{}, 0, 0, false
	}
	return dst, sr.X + dst.X - pos.X, sr.Y + dst.Y - pos.Y, true
}

// DrawColorImage draws a whole color image at pos.
func (c *Canvas) DrawColorImage(pos Point, img Image, mode BlendMode) {
	c.DrawColorImageRect(pos, img, imageRect(img), mode)
}

// DrawColorImageRect draws the src sub-rectangle of a color image at pos.
func (c *Canvas) DrawColorImageRect(pos Point, img Image, src Rect, mode BlendMode) {
	dst, sx, sy, ok := c.clip(pos, img, src)
	if !ok {
		return
	}
	for y := 0; y < dst.Height; y++ {
		di := (dst.Y+y)*c.w + dst.X
		for x := 0; x < dst.Width; x++ {
			c.pix[di+x] = c.pix[di+x].Apply(img.Color(sx+x, sy+y), mode)
		}
	}
}

// DrawColorImageMod draws a color image with every pixel modulated by mod.
func (c *Canvas) DrawColorImageMod(pos Point, img Image, mod Color, mode BlendMode) {
	c.DrawColorImageModRect(pos, img, mod, imageRect(img), mode)
}

// DrawColorImageModRect is DrawColorImageMod restricted to a source rect.
func (c *Canvas) DrawColorImageModRect(pos Point, img Image, mod Color, src Rect, mode BlendMode) {
	dst, sx, sy, ok := c.clip(pos, img, src)
	if !ok {
		return
	}
	for y := 0; y < dst.Height; y++ {
		di := (dst.Y+y)*c.w + dst.X
		for x := 0; x < dst.Width; x++ {
			s := img.Color(sx+x, sy+y).Modulate(mod)
			c.pix[di+x] = c.pix[di+x].Apply(s, mode)
		}
	}
}

// DrawMonoImage draws a mono image as col with per-pixel alpha taken from
// the mono sample. With BlendMask, col is written unchanged wherever the
// sample is non-zero.
func (c *Canvas) DrawMonoImage(pos Point, img Image, col Color, mode BlendMode) {
	c.DrawMonoImageRect(pos, img, col, imageRect(img), mode)
}

// DrawMonoImageRect is DrawMonoImage restricted to a source rect.
func (c *Canvas) DrawMonoImageRect(pos Point, img Image, col Color, src Rect, mode BlendMode) {
	dst, sx, sy, ok := c.clip(pos, img, src)
	if !ok {
		return
	}
	for y := 0; y < dst.Height; y++ {
		di := (dst.Y+y)*c.w + dst.X
		for x := 0; x < dst.Width; x++ {
			m := img.Mono(sx+x, sy+y)
			if mode == BlendMask {
				if m > 0 {
					c.pix[di+x] = col
				}
				continue
			}
			c.pix[di+x] = c.pix[di+x].Apply(col.ModulateA(m), mode)
		}
	}
}

// DrawTextured draws the shape of mask filled with colors from tex. The
// texture wraps and is sampled at the mask coordinate plus texOffset.
func (c *Canvas) DrawTextured(pos Point, mask, tex Image, texOffset Point, mode BlendMode) {
	c.drawTextured(pos, mask, tex, texOffset, White, false, imageRect(mask), mode)
}

// DrawTexturedRect is DrawTextured restricted to a source rect of mask.
func (c *Canvas) DrawTexturedRect(pos Point, mask, tex Image, texOffset Point, src Rect, mode BlendMode) {
	c.drawTextured(pos, mask, tex, texOffset, White, false, src, mode)
}

// DrawTexturedMod is DrawTextured with the texture color modulated by tint.
func (c *Canvas) DrawTexturedMod(pos Point, mask, tex Image, texOffset Point, tint Color, mode BlendMode) {
	c.drawTextured(pos, mask, tex, texOffset, tint, true, imageRect(mask), mode)
}

// DrawTexturedModRect is DrawTexturedMod restricted to a source rect.
func (c *Canvas) DrawTexturedModRect(pos Point, mask, tex Image, texOffset Point, tint Color, src Rect, mode BlendMode) {
	c.drawTextured(pos, mask, tex, texOffset, tint, true, src, mode)
}

func (c *Canvas) drawTextured(pos Point, mask, tex Image, off Point, tint Color, tinted bool, src Rect, mode BlendMode) {
	if tex == nil {
		return
	}
	tw, th := tex.Width(), tex.Height()
	if tw <= 0 || th <= 0 {
		return
	}
	dst, sx, sy, ok := c.clip(pos, mask, src)
	if !ok {
		return
	}
	for y := 0; y < dst.Height; y++ {
		di := (dst.Y+y)*c.w + dst.X
		ty := wrap(sy+y+off.Y, th)
		for x := 0; x < dst.Width; x++ {
			m := mask.Mono(sx+x, sy+y)
			if m == 0 && (mode == BlendMask || mode == BlendNormal || mode == BlendAdd) {
				continue
			}
			tc := tex.Color(wrap(sx+x+off.X, tw), ty)
			if tinted {
				tc = tc.Modulate(tint)
			}
			if mode == BlendMask {
				c.pix[di+x] = tc
				continue
			}
			c.pix[di+x] = c.pix[di+x].Apply(tc.ModulateA(m), mode)
		}
	}
}

// wrap maps v into [0, n) for n > 0.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
