package libled

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// HAlign is the horizontal anchor of a Text.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical anchor of a Text.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// DefaultFace is the face used by texts built without one.
var DefaultFace font.Face = basicfont.Face7x13

// Text is a string rasterized through a font.Face into a cached mono mask.
// It is the text source for the text effects and for textured drawing.
type Text struct {
	HAlign HAlign
	VAlign VAlign

	face  font.Face
	str   string
	mask  *MonoImage
	dirty bool
}

// NewText builds a text. A nil face selects DefaultFace.
func NewText(s string, face font.Face) *Text {
	if face == nil {
		face = DefaultFace
	}
	return &Text{face: face, str: s, dirty: true}
}

// SetText replaces the string.
func (t *Text) SetText(s string) {
	if s != t.str {
		t.str = s
		t.dirty = true
	}
}

// String returns the text.
func (t *Text) String() string { return t.str }

// Face returns the font face.
func (t *Text) Face() font.Face { return t.face }

// SetFace replaces the font face.
func (t *Text) SetFace(f font.Face) {
	if f == nil {
		f = DefaultFace
	}
	if f != t.face {
		t.face = f
		t.dirty = true
	}
}

// Size returns the rasterized size in pixels.
func (t *Text) Size() Size {
	m := t.Mask()
	return Size{m.W, m.H}
}

// Mask returns the rasterized text. Glyph coverage is the sample value.
func (t *Text) Mask() *MonoImage {
	if t.dirty || t.mask == nil {
		t.mask = rasterize(t.face, t.str, t.HAlign)
		t.dirty = false
	}
	return t.mask
}

// Rect returns the bounding box of the text anchored at pos.
func (t *Text) Rect(pos Point) Rect {
	s := t.Size()
	x, y := pos.X, pos.Y
	switch t.HAlign {
	case AlignCenter:
		x -= s.W / 2
	case AlignRight:
		x -= s.W
	}
	switch t.VAlign {
	case AlignMiddle:
		y -= s.H / 2
	case AlignBottom:
		y -= s.H
	}
	return Rect{x, y, s.W, s.H}
}

// Draw draws the text in col.
func (t *Text) Draw(c *Canvas, pos Point, col Color, mode BlendMode) {
	c.DrawMonoImage(t.Rect(pos).Min(), t.Mask(), col, mode)
}

// DrawTextured fills the text shape from tex, scrolled by off.
func (t *Text) DrawTextured(c *Canvas, pos Point, tex Image, off Point, mode BlendMode) {
	c.DrawTextured(t.Rect(pos).Min(), t.Mask(), tex, off, mode)
}

// DrawOutline draws col everywhere within radius pixels of the text shape.
// Draw the text itself afterwards to get an outlined glyph.
func (t *Text) DrawOutline(c *Canvas, pos Point, radius int, col Color) {
	if radius <= 0 {
		return
	}
	at := t.Rect(pos).Min()
	m := t.Mask()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 || dx*dx+dy*dy > radius*radius {
				continue
			}
			c.DrawMonoImage(at.Add(Pt(dx, dy)), m, col, BlendMask)
		}
	}
}

// rasterize renders s line by line into a mono mask sized to fit. Lines are
// aligned within the block according to align.
func rasterize(face font.Face, s string, align HAlign) *MonoImage {
	if s == "" {
		return NewMonoImage(0, 0)
	}
	lines := strings.Split(s, "\n")
	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	widths := make([]int, len(lines))
	w := 0
	for i, ln := range lines {
		widths[i] = font.MeasureString(face, ln).Ceil()
		w = max(w, widths[i])
	}
	h := lineH * len(lines)
	if w == 0 || h == 0 {
		return NewMonoImage(0, 0)
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: dst, Src: image.Opaque, Face: face}
	for i, ln := range lines {
		x := 0
		switch align {
		case AlignCenter:
			x = (w - widths[i]) / 2
		case AlignRight:
			x = w - widths[i]
		}
		d.Dot = fixed.P(x, i*lineH+ascent)
		d.DrawString(ln)
	}
	out := NewMonoImage(w, h)
	for y := 0; y < h; y++ {
		copy(out.Pix[y*w:(y+1)*w], dst.Pix[y*dst.Stride:y*dst.Stride+w])
	}
	return out
}
