package libled

import (
	"image"
	"image/color"
)

// Image is a read-only pixel source sampled by the canvas drawing
// primitives. Callers bounds-check coordinates before sampling.
//
// Mono images answer Color with white carrying the sample as alpha. Color
// images answer Mono with their alpha channel.
type Image interface {
	Width() int
	Height() int
	HasColors() bool
	Mono(x, y int) uint8
	Color(x, y int) Color
}

// imageRect returns the full bounds of img, tolerating nil.
func imageRect(img Image) Rect {
	if img == nil {
		return Rect{}
	}
	return Rect{0, 0, img.Width(), img.Height()}
}

// --- MonoImage ---

// MonoImage is a byte-per-pixel image used as a shape, mask or intensity map.
type MonoImage struct {
	W, H int
	Pix  []uint8
}

// NewMonoImage allocates a zeroed mono image. Non-positive sizes produce an
// empty image.
func NewMonoImage(w, h int) *MonoImage {
	w, h = max(w, 0), max(h, 0)
	return &MonoImage{W: w, H: h, Pix: make([]uint8, w*h)}
}

func (m *MonoImage) Width() int      { return m.W }
func (m *MonoImage) Height() int     { return m.H }
func (m *MonoImage) HasColors() bool { return false }

func (m *MonoImage) Mono(x, y int) uint8 {
	return m.Pix[y*m.W+x]
}

func (m *MonoImage) Color(x, y int) Color {
	return Color{255, 255, 255, m.Pix[y*m.W+x]}
}

// At returns the sample at (x, y) or 0 when out of range.
func (m *MonoImage) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	return m.Pix[y*m.W+x]
}

// Set writes a sample, ignoring out-of-range coordinates.
func (m *MonoImage) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = v
}

// --- ColorImage ---

// ColorImage is an RGBA image.
type ColorImage struct {
	W, H int
	Pix  []Color
}

// NewColorImage allocates a transparent color image.
func NewColorImage(w, h int) *ColorImage {
	w, h = max(w, 0), max(h, 0)
	return &ColorImage{W: w, H: h, Pix: make([]Color, w*h)}
}

func (m *ColorImage) Width() int      { return m.W }
func (m *ColorImage) Height() int     { return m.H }
func (m *ColorImage) HasColors() bool { return true }

func (m *ColorImage) Mono(x, y int) uint8 {
	return m.Pix[y*m.W+x].A
}

func (m *ColorImage) Color(x, y int) Color {
	return m.Pix[y*m.W+x]
}

// At returns the color at (x, y) or Transparent when out of range.
func (m *ColorImage) At(x, y int) Color {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return Transparent
	}
	return m.Pix[y*m.W+x]
}

// Set writes a color, ignoring out-of-range coordinates.
func (m *ColorImage) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = c
}

// Fill sets every pixel to c.
func (m *ColorImage) Fill(c Color) {
	for i := range m.Pix {
		m.Pix[i] = c
	}
}

// HasTransparency reports whether any pixel is not fully opaque.
func (m *ColorImage) HasTransparency() bool {
	for _, c := range m.Pix {
		if c.A != 255 {
			return true
		}
	}
	return false
}

// ReplaceColor makes every pixel matching key (ignoring alpha) transparent.
func (m *ColorImage) ReplaceColor(key Color) {
	for i, c := range m.Pix {
		if c.R == key.R && c.G == key.G && c.B == key.B {
			m.Pix[i] = Transparent
		}
	}
}

// Clone returns a deep copy.
func (m *ColorImage) Clone() *ColorImage {
	out := &ColorImage{W: m.W, H: m.H, Pix: make([]Color, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// --- conversions from the standard image package ---

// ImageFromGo copies any image.Image into a ColorImage.
func ImageFromGo(src image.Image) *ColorImage {
	b := src.Bounds()
	out := NewColorImage(b.Dx(), b.Dy())
	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < out.H; y++ {
			row := nrgba.Pix[(y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride:]
			for x := 0; x < out.W; x++ {
				o := (x + b.Min.X - nrgba.Rect.Min.X) * 4
				out.Pix[y*out.W+x] = Color{row[o], row[o+1], row[o+2], row[o+3]}
			}
		}
		return out
	}
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			out.Pix[y*out.W+x] = FromGoColor(src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// MonoFromGo converts an image.Image to a MonoImage. Alpha-only and grey
// images keep their single channel; color images use alpha multiplied by
// luminance.
func MonoFromGo(src image.Image) *MonoImage {
	b := src.Bounds()
	out := NewMonoImage(b.Dx(), b.Dy())
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			var v uint8
			switch px := src.At(b.Min.X+x, b.Min.Y+y).(type) {
			case color.Alpha:
				v = px.A
			case color.Gray:
				v = px.Y
			default:
				c := FromGoColor(px)
				v = div255(uint32(c.Gray()) * uint32(c.A))
			}
			out.Pix[y*out.W+x] = v
		}
	}
	return out
}
