package libled

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) 8-bit RGBA value. Colors are
// immutable values; every operation returns a new Color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Gold        = Color{255, 215, 0, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA implements image/color.Color. The returned values are alpha
// premultiplied 16-bit channels as that interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 255
	g = uint32(c.G) * a / 255
	b = uint32(c.B) * a / 255
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// NRGBA converts c to the standard library's straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromGoColor converts any image/color.Color to a Color.
func FromGoColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// String returns the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- Compositing operators ---

// Set returns src unchanged. It exists so that every BlendMode maps to a
// Color method.
func (c Color) Set(src Color) Color {
	return src
}

// Blend composites src over c: rgb = c*(1-sa) + src*sa, a = sa + ca*(1-sa).
func (c Color) Blend(src Color) Color {
	sa := uint32(src.A)
	switch sa {
	case 0:
		return c
	case 255:
		return src
	}
	inv := 255 - sa
	return Color{
		R: div255(uint32(c.R)*inv + uint32(src.R)*sa),
		G: div255(uint32(c.G)*inv + uint32(src.G)*sa),
		B: div255(uint32(c.B)*inv + uint32(src.B)*sa),
		A: div255(sa*255 + uint32(c.A)*inv),
	}
}

// Add adds src weighted by its alpha to c, clamping each channel. The
// destination alpha is preserved.
func (c Color) Add(src Color) Color {
	sa := uint32(src.A)
	if sa == 0 {
		return c
	}
	return Color{
		R: clampAdd(c.R, div255(uint32(src.R)*sa)),
		G: clampAdd(c.G, div255(uint32(src.G)*sa)),
		B: clampAdd(c.B, div255(uint32(src.B)*sa)),
		A: c.A,
	}
}

// AddAlpha is Add but the result alpha is max(c.A, src.A), for accumulation
// buffers that start transparent.
func (c Color) AddAlpha(src Color) Color {
	out := c.Add(src)
	out.A = max(c.A, src.A)
	return out
}

// Mask returns src when it has any opacity, otherwise c.
func (c Color) Mask(src Color) Color {
	if src.A == 0 {
		return c
	}
	return src
}

// Modulate multiplies every channel of c by the matching channel of m.
func (c Color) Modulate(m Color) Color {
	return Color{
		R: div255(uint32(c.R) * uint32(m.R)),
		G: div255(uint32(c.G) * uint32(m.G)),
		B: div255(uint32(c.B) * uint32(m.B)),
		A: div255(uint32(c.A) * uint32(m.A)),
	}
}

// ModulateRGB multiplies the color channels by v/255, leaving alpha alone.
func (c Color) ModulateRGB(v uint8) Color {
	m := uint32(v)
	return Color{
		R: div255(uint32(c.R) * m),
		G: div255(uint32(c.G) * m),
		B: div255(uint32(c.B) * m),
		A: c.A,
	}
}

// ModulateA multiplies alpha by v/255.
func (c Color) ModulateA(v uint8) Color {
	c.A = div255(uint32(c.A) * uint32(v))
	return c
}

// Scale multiplies the color channels by f, clamped to [0, 1].
func (c Color) Scale(f float32) Color {
	return c.ModulateRGB(unit8(f))
}

// ScaleAlpha multiplies alpha by f, clamped to [0, 1].
func (c Color) ScaleAlpha(f float32) Color {
	return c.ModulateA(unit8(f))
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Lerp interpolates every channel from c toward to by t in [0, 1].
func (c Color) Lerp(to Color, t float32) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	return Color{
		R: lerp8(c.R, to.R, t),
		G: lerp8(c.G, to.G, t),
		B: lerp8(c.B, to.B, t),
		A: lerp8(c.A, to.A, t),
	}
}

// Gray returns the luminance of c as a grey level.
func (c Color) Gray() uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B) + 500) / 1000)
}

// Apply combines src into c using mode.
func (c Color) Apply(src Color, mode BlendMode) Color {
	switch mode {
	case BlendNone:
		return src
	case BlendNormal:
		return c.Blend(src)
	case BlendAdd:
		return c.Add(src)
	case BlendMask:
		return c.Mask(src)
	case BlendMultiply:
		return c.Modulate(src)
	default:
		return c.Blend(src)
	}
}

// Gradient interpolates between two colors in RGB space.
func Gradient(from, to Color, t float32) Color {
	return from.Lerp(to, t)
}

// --- go-colorful bridge ---

// Colorful converts c to a go-colorful color, dropping alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful converts a go-colorful color to an opaque Color, clamping
// out-of-gamut values.
func FromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{r, g, b, 255}
}

// HSV builds an opaque color from hue in degrees and saturation/value in [0, 1].
func HSV(h, s, v float64) Color {
	return FromColorful(colorful.Hsv(h, s, v))
}

// Hex parses "#rrggbb" into an opaque color.
func Hex(s string) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(cc), nil
}

// --- BlendMode ---

// BlendMode selects how a source color combines with the destination pixel.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over alpha compositing
	BlendNone                      // opaque overwrite (Set)
	BlendAdd                       // additive, destination alpha kept
	BlendMask                      // overwrite only where the source has alpha
	BlendMultiply                  // modulate destination by source
)

// String returns the mode's name.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendNone:
		return "none"
	case BlendAdd:
		return "add"
	case BlendMask:
		return "mask"
	case BlendMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(b))
	}
}

// --- helpers ---

// div255 divides x by 255 with rounding for x in [0, 255*255].
func div255(x uint32) uint8 {
	x += 128
	return uint8((x + (x >> 8)) >> 8)
}

func clampAdd(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}

// unit8 maps f in [0, 1] to [0, 255].
func unit8(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// clampByte rounds a float in [0, 255] to a byte, clamping.
func clampByte(v float32) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}
