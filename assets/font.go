package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vis-iks/libled"
)

// LoadFont parses TrueType or OpenType data into a face of the given pixel
// size.
func LoadFont(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("assets: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("assets: parse font: %w", err)
	}
	return face, nil
}

// --- BitmapFont ---

type glyph struct {
	x, y          int
	width, height int
	xOffset       int
	yOffset       int
	xAdvance      int
}

const asciiGlyphCount = 128

// BitmapFont is a font.Face over a BMFont atlas, the pixel fonts usually
// drawn for LED matrices. Glyph masks are sub-images of the atlas, so text
// rendered with it is not anti-aliased unless the atlas is.
type BitmapFont struct {
	lineHeight int
	base       int
	page       string // atlas file named by the .fnt

	ascii    [asciiGlyphCount]glyph
	asciiSet [asciiGlyphCount]bool
	ext      map[rune]glyph
	kernings map[[2]rune]int

	atlas *image.Alpha
}

var _ font.Face = (*BitmapFont)(nil)

// LoadBitmapFont parses BMFont text-format data and binds it to the atlas
// image of page 0.
func LoadBitmapFont(fnt []byte, atlas image.Image) (*BitmapFont, error) {
	f, err := parseBitmapFont(fnt)
	if err != nil {
		return nil, err
	}
	f.SetAtlas(atlas)
	return f, nil
}

func parseBitmapFont(fnt []byte) (*BitmapFont, error) {
	f := &BitmapFont{}
	scanner := bufio.NewScanner(bytes.NewReader(fnt))
	chars := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tag, rest, _ := strings.Cut(line, " ")
		fields := parseFields(rest)
		num := func(key string) int {
			v, _ := strconv.Atoi(fields[key])
			return v
		}

		switch tag {
		case "common":
			f.lineHeight = num("lineHeight")
			f.base = num("base")
		case "page":
			if num("id") == 0 {
				f.page = fields["file"]
			}
		case "char":
			if num("page") != 0 {
				continue // single-page fonts only
			}
			chars++
			id := rune(num("id"))
			g := glyph{
				x:        num("x"),
				y:        num("y"),
				width:    num("width"),
				height:   num("height"),
				xOffset:  num("xoffset"),
				yOffset:  num("yoffset"),
				xAdvance: num("xadvance"),
			}
			if id >= 0 && id < asciiGlyphCount {
				f.ascii[id] = g
				f.asciiSet[id] = true
			} else {
				if f.ext == nil {
					f.ext = make(map[rune]glyph)
				}
				f.ext[id] = g
			}
		case "kerning":
			if f.kernings == nil {
				f.kernings = make(map[[2]rune]int)
			}
			f.kernings[[2]rune{rune(num("first")), rune(num("second"))}] = num("amount")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("assets: read .fnt data: %w", err)
	}
	if f.lineHeight == 0 {
		return nil, fmt.Errorf("assets: .fnt data missing common lineHeight")
	}
	if chars == 0 {
		return nil, fmt.Errorf("assets: .fnt data has no char definitions")
	}
	return f, nil
}

// parseFields parses "key=value key=value ..." into a map. Quoted values
// must not contain spaces.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Fields(s) {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(val, `"`)
	}
	return fields
}

// Page returns the atlas file name given by the .fnt data.
func (f *BitmapFont) Page() string { return f.page }

// SetAtlas replaces the glyph atlas. Color atlases are reduced to
// luminance times alpha.
func (f *BitmapFont) SetAtlas(img image.Image) {
	f.atlas = monoAlpha(libled.MonoFromGo(img))
}

func monoAlpha(m *libled.MonoImage) *image.Alpha {
	return &image.Alpha{Pix: m.Pix, Stride: m.W, Rect: image.Rect(0, 0, m.W, m.H)}
}

func (f *BitmapFont) glyph(r rune) (glyph, bool) {
	if r >= 0 && r < asciiGlyphCount {
		return f.ascii[r], f.asciiSet[r]
	}
	g, ok := f.ext[r]
	return g, ok
}

// Close implements font.Face.
func (f *BitmapFont) Close() error { return nil }

// Glyph implements font.Face.
func (f *BitmapFont) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	g, ok := f.glyph(r)
	if !ok || f.atlas == nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Round() + g.xOffset
	y := dot.Y.Round() - f.base + g.yOffset
	dr = image.Rect(x, y, x+g.width, y+g.height)
	return dr, f.atlas, image.Pt(g.x, g.y), fixed.I(g.xAdvance), true
}

// GlyphBounds implements font.Face.
func (f *BitmapFont) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g, ok := f.glyph(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	top := g.yOffset - f.base
	bounds = fixed.R(g.xOffset, top, g.xOffset+g.width, top+g.height)
	return bounds, fixed.I(g.xAdvance), true
}

// GlyphAdvance implements font.Face.
func (f *BitmapFont) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	g, ok := f.glyph(r)
	if !ok {
		return 0, false
	}
	return fixed.I(g.xAdvance), true
}

// Kern implements font.Face.
func (f *BitmapFont) Kern(r0, r1 rune) fixed.Int26_6 {
	return fixed.I(f.kernings[[2]rune{r0, r1}])
}

// Metrics implements font.Face.
func (f *BitmapFont) Metrics() font.Metrics {
	return font.Metrics{
		Height:    fixed.I(f.lineHeight),
		Ascent:    fixed.I(f.base),
		Descent:   fixed.I(f.lineHeight - f.base),
		CapHeight: fixed.I(f.base),
		XHeight:   fixed.I(f.base / 2),
	}
}
