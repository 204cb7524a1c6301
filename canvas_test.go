package libled

import (
	"image"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func solidImage(w, h int, c Color) *ColorImage {
	img := NewColorImage(w, h)
	img.Fill(c)
	return img
}

func TestCanvasBlendSquare(t *testing.T) {
	c := NewCanvas(16, 16)
	c.Clear(Black)
	c.DrawColorImage(Pt(4, 4), solidImage(8, 8, White), BlendNormal)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			want := Black
			if x >= 4 && x <= 11 && y >= 4 && y <= 11 {
				want = White
			}
			if got := c.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(8, 4)
	c.Clear(Red)
	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		x, y := rng.IntN(40)-20, rng.IntN(40)-20
		c.SetPixel(x, y, Blue)
		c.BlendPixel(x, y, Blue)
		c.AddPixel(x, y, Blue)
		c.MaskPixel(x, y, Blue)
		c.ModulatePixel(x, y, Blue)
		c.DrawPixel(x, y, Blue, BlendAdd)
		got := c.GetPixel(x, y)
		if !c.Rect().Contains(x, y) && got != Transparent {
			t.Fatalf("GetPixel(%d,%d) = %v, want transparent", x, y, got)
		}
	}
	if got := c.GetPixel(-1, 0); got != Transparent {
		t.Errorf("GetPixel(-1,0) = %v", got)
	}
}

func TestCanvasDrawClipped(t *testing.T) {
	c := NewCanvas(8, 8)
	c.DrawColorImage(Pt(-4, -4), solidImage(8, 8, Red), BlendNone)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := Transparent
			if x < 4 && y < 4 {
				want = Red
			}
			if got := c.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCanvasDegenerateSources(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawColorImage(Pt(0, 0), NewColorImage(0, 0), BlendNormal)
	c.DrawMonoImage(Pt(0, 0), NewMonoImage(0, 3), White, BlendNormal)
	c.DrawTextured(Pt(0, 0), NewMonoImage(2, 2), NewColorImage(0, 0), Point{}, BlendMask)
	c.DrawColorImage(Pt(100, 100), solidImage(2, 2, Red), BlendNormal)
	c.DrawColorImageRect(Pt(0, 0), solidImage(2, 2, Red), Rect{5, 5, 2, 2}, BlendNormal)
	c.DrawColorImage(Pt(0, 0), nil, BlendNormal)
	for _, px := range c.Pixels() {
		if px != Transparent {
			t.Fatalf("degenerate draws changed the canvas: %v", px)
		}
	}
}

func TestNewCanvasNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewCanvas(-1, 2) should panic")
		}
	}()
	NewCanvas(-1, 2)
}

func TestCanvasDrawMono(t *testing.T) {
	m := NewMonoImage(2, 1)
	m.Set(0, 0, 255)
	m.Set(1, 0, 0)

	c := NewCanvas(2, 1)
	c.Clear(Blue)
	c.DrawMonoImage(Pt(0, 0), m, Red, BlendMask)
	assertColor(t, "mask set", c.GetPixel(0, 0), Red)
	assertColor(t, "mask unset", c.GetPixel(1, 0), Blue)

	m.Set(0, 0, 128)
	c.Clear(Black)
	c.DrawMonoImage(Pt(0, 0), m, White, BlendNormal)
	assertColor(t, "coverage blend", c.GetPixel(0, 0), Color{128, 128, 128, 255})
	assertColor(t, "zero coverage", c.GetPixel(1, 0), Black)
}

func TestCanvasDrawTexturedWraps(t *testing.T) {
	tex := NewColorImage(2, 1)
	tex.Set(0, 0, Red)
	tex.Set(1, 0, Green)
	mask := NewMonoImage(4, 1)
	for x := range 4 {
		mask.Set(x, 0, 255)
	}
	c := NewCanvas(4, 1)
	c.DrawTextured(Pt(0, 0), mask, tex, Pt(1, 0), BlendMask)
	want := []Color{Green, Red, Green, Red}
	for x, w := range want {
		assertColor(t, "textured", c.GetPixel(x, 0), w)
	}

	c.Clear(Transparent)
	c.DrawTexturedMod(Pt(0, 0), mask, tex, Point{}, Color{128, 128, 128, 255}, BlendMask)
	assertColor(t, "tinted", c.GetPixel(0, 0), Color{128, 0, 0, 255})
}

func TestCanvasPrimitives(t *testing.T) {
	c := NewCanvas(5, 5)
	c.DrawLine(Pt(0, 0), Pt(4, 4), White, BlendNone)
	for i := range 5 {
		assertColor(t, "diagonal", c.GetPixel(i, i), White)
	}
	assertColor(t, "off diagonal", c.GetPixel(1, 0), Transparent)

	c.Clear(Black)
	c.FillRect(Rect{3, 3, 10, 10}, Red, BlendNone)
	assertColor(t, "fill inside", c.GetPixel(4, 4), Red)
	assertColor(t, "fill outside", c.GetPixel(2, 2), Black)

	c.Clear(Black)
	c.DrawRect(Rect{0, 0, 5, 5}, White, Blue, BlendNone)
	assertColor(t, "outline", c.GetPixel(0, 2), White)
	assertColor(t, "outline corner", c.GetPixel(4, 4), White)
	assertColor(t, "interior", c.GetPixel(2, 2), Blue)
}

func TestCanvasCopies(t *testing.T) {
	src := NewCanvas(4, 4)
	src.Clear(Red)
	src.SetPixel(1, 1, Blue)

	dst := NewCanvas(4, 4)
	dst.CopyRegion(src, Rect{1, 1, 2, 2}, Pt(2, 2))
	assertColor(t, "copied corner", dst.GetPixel(2, 2), Blue)
	assertColor(t, "copied", dst.GetPixel(3, 3), Red)
	assertColor(t, "untouched", dst.GetPixel(1, 1), Transparent)

	cl := src.Clone()
	src.Clear(Black)
	assertColor(t, "clone independent", cl.GetPixel(1, 1), Blue)

	small := NewCanvas(2, 2)
	cl.CopyTo(small)
	assertColor(t, "copy to smaller", small.GetPixel(1, 1), Blue)
}

func TestCanvasScale(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Clear(White)
	c.ScaleRGB(0.5)
	assertColor(t, "scale rgb", c.GetPixel(0, 0), Color{128, 128, 128, 255})
	c.Clear(White)
	c.Scale(0.5)
	assertColor(t, "scale rgba", c.GetPixel(0, 0), Color{128, 128, 128, 128})
}

func TestCanvasImplementsImage(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetPixel(2, 1, Color{1, 2, 3, 4})
	var img image.Image = c
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("Bounds = %v", b)
	}
	if got := FromGoColor(img.At(2, 1)); got != (Color{1, 2, 3, 4}) {
		t.Errorf("At = %v", got)
	}
}

func TestCanvasSavePNG(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Clear(Gold)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := FromGoColor(img.At(3, 1)); got != Gold {
		t.Errorf("decoded pixel = %v, want %v", got, Gold)
	}
}

func TestCanvasDrawZeroAllocs(t *testing.T) {
	c := NewCanvas(64, 32)
	img := solidImage(16, 16, Color{255, 0, 0, 128})
	allocs := testing.AllocsPerRun(100, func() {
		c.DrawColorImage(Pt(10, 10), img, BlendNormal)
	})
	if allocs > 0 {
		t.Errorf("DrawColorImage allocs = %f, want 0", allocs)
	}
}
