package libled

import (
	"math"
	"testing"
)

const epsilon = 1e-4

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertColor(t *testing.T, name string, got, want Color) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDiv255Exact(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := uint8(math.Round(float64(a*b) / 255))
			if got := div255(uint32(a * b)); got != want {
				t.Fatalf("div255(%d*%d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestColorOperators(t *testing.T) {
	half := Color{255, 255, 255, 128}
	tests := []struct {
		name string
		got  Color
		want Color
	}{
		{"blend opaque", Black.Blend(White), White},
		{"blend transparent", Red.Blend(Transparent), Red},
		{"blend half", Black.Blend(half), Color{128, 128, 128, 255}},
		{"add clamps", Color{200, 10, 0, 255}.Add(Color{100, 10, 0, 255}), Color{255, 20, 0, 255}},
		{"add weighted", Black.Add(Color{255, 0, 0, 128}), Color{128, 0, 0, 255}},
		{"add keeps alpha", Transparent.Add(Red), Color{255, 0, 0, 0}},
		{"add alpha", Transparent.AddAlpha(Red), Red},
		{"mask skips", Blue.Mask(Color{255, 0, 0, 0}), Blue},
		{"mask writes", Blue.Mask(Color{255, 0, 0, 1}), Color{255, 0, 0, 1}},
		{"modulate", White.Modulate(Color{128, 64, 0, 255}), Color{128, 64, 0, 255}},
		{"modulate rgb", White.ModulateRGB(128), Color{128, 128, 128, 255}},
		{"modulate alpha", White.ModulateA(0), Color{255, 255, 255, 0}},
		{"scale", White.Scale(0.5), Color{128, 128, 128, 255}},
		{"scale clamps", White.Scale(2), White},
		{"lerp start", Black.Lerp(White, 0), Black},
		{"lerp end", Black.Lerp(White, 1), White},
		{"lerp mid", Black.Lerp(White, 0.5), Color{128, 128, 128, 255}},
		{"set", Black.Set(Red), Red},
	}
	for _, tt := range tests {
		assertColor(t, tt.name, tt.got, tt.want)
	}
}

func TestColorApplyMatchesOperators(t *testing.T) {
	dst := Color{10, 20, 30, 255}
	src := Color{200, 100, 50, 128}
	tests := []struct {
		mode BlendMode
		want Color
	}{
		{BlendNone, src},
		{BlendNormal, dst.Blend(src)},
		{BlendAdd, dst.Add(src)},
		{BlendMask, dst.Mask(src)},
		{BlendMultiply, dst.Modulate(src)},
	}
	for _, tt := range tests {
		assertColor(t, tt.mode.String(), dst.Apply(src, tt.mode), tt.want)
	}
}

func TestColorGray(t *testing.T) {
	if g := White.Gray(); g != 255 {
		t.Errorf("White.Gray() = %d, want 255", g)
	}
	if g := Black.Gray(); g != 0 {
		t.Errorf("Black.Gray() = %d, want 0", g)
	}
	if g := Green.Gray(); g != 150 {
		t.Errorf("Green.Gray() = %d, want 150", g)
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	r, g, b, a := Color{255, 0, 0, 128}.RGBA()
	if a != 128*0x101 {
		t.Errorf("a = %d, want %d", a, 128*0x101)
	}
	if r != 128*0x101 || g != 0 || b != 0 {
		t.Errorf("rgb = %d,%d,%d, want premultiplied red", r, g, b)
	}
	if got := FromGoColor(Color{255, 0, 0, 128}); got != (Color{255, 0, 0, 128}) {
		t.Errorf("FromGoColor round trip = %v", got)
	}
}

func TestColorString(t *testing.T) {
	if s := (Color{255, 0, 16, 128}).String(); s != "#ff001080" {
		t.Errorf("String() = %q", s)
	}
}

func TestHSV(t *testing.T) {
	assertColor(t, "hue 0", HSV(0, 1, 1), Red)
	assertColor(t, "hue 120", HSV(120, 1, 1), Green)
	assertColor(t, "hue 240", HSV(240, 1, 1), Blue)
	assertColor(t, "value 0", HSV(77, 1, 0), Black)
}

func TestHex(t *testing.T) {
	c, err := Hex("#ff8000")
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	assertColor(t, "hex", c, Color{255, 128, 0, 255})
	if _, err := Hex("orange"); err == nil {
		t.Error("Hex(orange) should fail")
	}
}

func TestColorfulRoundTrip(t *testing.T) {
	for _, c := range []Color{Red, Gold, RGB(12, 34, 56)} {
		assertColor(t, c.String(), FromColorful(c.Colorful()), c)
	}
}

func TestBlendModeString(t *testing.T) {
	if s := BlendMode(99).String(); s != "BlendMode(99)" {
		t.Errorf("unknown mode = %q", s)
	}
}
