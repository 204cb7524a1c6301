package libled

import "testing"

// coverage counts the pixels of c that are not fully transparent.
func coverage(c *Canvas) int {
	n := 0
	for _, px := range c.Pixels() {
		if px.A > 0 {
			n++
		}
	}
	return n
}

func TestTextSize(t *testing.T) {
	tests := []struct {
		s    string
		want Size
	}{
		{"", Size{0, 0}},
		{"A", Size{7, 13}},
		{"AB", Size{14, 13}},
		{"A\nBB", Size{14, 26}},
	}
	for _, tt := range tests {
		if got := NewText(tt.s, nil).Size(); got != tt.want {
			t.Errorf("Size(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestTextMaskCached(t *testing.T) {
	txt := NewText("HI", nil)
	m := txt.Mask()
	txt.SetText("HI")
	if txt.Mask() != m {
		t.Error("same string should keep the cached mask")
	}
	txt.SetFace(DefaultFace)
	if txt.Mask() != m {
		t.Error("same face should keep the cached mask")
	}
	txt.SetText("HELLO")
	if txt.Mask() == m || txt.String() != "HELLO" {
		t.Error("new string should rebuild the mask")
	}
	txt.SetFace(nil)
	if txt.Face() != DefaultFace {
		t.Error("nil face should select the default")
	}

	blank := NewText("  ", nil).Mask()
	for _, v := range blank.Pix {
		if v != 0 {
			t.Fatal("spaces should have no coverage")
		}
	}
	lit := 0
	for _, v := range m.Pix {
		if v > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("glyphs should have coverage")
	}
}

func TestTextRectAlignment(t *testing.T) {
	txt := NewText("AB", nil)
	tests := []struct {
		h    HAlign
		v    VAlign
		want Rect
	}{
		{AlignLeft, AlignTop, Rect{20, 10, 14, 13}},
		{AlignCenter, AlignMiddle, Rect{13, 4, 14, 13}},
		{AlignRight, AlignBottom, Rect{6, -3, 14, 13}},
	}
	for _, tt := range tests {
		txt.HAlign, txt.VAlign = tt.h, tt.v
		if got := txt.Rect(Pt(20, 10)); got != tt.want {
			t.Errorf("Rect(%d,%d) = %v, want %v", tt.h, tt.v, got, tt.want)
		}
	}
}

func TestTextMultilineAlign(t *testing.T) {
	txt := NewText("A\nBBB", nil)
	txt.HAlign = AlignRight
	m := txt.Mask()
	// The single glyph of the first line sits in the right-most cell.
	for y := 0; y < 13; y++ {
		for x := 0; x < 14; x++ {
			if m.At(x, y) > 0 {
				t.Fatalf("right-aligned first line has coverage at x=%d", x)
			}
		}
	}
}

func TestTextDraw(t *testing.T) {
	txt := NewText("X", nil)
	c := NewCanvas(16, 16)
	txt.Draw(c, Pt(0, 0), Red, BlendNormal)
	if coverage(c) == 0 {
		t.Fatal("Draw painted nothing")
	}
	for y := 0; y < 16; y++ {
		for x := 7; x < 16; x++ {
			if c.GetPixel(x, y).A > 0 {
				t.Fatalf("pixel (%d,%d) outside the glyph cell", x, y)
			}
		}
	}

	outlined := NewCanvas(16, 16)
	txt.DrawOutline(outlined, Pt(2, 0), 1, Blue)
	if coverage(outlined) == 0 {
		t.Error("DrawOutline painted nothing")
	}
	txt.DrawOutline(outlined, Pt(2, 0), 0, Green)
	for _, px := range outlined.Pixels() {
		if px == Green {
			t.Fatal("zero radius outline should draw nothing")
		}
	}
}

func TestTextDrawTextured(t *testing.T) {
	txt := NewText("M", nil)
	c := NewCanvas(8, 13)
	txt.DrawTextured(c, Pt(0, 0), solidImage(2, 2, Gold), Point{}, BlendMask)
	for _, px := range c.Pixels() {
		if px.A > 0 && px != Gold {
			t.Fatalf("textured pixel = %v, want %v", px, Gold)
		}
	}
	if coverage(c) == 0 {
		t.Error("textured draw painted nothing")
	}
}

func TestPrefixRunes(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"héllo", 2, "hé"},
		{"ab", 9, "ab"},
	}
	for _, tt := range tests {
		if got := prefixRunes(tt.s, tt.n); got != tt.want {
			t.Errorf("prefixRunes(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}
