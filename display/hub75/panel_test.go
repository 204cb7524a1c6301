package hub75

import (
	"errors"
	"testing"

	"github.com/vis-iks/libled"
)

// bus records the signal levels of a fake panel.
type bus struct {
	level   [numSignals]int
	shifted [][6]int // data lines at each rising CLK edge
	latched []int    // row address at each rising LAT edge
	lit     int      // rising CLK edges seen while OE was low
	closed  int
	fail    int // signal whose SetValue fails, or -1
}

type fakeLine struct {
	b   *bus
	sig int
}

func (l fakeLine) SetValue(v int) error {
	b := l.b
	if l.sig == b.fail {
		return errors.New("line busy")
	}
	rising := b.level[l.sig] == 0 && v == 1
	b.level[l.sig] = v
	switch {
	case rising && l.sig == sigCLK:
		var d [6]int
		copy(d[:], b.level[:6])
		b.shifted = append(b.shifted, d)
		if b.level[sigOE] == 0 {
			b.lit++
		}
	case rising && l.sig == sigLAT:
		addr := 0
		for i := 0; i < 5; i++ {
			addr |= b.level[sigA+i] << i
		}
		b.latched = append(b.latched, addr)
	}
	return nil
}

func (l fakeLine) Close() error {
	l.b.closed++
	return nil
}

func newTestPanel(t *testing.T, w, h, brightness int) (*Panel, *bus) {
	t.Helper()
	b := &bus{fail: -1}
	var lines [numSignals]line
	for i := range lines {
		lines[i] = fakeLine{b, i}
	}
	p, err := newPanel(lines, w, h, brightness)
	if err != nil {
		t.Fatalf("newPanel: %v", err)
	}
	return p, b
}

func TestPanelSizes(t *testing.T) {
	var lines [numSignals]line
	for _, sz := range []libled.Size{{W: 0, H: 32}, {W: 64, H: 31}, {W: 64, H: 128}} {
		if _, err := newPanel(lines, sz.W, sz.H, 100); err == nil {
			t.Errorf("%dx%d should be rejected", sz.W, sz.H)
		}
	}
	p, _ := newTestPanel(t, 64, 64, 100)
	if p.Size() != (libled.Size{W: 64, H: 64}) {
		t.Errorf("Size = %v", p.Size())
	}
}

func TestPanelScan(t *testing.T) {
	p, b := newTestPanel(t, 4, 8, 100)
	c := libled.NewCanvas(4, 8)
	c.SetPixel(1, 0, libled.Red)
	c.SetPixel(2, 5, libled.RGB(0, 10, 200))

	if err := p.Present(c); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(b.latched) != 4 {
		t.Fatalf("latched %d rows, want 4", len(b.latched))
	}
	for i, addr := range b.latched {
		if addr != i {
			t.Errorf("latch %d address = %d", i, addr)
		}
	}
	if len(b.shifted) != 16 {
		t.Fatalf("shifted %d columns, want 16", len(b.shifted))
	}
	if b.lit != 0 {
		t.Errorf("%d columns shifted with the output enabled", b.lit)
	}
	if b.level[sigOE] != 0 {
		t.Error("output should be enabled after the scan")
	}

	// Row 0 column 1 is red in the upper half.
	if got := b.shifted[1]; got != [6]int{1, 0, 0, 0, 0, 0} {
		t.Errorf("row 0 col 1 = %v", got)
	}
	// Row 5 is the lower half of address 1.
	if got := b.shifted[4+2]; got != [6]int{0, 0, 0, 0, 1, 1} {
		t.Errorf("row 1 col 2 = %v", got)
	}
}

func TestPanelBrightnessThreshold(t *testing.T) {
	c := libled.NewCanvas(1, 2)
	c.SetPixel(0, 0, libled.RGB(100, 200, 255))

	tests := []struct {
		brightness int
		want       [6]int
	}{
		{100, [6]int{1, 1, 1, 0, 0, 0}},
		{50, [6]int{0, 1, 1, 0, 0, 0}},
		{0, [6]int{0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		p, b := newTestPanel(t, 1, 2, tt.brightness)
		if err := p.Present(c); err != nil {
			t.Fatal(err)
		}
		if b.shifted[0] != tt.want {
			t.Errorf("brightness %d: %v, want %v", tt.brightness, b.shifted[0], tt.want)
		}
	}
}

func TestPanelErrorsAndClose(t *testing.T) {
	p, b := newTestPanel(t, 2, 2, 100)
	b.fail = sigLAT
	if err := p.Present(libled.NewCanvas(2, 2)); err == nil {
		t.Error("a failing line should fail Present")
	}
	b.fail = -1

	if p.Key() != libled.KeyNone {
		t.Error("panels have no keys")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if b.closed != numSignals || b.level[sigOE] != 1 {
		t.Errorf("closed %d lines, OE %d", b.closed, b.level[sigOE])
	}
	if err := p.Close(); err != nil || b.closed != numSignals {
		t.Error("second Close should do nothing")
	}
	if err := p.Present(libled.NewCanvas(2, 2)); !errors.Is(err, libled.ErrClosed) {
		t.Errorf("Present after Close = %v", err)
	}
}

func TestBonnetPinsDistinct(t *testing.T) {
	seen := map[int]bool{}
	for _, o := range BonnetPins().offsets() {
		if seen[o] {
			t.Errorf("offset %d used twice", o)
		}
		seen[o] = true
	}
}
