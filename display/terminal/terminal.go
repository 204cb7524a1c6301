// Package terminal shows a libled canvas in a terminal with tcell.
//
// Each character cell carries two LEDs stacked vertically: the upper half
// block glyph is drawn in the top pixel's color over a background of the
// bottom pixel's color. A 128x32 matrix therefore needs a 128x16 terminal,
// plus one line for the scene label.
package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vis-iks/libled"
)

const upperHalf = '▀'

// Terminal is a libled.Display and libled.Labeler backed by a tcell screen.
type Terminal struct {
	screen tcell.Screen
	keys   chan libled.Key

	mu     sync.Mutex
	label  string
	closed bool
}

// New initializes the controlling terminal.
func New() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an initialized screen, such as a simulation screen in
// tests. The terminal owns s from then on.
func NewWithScreen(s tcell.Screen) *Terminal {
	s.HideCursor()
	s.Clear()
	t := &Terminal{screen: s, keys: make(chan libled.Key, 16)}
	go t.poll()
	return t
}

func (t *Terminal) poll() {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return // screen finalized
		case *tcell.EventKey:
			if k := mapKey(ev); k != libled.KeyNone {
				select {
				case t.keys <- k:
				default: // drop keys nobody reads
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func mapKey(ev *tcell.EventKey) libled.Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return libled.KeyLeft
	case tcell.KeyRight:
		return libled.KeyRight
	case tcell.KeyUp:
		return libled.KeyUp
	case tcell.KeyDown:
		return libled.KeyDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return libled.KeyEscape
	case tcell.KeyF12:
		return libled.KeyF12
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return libled.KeyEscape
		}
	}
	return libled.KeyNone
}

func rgb(c libled.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Present implements libled.Display. Pixels outside the terminal are
// clipped.
func (t *Terminal) Present(c *libled.Canvas) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return libled.ErrClosed
	}
	sw, sh := t.screen.Size()
	rows := (c.Height() + 1) / 2
	for row := 0; row < rows && row < sh; row++ {
		for x := 0; x < c.Width() && x < sw; x++ {
			top := c.GetPixel(x, row*2)
			bot := c.GetPixel(x, row*2+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bot))
			t.screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
	if rows < sh {
		t.drawLabel(rows, sw)
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) drawLabel(y, width int) {
	x := 0
	for _, r := range t.label {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// SetLabel implements libled.Labeler. The label shows under the matrix.
func (t *Terminal) SetLabel(name string) {
	t.mu.Lock()
	t.label = name
	t.mu.Unlock()
}

// Key implements libled.Display.
func (t *Terminal) Key() libled.Key {
	select {
	case k := <-t.keys:
		return k
	default:
		return libled.KeyNone
	}
}

// Close restores the terminal. Later calls do nothing.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}
