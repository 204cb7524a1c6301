//go:build !headless

// Package window emulates an LED dot matrix in an Ebitengine window.
//
// Every LED is drawn as a shaded 4x4 dot inside a black border. Arrow keys
// and Escape are reported to the player; F12 toggles an overlay with the
// current scene name.
package window

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vis-iks/libled"
)

// Options configures a Window. Zero fields take their defaults.
type Options struct {
	Title      string // default "LibLED"
	Scale      int    // window pixels per frame pixel, default 1
	Brightness int    // percent, default 100
}

var keyMap = []struct {
	ebiten ebiten.Key
	key    libled.Key
}{
	{ebiten.KeyArrowLeft, libled.KeyLeft},
	{ebiten.KeyArrowRight, libled.KeyRight},
	{ebiten.KeyArrowUp, libled.KeyUp},
	{ebiten.KeyArrowDown, libled.KeyDown},
	{ebiten.KeyEscape, libled.KeyEscape},
	{ebiten.KeyF12, libled.KeyF12},
}

// Window is a libled.Display and libled.Labeler. It implements ebiten.Game;
// its Update and Draw run on the Ebitengine goroutine while Present and Key
// are called by the player.
type Window struct {
	w, h       int
	fw, fh     int
	brightness uint8

	mu        sync.Mutex
	front     []byte
	back      []byte
	label     string
	showLabel bool
	screen    *ebiten.Image

	keys    chan libled.Key
	ready   chan struct{}
	done    chan struct{}
	closing atomic.Bool
	runErr  error
}

// Open shows a window for a w x h matrix and returns once it has drawn its
// first frame.
func Open(w, h int, opts Options) (*Window, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("window: invalid matrix size %dx%d", w, h)
	}
	if opts.Title == "" {
		opts.Title = "LibLED"
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Brightness <= 0 || opts.Brightness > 100 {
		opts.Brightness = 100
	}
	fw, fh := FrameSize(w, h)
	win := &Window{
		w:          w,
		h:          h,
		fw:         fw,
		fh:         fh,
		brightness: uint8(opts.Brightness * 255 / 100),
		front:      newFrame(w, h),
		back:       newFrame(w, h),
		keys:       make(chan libled.Key, 16),
		ready:      make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	ebiten.SetWindowSize(fw*opts.Scale, fh*opts.Scale)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		defer close(win.done)
		if err := ebiten.RunGame(win); err != nil {
			win.runErr = fmt.Errorf("window: %w", err)
		}
	}()

	select {
	case <-win.ready:
		return win, nil
	case <-win.done:
		if win.runErr != nil {
			return nil, win.runErr
		}
		return nil, libled.ErrClosed
	}
}

// Update implements ebiten.Game.
func (win *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || win.closing.Load() {
		return ebiten.Termination
	}
	for _, m := range keyMap {
		if !inpututil.IsKeyJustPressed(m.ebiten) {
			continue
		}
		if m.key == libled.KeyF12 {
			win.mu.Lock()
			win.showLabel = !win.showLabel
			win.mu.Unlock()
		}
		select {
		case win.keys <- m.key:
		default:
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (win *Window) Draw(screen *ebiten.Image) {
	if win.screen == nil {
		win.screen = ebiten.NewImage(win.fw, win.fh)
	}

	win.mu.Lock()
	win.screen.WritePixels(win.front)
	label, show := win.label, win.showLabel
	win.mu.Unlock()

	screen.DrawImage(win.screen, nil)
	if show && label != "" {
		ebitenutil.DebugPrint(screen, label)
	}

	select {
	case win.ready <- struct{}{}:
	default:
	}
}

// Layout implements ebiten.Game. The frame is scaled to the window.
func (win *Window) Layout(_, _ int) (int, int) {
	return win.fw, win.fh
}

// Present implements libled.Display.
func (win *Window) Present(c *libled.Canvas) error {
	select {
	case <-win.done:
		return libled.ErrClosed
	default:
	}
	renderDots(win.back, c, win.w, win.h, win.brightness)
	win.mu.Lock()
	win.front, win.back = win.back, win.front
	win.mu.Unlock()
	return nil
}

// Key implements libled.Display.
func (win *Window) Key() libled.Key {
	select {
	case k := <-win.keys:
		return k
	default:
		return libled.KeyNone
	}
}

// SetLabel implements libled.Labeler.
func (win *Window) SetLabel(name string) {
	win.mu.Lock()
	win.label = name
	win.mu.Unlock()
}

// Close ends the Ebitengine loop and waits for it to return.
func (win *Window) Close() error {
	win.closing.Store(true)
	<-win.done
	return win.runErr
}
