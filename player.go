package libled

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrClosed is returned by a Display whose output has gone away, such as a
// window closed by the user.
var ErrClosed = errors.New("libled: display closed")

// Key is a control key read from a display.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	KeyF12
)

var keyNames = [...]string{"none", "left", "right", "up", "down", "escape", "f12"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// ParseKey maps a key name such as "left" or "F12" to a Key.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "esc" {
		return KeyEscape, nil
	}
	for i, n := range keyNames {
		if n == s {
			return Key(i), nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", s)
}

// Display shows frames and reports control keys.
type Display interface {
	// Present shows c. It must not retain c after returning.
	Present(c *Canvas) error
	// Key returns the next pending key, or KeyNone.
	Key() Key
	Close() error
}

// Labeler is implemented by displays that can show the current scene name.
type Labeler interface {
	SetLabel(name string)
}

// PlayerConfig configures a Player. Zero fields take their defaults.
type PlayerConfig struct {
	Width, Height int   // default 128x32
	FrameMs       int64 // default 25
	// Unpaced renders frames back to back instead of waiting for a ticker.
	Unpaced bool
	// Recorder, when set, receives every presented frame.
	Recorder *FrameRecorder
	// ScreenshotDir receives the files queued by Screenshot. Default ".".
	ScreenshotDir string
	// MaxFrames stops Run after that many frames when positive.
	MaxFrames int64
}

// DefaultFrameMs is the frame interval of a Player.
const DefaultFrameMs = 25

// Player drives an effect tree at a fixed frame interval and presents the
// result on a Display. Time handed to effects is frame*FrameMs, so playback
// is deterministic no matter how long a frame took to render.
type Player struct {
	display Display
	root    Effect
	cfg     PlayerConfig
	canvas  *Canvas
	script  *Script

	frame       int64
	keys        []Key
	screenshots []string
	stop        bool
}

// NewPlayer returns a player that renders root onto display.
func NewPlayer(display Display, root Effect, cfg PlayerConfig) *Player {
	if cfg.Width <= 0 {
		cfg.Width = 128
	}
	if cfg.Height <= 0 {
		cfg.Height = 32
	}
	if cfg.FrameMs <= 0 {
		cfg.FrameMs = DefaultFrameMs
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "."
	}
	p := &Player{display: display, root: effectOrNil(root), cfg: cfg, canvas: NewCanvas(cfg.Width, cfg.Height)}
	p.updateLabel()
	return p
}

// Canvas returns the frame buffer effects render into.
func (p *Player) Canvas() *Canvas { return p.canvas }

// Frame returns the number of frames rendered so far.
func (p *Player) Frame() int64 { return p.frame }

// TimeMs returns the time handed to effects on the next frame.
func (p *Player) TimeMs() int64 { return p.frame * p.cfg.FrameMs }

// Root returns the effect being played.
func (p *Player) Root() Effect { return p.root }

// Playlist returns the root as a Playlist, or nil.
func (p *Player) Playlist() *Playlist {
	pl, _ := p.root.(*Playlist)
	return pl
}

// SelectScene shows the playlist scene called name. It reports false when
// the root is not a Playlist or has no such scene.
func (p *Player) SelectScene(name string) bool {
	pl := p.Playlist()
	if pl == nil || !pl.Select(name) {
		return false
	}
	p.updateLabel()
	return true
}

// SetScript attaches a playback script stepped once per frame.
func (p *Player) SetScript(s *Script) { p.script = s }

// Screenshot queues a labeled screenshot of the next presented frame.
func (p *Player) Screenshot(label string) {
	p.screenshots = append(p.screenshots, label)
}

// InjectKey queues a key as if the display had reported it.
func (p *Player) InjectKey(k Key) {
	if k != KeyNone {
		p.keys = append(p.keys, k)
	}
}

// Stop makes Run return after the current frame.
func (p *Player) Stop() { p.stop = true }

// Step renders and presents one frame, then handles keys. It returns the
// display's Present error, ErrClosed once the display is gone.
func (p *Player) Step() error {
	if p.script != nil {
		p.script.Step(p)
	}
	p.canvas.Clear(Black)
	if p.root != nil {
		p.root.Render(p.canvas, p.TimeMs())
	}
	p.frame++

	p.flushScreenshots()
	if r := p.cfg.Recorder; r != nil {
		if err := r.Record(p.canvas); err != nil {
			warnf("%v", err)
		}
	}
	if p.display != nil {
		if err := p.display.Present(p.canvas); err != nil {
			return err
		}
		for k := p.display.Key(); k != KeyNone; k = p.display.Key() {
			p.keys = append(p.keys, k)
		}
	}
	for _, k := range p.keys {
		p.handleKey(k)
	}
	p.keys = p.keys[:0]
	return nil
}

func (p *Player) flushScreenshots() {
	for _, label := range p.screenshots {
		path, err := Screenshot(p.cfg.ScreenshotDir, label, p.canvas)
		if err != nil {
			warnf("%v", err)
			continue
		}
		debugf("screenshot %s", path)
	}
	p.screenshots = p.screenshots[:0]
}

func (p *Player) handleKey(k Key) {
	pl := p.Playlist()
	switch k {
	case KeyEscape:
		p.stop = true
	case KeyLeft:
		if pl != nil {
			pl.Prev()
			p.updateLabel()
		}
	case KeyRight:
		if pl != nil {
			pl.Next()
			p.updateLabel()
		}
	}
}

func (p *Player) updateLabel() {
	l, ok := p.display.(Labeler)
	if !ok {
		return
	}
	if pl := p.Playlist(); pl != nil {
		l.SetLabel(pl.Current())
	}
}

// Run plays until ctx is done, Escape is pressed, MaxFrames is reached, an
// attached script finishes or the display closes. A closed display is not
// an error.
func (p *Player) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if !p.cfg.Unpaced {
		ticker := time.NewTicker(time.Duration(p.cfg.FrameMs) * time.Millisecond)
		defer ticker.Stop()
		tick = ticker.C
	}

	fpsStart, fpsFrames := time.Now(), 0
	p.stop = false
	for !p.stop {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		if err := p.Step(); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return fmt.Errorf("present frame %d: %w", p.frame, err)
		}
		if p.cfg.MaxFrames > 0 && p.frame >= p.cfg.MaxFrames {
			return nil
		}
		if p.script != nil && p.script.Done() {
			debugf("script finished after %d frames", p.frame)
			return nil
		}

		fpsFrames++
		if d := time.Since(fpsStart); d >= 10*time.Second {
			debugf("fps: %.1f", float64(fpsFrames)/d.Seconds())
			fpsStart, fpsFrames = time.Now(), 0
		}
	}
	return nil
}

// --- Playlist ---

type scene struct {
	name   string
	effect Effect
}

// Playlist is a list of named scenes showing one at a time. Switching scenes
// resets the scene switched to. With AutoAdvance set, a finished scene moves
// the playlist on.
type Playlist struct {
	AutoAdvance bool

	scenes []scene
	cur    int
}

// NewPlaylist returns an empty playlist.
func NewPlaylist() *Playlist { return &Playlist{} }

// Add appends a scene. A nil effect is ignored.
func (pl *Playlist) Add(name string, e Effect) *Playlist {
	if e = effectOrNil(e); e != nil {
		pl.scenes = append(pl.scenes, scene{name, e})
	}
	return pl
}

// Len returns the number of scenes.
func (pl *Playlist) Len() int { return len(pl.scenes) }

// Names returns the scene names in order.
func (pl *Playlist) Names() []string {
	out := make([]string, len(pl.scenes))
	for i, s := range pl.scenes {
		out[i] = s.name
	}
	return out
}

// Current returns the name of the showing scene, or "" when empty.
func (pl *Playlist) Current() string {
	if len(pl.scenes) == 0 {
		return ""
	}
	return pl.scenes[pl.cur].name
}

// Index returns the position of the showing scene.
func (pl *Playlist) Index() int { return pl.cur }

func (pl *Playlist) show(i int) {
	if len(pl.scenes) == 0 {
		return
	}
	pl.cur = wrap(i, len(pl.scenes))
	pl.scenes[pl.cur].effect.Reset()
	debugf("scene %q", pl.scenes[pl.cur].name)
}

// Next shows the following scene, wrapping around.
func (pl *Playlist) Next() { pl.show(pl.cur + 1) }

// Prev shows the previous scene, wrapping around.
func (pl *Playlist) Prev() { pl.show(pl.cur - 1) }

// Select shows the scene called name. It reports whether one exists.
func (pl *Playlist) Select(name string) bool {
	for i, s := range pl.scenes {
		if s.name == name {
			pl.show(i)
			return true
		}
	}
	return false
}

// Render implements Effect.
func (pl *Playlist) Render(c *Canvas, timeMs int64) {
	if len(pl.scenes) == 0 {
		return
	}
	e := pl.scenes[pl.cur].effect
	e.Render(c, timeMs)
	if pl.AutoAdvance && e.IsFinished() {
		pl.Next()
	}
}

// Reset returns to the first scene.
func (pl *Playlist) Reset() { pl.show(0) }

// IsFinished always returns false.
func (pl *Playlist) IsFinished() bool { return false }
