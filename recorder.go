package libled

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FrameRecorder writes frames as numbered PNG files at a fixed frame rate.
// Frames are sampled against the recorder's clock, not the render loop, so a
// slow loop repeats the last frame to fill the gap and a fast one skips.
type FrameRecorder struct {
	Dir   string
	Rate  int // fps
	Clock Clock

	started bool
	start   int64
	written int
	last    *Canvas
}

// NewFrameRecorder records into dir at rate frames per second using the
// wall clock.
func NewFrameRecorder(dir string, rate int) *FrameRecorder {
	return &FrameRecorder{Dir: dir, Rate: rate, Clock: NewWallClock()}
}

// Written returns how many files have been written.
func (r *FrameRecorder) Written() int { return r.written }

// Record offers the current frame. It writes nothing when the next slot is
// not due yet.
func (r *FrameRecorder) Record(c *Canvas) error {
	if r.Rate <= 0 {
		return nil
	}
	if r.Clock == nil {
		r.Clock = NewWallClock()
	}
	now := r.Clock.NowMs()
	if !r.started {
		r.started = true
		r.start = now
		if err := os.MkdirAll(r.Dir, 0o755); err != nil {
			return fmt.Errorf("record: mkdir %s: %w", r.Dir, err)
		}
	}
	due := int((now-r.start)*int64(r.Rate)/1000) + 1
	if r.written >= due {
		return nil
	}
	for r.last != nil && r.written < due-1 {
		if err := r.write(r.last); err != nil {
			return err
		}
	}
	if err := r.write(c); err != nil {
		return err
	}
	if r.last == nil || r.last.w != c.w || r.last.h != c.h {
		r.last = c.Clone()
	} else {
		c.CopyTo(r.last)
	}
	return nil
}

func (r *FrameRecorder) write(c *Canvas) error {
	path := filepath.Join(r.Dir, fmt.Sprintf("Frame-%08d.png", r.written))
	if err := writePNG(path, c); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	r.written++
	return nil
}

// Reset starts numbering from zero again on the next frame.
func (r *FrameRecorder) Reset() {
	r.started = false
	r.written = 0
	r.last = nil
}

// Screenshot writes c to dir as a PNG named after the current time and
// label, and returns the path written.
func Screenshot(dir, label string, c *Canvas) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, c); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
