package libled

import "sync"

// HeadlessDisplay is a Display without output. It keeps a copy of the last
// frame, can record every frame it is shown, and plays back queued keys.
type HeadlessDisplay struct {
	Recorder *FrameRecorder

	mu     sync.Mutex
	last   *Canvas
	frames int
	keys   []Key
	closed bool
}

// NewHeadlessDisplay returns a display that discards frames.
func NewHeadlessDisplay() *HeadlessDisplay { return &HeadlessDisplay{} }

// Present implements Display.
func (d *HeadlessDisplay) Present(c *Canvas) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.last == nil || d.last.w != c.w || d.last.h != c.h {
		d.last = c.Clone()
	} else {
		c.CopyTo(d.last)
	}
	d.frames++
	if d.Recorder != nil {
		if err := d.Recorder.Record(c); err != nil {
			return err
		}
	}
	return nil
}

// Key implements Display.
func (d *HeadlessDisplay) Key() Key {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.keys) == 0 {
		return KeyNone
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

// Press queues keys for Key to return.
func (d *HeadlessDisplay) Press(keys ...Key) {
	d.mu.Lock()
	d.keys = append(d.keys, keys...)
	d.mu.Unlock()
}

// Last returns a copy of the last presented frame, or nil.
func (d *HeadlessDisplay) Last() *Canvas {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return nil
	}
	return d.last.Clone()
}

// Frames returns how many frames were presented.
func (d *HeadlessDisplay) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Close implements Display. Later Present calls return ErrClosed.
func (d *HeadlessDisplay) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}
