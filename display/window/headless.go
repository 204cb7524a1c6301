//go:build headless

package window

import (
	"errors"

	"github.com/vis-iks/libled"
)

// Options configures a Window.
type Options struct {
	Title      string
	Scale      int
	Brightness int
}

// Window is unavailable in headless builds.
type Window struct{}

// Open always fails in headless builds.
func Open(w, h int, opts Options) (*Window, error) {
	return nil, errors.New("window: built with the headless tag")
}

func (*Window) Present(*libled.Canvas) error { return libled.ErrClosed }
func (*Window) Key() libled.Key              { return libled.KeyNone }
func (*Window) SetLabel(string)              {}
func (*Window) Close() error                 { return nil }
