//go:build linux

package hub75

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// DefaultHold is the row on-time used by Open.
const DefaultHold = 50 * time.Microsecond

// Open requests every signal of pins on chip (such as "gpiochip0") as an
// output driven low and returns a w x h panel.
func Open(chip string, pins Pins, w, h, brightness int) (*Panel, error) {
	var lines [numSignals]line
	release := func() {
		for _, l := range lines {
			if l != nil {
				_ = l.Close()
			}
		}
	}
	for sig, offset := range pins.offsets() {
		l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("libled"))
		if err != nil {
			release()
			return nil, fmt.Errorf("hub75: request %s line %d: %w", chip, offset, err)
		}
		lines[sig] = l
	}
	p, err := newPanel(lines, w, h, brightness)
	if err != nil {
		release()
		return nil, err
	}
	p.Hold = DefaultHold
	return p, nil
}
