// Package hub75 drives a HUB75 RGB LED matrix by bit-banging GPIO lines.
//
// A HUB75 panel shows two rows at once: row y in the upper half and row
// y+h/2 in the lower half share an address on the A-E lines. Each pixel
// column is shifted in on CLK, the row is latched with LAT, and OE gates the
// LEDs while the next row is shifted. Color depth is one bit per channel; a
// channel lights when it is above the brightness threshold.
package hub75

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vis-iks/libled"
)

// Pins holds the GPIO line offsets of the HUB75 signals.
type Pins struct {
	R1, G1, B1 int // upper half data
	R2, G2, B2 int // lower half data

	CLK int
	OE  int // output enable, active low
	LAT int

	A, B, C, D, E int // row address
}

// BonnetPins returns the wiring of the Adafruit RGB Matrix Bonnet on a
// Raspberry Pi.
func BonnetPins() Pins {
	return Pins{
		R1: 5, G1: 13, B1: 6,
		R2: 12, G2: 16, B2: 23,
		CLK: 17, OE: 4, LAT: 21,
		A: 22, B: 26, C: 27, D: 20, E: 24,
	}
}

func (p Pins) offsets() [numSignals]int {
	return [numSignals]int{
		p.R1, p.G1, p.B1, p.R2, p.G2, p.B2,
		p.CLK, p.OE, p.LAT,
		p.A, p.B, p.C, p.D, p.E,
	}
}

// Signal indexes into Panel.lines.
const (
	sigR1 = iota
	sigG1
	sigB1
	sigR2
	sigG2
	sigB2
	sigCLK
	sigOE
	sigLAT
	sigA // A..E are consecutive
	sigB
	sigC
	sigD
	sigE
	numSignals
)

const maxRows = 32 // five address bits

// line is one output. *gpiocdev.Line satisfies it.
type line interface {
	SetValue(v int) error
	Close() error
}

// Panel is a libled.Display for a HUB75 matrix.
type Panel struct {
	// Hold is how long each row is lit after latching. Longer holds are
	// brighter but flicker more.
	Hold time.Duration

	mu        sync.Mutex
	lines     [numSignals]line
	w, h      int
	threshold uint8
	closed    bool
}

func newPanel(lines [numSignals]line, w, h, brightness int) (*Panel, error) {
	if w <= 0 || h <= 0 || h%2 != 0 || h/2 > maxRows {
		return nil, fmt.Errorf("hub75: unsupported panel size %dx%d", w, h)
	}
	p := &Panel{lines: lines, w: w, h: h}
	p.SetBrightness(brightness)
	return p, nil
}

// Size returns the panel size in pixels.
func (p *Panel) Size() libled.Size { return libled.Size{W: p.w, H: p.h} }

// SetBrightness sets the on-threshold from a percentage. At 100 every
// non-zero channel lights, at 0 nothing does.
func (p *Panel) SetBrightness(percent int) {
	percent = min(max(percent, 0), 100)
	p.mu.Lock()
	p.threshold = uint8(255 - percent*255/100)
	p.mu.Unlock()
}

func (p *Panel) set(sig, v int) error {
	if err := p.lines[sig].SetValue(v); err != nil {
		return fmt.Errorf("signal %d: %w", sig, err)
	}
	return nil
}

func (p *Panel) bit(v uint8) int {
	if v > p.threshold {
		return 1
	}
	return 0
}

// Present implements libled.Display. It scans every row pair once.
func (p *Panel) Present(c *libled.Canvas) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return libled.ErrClosed
	}
	rows := p.h / 2
	for row := 0; row < rows; row++ {
		if err := p.scanRow(c, row, rows); err != nil {
			return fmt.Errorf("hub75: row %d: %w", row, err)
		}
	}
	return nil
}

func (p *Panel) scanRow(c *libled.Canvas, row, rows int) error {
	for i := 0; i < 5; i++ {
		if err := p.set(sigA+i, (row>>i)&1); err != nil {
			return err
		}
	}
	if err := p.set(sigOE, 1); err != nil {
		return err
	}
	for x := 0; x < p.w; x++ {
		top, bot := c.GetPixel(x, row), c.GetPixel(x, row+rows)
		data := [6]int{
			p.bit(top.R), p.bit(top.G), p.bit(top.B),
			p.bit(bot.R), p.bit(bot.G), p.bit(bot.B),
		}
		for sig, v := range data {
			if err := p.set(sig, v); err != nil {
				return err
			}
		}
		if err := p.set(sigCLK, 1); err != nil {
			return err
		}
		if err := p.set(sigCLK, 0); err != nil {
			return err
		}
	}
	if err := p.set(sigLAT, 1); err != nil {
		return err
	}
	if err := p.set(sigLAT, 0); err != nil {
		return err
	}
	if err := p.set(sigOE, 0); err != nil {
		return err
	}
	if p.Hold > 0 {
		time.Sleep(p.Hold)
	}
	return nil
}

// Key implements libled.Display. A panel has no input.
func (p *Panel) Key() libled.Key { return libled.KeyNone }

// Close blanks the panel and releases every line.
func (p *Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	var errs []error
	if l := p.lines[sigOE]; l != nil {
		errs = append(errs, l.SetValue(1))
	}
	for sig, l := range p.lines {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("hub75: close signal %d: %w", sig, err))
		}
	}
	return errors.Join(errs...)
}
