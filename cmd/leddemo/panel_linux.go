package main

import (
	"github.com/vis-iks/libled"
	"github.com/vis-iks/libled/display/hub75"
)

const gpioChip = "gpiochip0"

func openPanel(w, h, brightness int) (libled.Display, error) {
	p, err := hub75.Open(gpioChip, hub75.BonnetPins(), w, h, brightness)
	if err != nil {
		return nil, err
	}
	return p, nil
}
