//go:build !linux

package main

import (
	"errors"

	"github.com/vis-iks/libled"
)

func openPanel(w, h, brightness int) (libled.Display, error) {
	return nil, errors.New("the hub75 backend needs Linux GPIO")
}
