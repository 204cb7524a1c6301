package assets

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/vis-iks/libled"
)

// LoadSVG rasterizes an SVG icon to w x h. A non-positive size uses the
// icon's view box.
func LoadSVG(r io.Reader, w, h int) (*libled.ColorImage, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("assets: parse svg: %w", err)
	}
	if w <= 0 || h <= 0 {
		w = int(math.Ceil(icon.ViewBox.W))
		h = int(math.Ceil(icon.ViewBox.H))
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: parse svg: no size")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return libled.ImageFromGo(rgba), nil
}
