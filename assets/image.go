// Package assets decodes image, animation and font files into libled types.
//
// The loaders read from an io.Reader or a byte slice. [Resources] groups
// them over an fs.FS, so a program can hand one explicit asset set to the
// scenes that need it.
package assets

import (
	"fmt"
	"image"
	_ "image/gif" // register decoders for image.Decode
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/vis-iks/libled"
)

// LoadImage decodes a PNG, GIF or JPEG image. Animated GIFs yield their
// first frame; use LoadGIF for all of them.
func LoadImage(r io.Reader) (*libled.ColorImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode image: %w", err)
	}
	return libled.ImageFromGo(img), nil
}

// LoadMono decodes an image into a mono mask. Grey and alpha images keep
// their channel; color images use luminance times alpha.
func LoadMono(r io.Reader) (*libled.MonoImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode image: %w", err)
	}
	return libled.MonoFromGo(img), nil
}

// Fit resizes src to w x h with nearest-neighbour sampling, which keeps
// pixel art crisp on a matrix.
func Fit(src image.Image, w, h int) *libled.ColorImage {
	if w <= 0 || h <= 0 {
		return libled.NewColorImage(0, 0)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return libled.ImageFromGo(dst)
}
