package assets

import (
	"fmt"
	"image"
	"image/gif"
	"io"

	"golang.org/x/image/draw"

	"github.com/vis-iks/libled"
)

// LoadGIF decodes every frame of a GIF into an animation. Frames are
// composed onto the logical screen and honor the disposal of the frame
// before, so each libled frame is a full picture.
func LoadGIF(r io.Reader) (*libled.Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("assets: decode gif: no frames")
	}
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	screen := image.NewNRGBA(image.Rect(0, 0, w, h))
	var saved []uint8
	anim := &libled.Animation{
		Frames:    make([]libled.Frame, 0, len(g.Image)),
		LoopCount: g.LoopCount,
	}
	for i, frame := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = append(saved[:0], screen.Pix...)
		}

		bounds := frame.Bounds()
		draw.Draw(screen, bounds, frame, bounds.Min, draw.Over)
		var delay int64
		if i < len(g.Delay) {
			delay = int64(g.Delay[i]) * 10 // hundredths of a second
		}
		anim.Frames = append(anim.Frames, libled.Frame{Image: libled.ImageFromGo(screen), Delay: delay})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(screen, bounds, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(screen.Pix, saved)
		}
	}
	return anim, nil
}
