package window

import "github.com/vis-iks/libled"

const (
	// DotSize is the edge length of one LED in window pixels.
	DotSize = 4
	// Border is the black margin around the matrix.
	Border = 10
)

// dotLevels shades a dot: a bright core, a dimmer ring and dark corners.
var dotLevels = [DotSize][DotSize]uint8{
	{100, 180, 180, 100},
	{180, 255, 255, 180},
	{180, 255, 255, 180},
	{100, 180, 180, 100},
}

// FrameSize returns the window size in pixels of a w x h matrix.
func FrameSize(w, h int) (int, int) {
	return w*DotSize + 2*Border, h*DotSize + 2*Border
}

// newFrame returns an opaque black RGBA buffer for a w x h matrix.
func newFrame(w, h int) []byte {
	fw, fh := FrameSize(w, h)
	buf := make([]byte, fw*fh*4)
	for i := 3; i < len(buf); i += 4 {
		buf[i] = 255
	}
	return buf
}

// renderDots draws the top-left w x h pixels of c into dst, a buffer from
// newFrame, scaling every color by brightness/255.
func renderDots(dst []byte, c *libled.Canvas, w, h int, brightness uint8) {
	fw, _ := FrameSize(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := c.GetPixel(x, y).ModulateRGB(brightness)
			ox, oy := Border+x*DotSize, Border+y*DotSize
			for dy, row := range dotLevels {
				o := ((oy+dy)*fw + ox) * 4
				for _, level := range row {
					px := base.ModulateRGB(level)
					dst[o], dst[o+1], dst[o+2] = px.R, px.G, px.B
					o += 4
				}
			}
		}
	}
}
