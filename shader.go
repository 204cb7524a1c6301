package libled

// Shader computes the color of one pixel from normalized coordinates u, v
// in [0, 1) and t, the seconds since the effect started. Shaders must be
// pure functions of their arguments.
type Shader func(u, v, t float32) Color

// ShaderEffect fills the canvas from a Shader every frame.
type ShaderEffect struct {
	Shader Shader
	Mode   BlendMode // BlendNone (the default from NewShaderEffect) writes every pixel

	started bool
	start   int64
}

// NewShaderEffect returns an effect that overwrites every pixel with s.
func NewShaderEffect(s Shader) *ShaderEffect {
	return &ShaderEffect{Shader: s, Mode: BlendNone}
}

// Render implements Effect.
func (e *ShaderEffect) Render(c *Canvas, timeMs int64) {
	if e.Shader == nil {
		return
	}
	if !e.started {
		e.started = true
		e.start = timeMs
	}
	t := float32(timeMs-e.start) / 1000
	fw, fh := float32(c.w), float32(c.h)
	for y := 0; y < c.h; y++ {
		v := float32(y) / fh
		row := c.pix[y*c.w : (y+1)*c.w]
		for x := range row {
			px := e.Shader(float32(x)/fw, v, t)
			if e.Mode == BlendNone {
				row[x] = px
			} else {
				row[x] = row[x].Apply(px, e.Mode)
			}
		}
	}
}

// Reset restarts shader time.
func (e *ShaderEffect) Reset() {
	e.started = false
	e.start = 0
}

// IsFinished always returns false.
func (e *ShaderEffect) IsFinished() bool { return false }

// Fill renders s at time t into an image of the given size. It is used to
// build textures for DrawTextured.
func (s Shader) Fill(img *ColorImage, t float32) {
	fw, fh := float32(img.W), float32(img.H)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			img.Pix[y*img.W+x] = s(float32(x)/fw, float32(y)/fh, t)
		}
	}
}
