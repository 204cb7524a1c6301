package libled

import "math"

// Light is a light source in a LightLayer.
type Light struct {
	// X and Y are the light's center in canvas pixels.
	X, Y float32
	// Radius is the distance at which the light fades out completely.
	Radius float32
	// Intensity controls light brightness in the range [0, 1].
	Intensity float32
	// Enabled determines whether this light is drawn. Disabled lights are
	// skipped entirely.
	Enabled bool
	// Color tints the lit area. Zero or white means no tint.
	Color Color
	// Path, if set, moves the light to Path(timeMs) each frame.
	Path func(timeMs int64) (x, y float32)
}

// LightLayer darkens its source everywhere except around its lights.
type LightLayer struct {
	Source Effect

	lights       []*Light
	ambientAlpha float32
	circleCache  map[int][]float32 // falloff tables keyed by quantized radius
	shade        []lightSample
}

// NewLightLayer wraps src. ambientAlpha is the base darkness: 0 leaves src
// untouched and 1 blacks out everything unlit.
func NewLightLayer(src Effect, ambientAlpha float32) *LightLayer {
	return &LightLayer{Source: effectOrNil(src), ambientAlpha: ambientAlpha}
}

// AddLight adds a light to the layer.
func (ll *LightLayer) AddLight(l *Light) *LightLayer {
	ll.lights = append(ll.lights, l)
	return ll
}

// RemoveLight removes a light from the layer.
func (ll *LightLayer) RemoveLight(l *Light) {
	for i, existing := range ll.lights {
		if existing == l {
			ll.lights = append(ll.lights[:i], ll.lights[i+1:]...)
			return
		}
	}
}

// ClearLights removes all lights from the layer.
func (ll *LightLayer) ClearLights() { ll.lights = ll.lights[:0] }

// Lights returns the current light list. The returned slice must not be
// mutated.
func (ll *LightLayer) Lights() []*Light { return ll.lights }

// SetAmbientAlpha sets the base darkness level.
func (ll *LightLayer) SetAmbientAlpha(a float32) { ll.ambientAlpha = a }

// AmbientAlpha returns the current ambient darkness level.
func (ll *LightLayer) AmbientAlpha() float32 { return ll.ambientAlpha }

// circle returns a cached falloff table for radius: a (2r)x(2r) grid that
// is 1 at the center and eases to 0 at the rim.
func (ll *LightLayer) circle(radius float32) (table []float32, size int) {
	key := int(math.Ceil(float64(radius)))
	if key < 1 {
		key = 1
	}
	size = key * 2
	if t, ok := ll.circleCache[key]; ok {
		return t, size
	}
	if ll.circleCache == nil {
		ll.circleCache = make(map[int][]float32)
	}
	t := make([]float32, size*size)
	r := float32(key)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float32(x) + 0.5 - r
			dy := float32(y) + 0.5 - r
			dist := float32(math.Sqrt(float64(dx*dx+dy*dy))) / r
			if dist < 1 {
				t[y*size+x] = SmoothStep(0, 1, 1-dist)
			}
		}
	}
	ll.circleCache[key] = t
	return t, size
}

// Render draws the source and then scales every pixel by the light that
// reaches it. Each light erases part of the darkness and adds a faint tint.
func (ll *LightLayer) Render(c *Canvas, timeMs int64) {
	if ll.Source != nil {
		ll.Source.Render(c, timeMs)
	}
	n := c.w * c.h
	if cap(ll.shade) < n {
		ll.shade = make([]lightSample, n)
	}
	shade := ll.shade[:n]

	dark := Clamp(ll.ambientAlpha, 0, 1)
	for i := range shade {
		shade[i] = lightSample{dark: dark}
	}
	for _, l := range ll.lights {
		if l.Path != nil {
			l.X, l.Y = l.Path(timeMs)
		}
		if !l.Enabled || l.Radius <= 0 {
			continue
		}
		ll.addLight(shade, c.w, c.h, l)
	}

	for i, s := range shade {
		p := &c.pix[i]
		lit := 1 - s.dark
		p.R = clampByte(float32(p.R) * min(1, lit+s.tint[0]))
		p.G = clampByte(float32(p.G) * min(1, lit+s.tint[1]))
		p.B = clampByte(float32(p.B) * min(1, lit+s.tint[2]))
	}
}

type lightSample struct {
	dark float32 // ambient alpha left after the erase passes
	tint [3]float32
}

func (ll *LightLayer) addLight(shade []lightSample, w, h int, l *Light) {
	table, size := ll.circle(l.Radius)
	intensity := Clamp(l.Intensity, 0, 1)
	tinted := l.Color != (Color{}) && l.Color != White
	var tint [3]float32
	if tinted {
		k := intensity * 0.3 / 255
		tint = [3]float32{float32(l.Color.R) * k, float32(l.Color.G) * k, float32(l.Color.B) * k}
	}

	x0 := int(math.Floor(float64(l.X))) - size/2
	y0 := int(math.Floor(float64(l.Y))) - size/2
	for ty := 0; ty < size; ty++ {
		y := y0 + ty
		if y < 0 || y >= h {
			continue
		}
		for tx := 0; tx < size; tx++ {
			x := x0 + tx
			f := table[ty*size+tx]
			if x < 0 || x >= w || f == 0 {
				continue
			}
			s := &shade[y*w+x]
			s.dark *= 1 - intensity*f
			if tinted {
				for ch := range s.tint {
					s.tint[ch] += tint[ch] * f
				}
			}
		}
	}
}

// Reset implements Effect.
func (ll *LightLayer) Reset() { resetEffect(ll.Source) }

// IsFinished implements Effect.
func (ll *LightLayer) IsFinished() bool { return effectFinished(ll.Source) }
