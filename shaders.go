package libled

import "math"

// FireShader is two-level domain-warped FBM mapped to a red-yellow ramp.
func FireShader(u, v, t float32) Color {
	t *= 2
	n1 := FBM(Vec2{u * 5, v*5 - t})
	n2 := FBM(Vec2{u*10 + n1, v*10 - t*2})
	c := n2 * 1.5
	r := c * 255
	g := c * c * 255
	b := c * c * c * c * 255
	r = min(255, r*2)
	g = min(255, g+r/4)
	return Color{clampByte(r), clampByte(g), clampByte(b), 255}
}

// PlasmaShader is the classic sum-of-sines plasma in full hue.
func PlasmaShader(u, v, t float32) Color {
	x, y := u*8, v*8
	p := sin32(x+t) +
		sin32((y+t)/2) +
		sin32((x+y+t)/2) +
		sin32(sqrt32(x*x+y*y+1)+t)
	hue := float64(Fract(p/4+t*0.05)) * 360
	return HSV(hue, 1, 1)
}

// SolidShader returns a shader that ignores its arguments.
func SolidShader(c Color) Shader {
	return func(u, v, t float32) Color { return c }
}

// aspect returns w/h, guarding against an empty display.
func aspect(w, h int) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// SineRippleShader is a circular ripple pattern centered on the display.
func SineRippleShader(w, h int) Shader {
	ar := aspect(w, h)
	return func(u, v, time float32) Color {
		uv := Vec2{u*2 - 1, v*2 - 1}
		if ar > 1 {
			uv.X *= ar
		} else {
			uv.Y /= ar
		}
		t := -time*3 + 5000 + sin32(time/3)*5
		const maxDist = 1.2
		dist := uv.Len() * 0.35
		if dist > maxDist {
			return Black
		}
		d2 := dist * dist
		strength := (sin32(d2*50) + 1) / 2
		height := (sin32(t*strength) + 1) / 2
		alpha := 1 - d2/(maxDist*maxDist) + (1-height)*-0.014
		col := Vec3{0.9, 0.9, 0.9}.Mul(height)
		shade := (1 - alpha) * 0.652
		col = Vec3{col.X - shade, col.Y - shade, col.Z - shade}
		return col.Mul(Clamp(alpha, 0, 1)).Color()
	}
}

// clog is the complex logarithm.
func clog(z Vec2) Vec2 {
	return Vec2{float32(math.Log(float64(z.Len()))), float32(math.Atan2(float64(z.Y), float64(z.X)))}
}

// FieldLineShader draws field lines and animated equipotentials around
// three charges, one of them oscillating.
func FieldLineShader(w, h int) Shader {
	size := Vec2{float32(w), float32(h)}
	charges := [3]float32{2, 2, -2}
	return func(u, v, time float32) Color {
		const (
			solutions     = 5
			radius        = 3
			fade          = 2
			lineThickness = 1.5
		)
		frag := Vec2{u * size.X, v * size.Y}
		particles := [3]Vec2{
			{size.X * (0.5 + sin32(time*0.5)*0.2), size.Y * 0.5},
			{size.X * 0.3, size.Y * 0.5},
			{size.X * 0.7, size.Y * 0.5},
		}
		var field Vec2
		for i, p := range particles {
			field = field.Add(clog(frag.Sub(p)).Mul(charges[i]))
		}

		e := cos32(field.Y * solutions)
		ed := abs32(sin32(field.Y*solutions) * solutions)
		ev := lineThickness - abs32(e/max(ed*0.01, 0.001))

		anim := float32(math.Mod(float64(time), 2*math.Pi))
		pv := cos32(field.X*solutions + anim)
		pd := abs32(sin32(field.X*solutions+anim) * solutions)
		vv := lineThickness - abs32(pv/max(pd*0.01, 0.001))

		ec := Vec3{0.031, 0.482, 0.737}.Mul(max(ev, 0))
		vc := Vec3{0.031, 0.596, 0.490}.Mul(max(vv, 0))
		col := Vec3{max(ec.X, vc.X), max(ec.Y, vc.Y), max(ec.Z, vc.Z)}

		for i, p := range particles {
			pc := Vec3{0, 0, 1}
			if charges[i] < 0 {
				pc = Vec3{1, 0, 0}
			}
			d := frag.Sub(p).Len()
			col = MixVec3(col, pc, SmoothStep(0, 1, -(d-radius)/fade))
		}
		return col.Color()
	}
}

func remap(v, l1, h1, l2, h2 float32) float32 {
	return l2 + (v-l1)*(h2-l2)/(h1-l1)
}

func waveHash(p float32) float32 {
	p = Fract(7.8233139 * p)
	p = ((2384.2345*p-1324.3438)*p+3884.2243)*p - 4921.2354
	return remap(Fract(p), 0.1, 1, 2, 3)
}

func waveFBM(v, h, t float32) float32 {
	f := sin32(v+t)*0.5 - 0.5
	f += sin32(v*h*1.145+t*h*3.345)*0.5 - 0.5
	f += sin32(v*h*1.776+t*h*2.964)*0.5 - 0.5
	f += sin32(v*h*2.454-t*h*0.478)*0.5 - 0.5
	f *= 2
	f *= SmoothStep(5, -5, abs32(v))
	return f * 0.5
}

// WavesShader stacks five distorted ridge lines, each occluding the ones
// behind it.
func WavesShader(w, h int) Shader {
	res := Vec2{float32(w), float32(h)}
	border := float32(15)
	if h > 0 {
		border /= float32(h)
	}
	return func(u, v, time float32) Color {
		if res.Y == 0 {
			return Black
		}
		frag := Vec2{u * res.X, v * res.Y}
		p := frag.Sub(res.Mul(0.5)).Mul(2 / res.Y)
		t := time * 0.4
		var s float32
		for i := float32(0.8); i >= -0.8-1e-4; i -= 0.4 {
			q := p.Sub(Vec2{0, i})
			k := q.Y + waveFBM(q.X, waveHash(i), t)
			s1 := SmoothStep(0, border, k-1.2)
			s2 := SmoothStep(-border, 0, k+1.2-1)
			s = (s1 - s2) + min(s, s2)
		}
		col := 1 - s
		if abs32(p.X) > 1.5 {
			col = max(col, 1)
		}
		g := clampByte(col * 255)
		return Color{g, g, g, 255}
	}
}

// VoronoiShader renders animated F1 cellular noise as grey levels. Cells
// are eight pixels across.
func VoronoiShader(w, h int) Shader {
	sx, sy := float32(w)/8, float32(h)/8
	return func(u, v, t float32) Color {
		d := Voronoi(Vec2{u * sx, v * sy}, t)
		g := clampByte((1 - d) * 255)
		return Color{g, g, g, 255}
	}
}

func gridLines(uv Vec2, battery, time float32) float32 {
	size := Vec2{uv.Y, uv.Y * uv.Y * 0.2}.Mul(0.025)
	uv = uv.Mul(0.2)
	uv.Y += -time * 0.5 * (battery + 0.05)
	uv = Vec2{abs32(Fract(uv.X) - 0.5), abs32(Fract(uv.Y) - 0.5)}
	lx := SmoothStep(size.X, 0, uv.X) + SmoothStep(size.X*5, 0, uv.X)*0.4*battery
	ly := SmoothStep(size.Y, 0, uv.Y) + SmoothStep(size.Y*5, 0, uv.Y)*0.4*battery
	return Clamp(lx+ly, 0, 3)
}

// GridShader is a retro perspective grid mirrored around a central horizon.
func GridShader(w, h int) Shader {
	res := Vec2{float32(w), float32(h)}
	return func(u, v, time float32) Color {
		if res.Y == 0 {
			return Black
		}
		frag := Vec2{u * res.X, v * res.Y}
		uv := frag.Mul(2).Sub(res).Mul(1 / res.Y)
		ay := abs32(uv.Y)
		fade := SmoothStep(0.2, 0.8, ay)
		const battery = 1
		fog := SmoothStep(0.1, -0.02, ay)
		col := Vec3{0, 0.1, 0.2}
		if ay > 0.05 {
			py := 3 / (ay + 0.05)
			g := gridLines(Vec2{uv.X * py, py}, battery, time)
			col = MixVec3(col, Vec3{1, 0.5, 1}, g)
		}
		f3 := fog * fog * fog
		col = col.Add(Vec3{f3, f3, f3})
		grey := Vec3{col.X, col.X, col.X}.Mul(0.5)
		col = MixVec3(grey, col, battery*0.7)
		return col.Mul(fade).Color()
	}
}
