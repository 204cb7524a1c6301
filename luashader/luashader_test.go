package luashader

import (
	"strings"
	"testing"

	"github.com/vis-iks/libled"
)

func compile(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"syntax", "function shade(u, v, t", "compile"},
		{"no shade", "x = 1", "no shade function"},
		{"not a function", "shade = 4", "no shade function"},
		{"top-level error", `error("boom")`, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		u, v, t float32
		want    libled.Color
	}{
		{"coordinates", "function shade(u, v, t) return u, v, t end", 0.5, 1, 0, libled.Color{R: 128, G: 255, B: 0, A: 255}},
		{"alpha", "function shade(u, v, t) return 1, 1, 1, 0.5 end", 0, 0, 0, libled.Color{R: 255, G: 255, B: 255, A: 128}},
		{"clamped", "function shade(u, v, t) return -2, 7, 0.25 end", 0, 0, 0, libled.Color{R: 0, G: 255, B: 64, A: 255}},
		{"missing values", "function shade(u, v, t) return 1 end", 0, 0, 0, libled.Red},
		{"math library", "function shade(u, v, t) return math.abs(math.sin(0)), math.max(u, v), 0 end", 0.2, 1, 0, libled.Color{R: 0, G: 255, B: 0, A: 255}},
		{"helpers", "function shade(u, v, t) return smoothstep(0, 1, u), noise(0, 0), fract(1.25) end", 0.5, 0, 0, libled.Color{R: 128, G: 0, B: 64, A: 255}},
		{"mix and clamp", "function shade(u, v, t) return mix(0, 1, 0.5), clamp(3, 0, 1), 0 end", 0, 0, 0, libled.Color{R: 128, G: 255, B: 0, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compile(t, tt.src)
			if got := p.Shade(tt.u, tt.v, tt.t); got != tt.want {
				t.Errorf("Shade(%v, %v, %v) = %v, want %v", tt.u, tt.v, tt.t, got, tt.want)
			}
		})
	}
}

func TestNoiseHelpersInRange(t *testing.T) {
	p := compile(t, "function shade(u, v, t) return fbm(u * 8, v * 8), voronoi(u * 8, v * 8, t), noise(u * 3, v * 3) * 0.5 + 0.5 end")
	for _, uv := range [][2]float32{{0.1, 0.2}, {0.5, 0.5}, {0.9, 0.3}} {
		c := p.Shade(uv[0], uv[1], 1.5)
		if c.A != 255 {
			t.Errorf("alpha %d at %v", c.A, uv)
		}
	}
	if p.Errors() != 0 {
		t.Errorf("%d errors", p.Errors())
	}
}

func TestRuntimeErrorIsTransparent(t *testing.T) {
	p := compile(t, `function shade(u, v, t)
		if u > 0.5 then error("right half") end
		return 1, 0, 0
	end`)
	c := libled.NewCanvas(4, 1)
	libled.NewShaderEffect(p.Shader()).Render(c, 0)
	want := []libled.Color{libled.Red, libled.Red, libled.Red, libled.Transparent}
	for x, w := range want {
		if got := c.GetPixel(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
	if p.Errors() != 1 {
		t.Errorf("errors = %d, want 1", p.Errors())
	}
}

func TestSandbox(t *testing.T) {
	for _, src := range []string{
		"function shade(u, v, t) return os.time(), 0, 0 end",
		`function shade(u, v, t) dofile("/etc/passwd") return 0, 0, 0 end`,
		`function shade(u, v, t) return io.read(), 0, 0 end`,
	} {
		p := compile(t, src)
		if got := p.Shade(0, 0, 0); got != libled.Transparent {
			t.Errorf("%q = %v, want a failed pixel", src, got)
		}
	}
}

func TestClose(t *testing.T) {
	p := compile(t, "function shade(u, v, t) return 1, 1, 1 end")
	p.Close()
	p.Close()
	if got := p.Shade(0, 0, 0); got != libled.Transparent {
		t.Errorf("Shade after Close = %v", got)
	}
}
