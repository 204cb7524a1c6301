// Package luashader compiles Lua scripts into libled pixel shaders.
//
// A script defines a global function shade(u, v, t) returning r, g, b and
// an optional alpha, each in [0, 1]:
//
//	function shade(u, v, t)
//	  local n = fbm(u * 4 + t, v * 4)
//	  return n, n * 0.5, 1 - n
//	end
//
// The base, string, table and math libraries are available, as are the
// helpers noise(x, y), fbm(x, y), voronoi(x, y, t), smoothstep(e0, e1, x),
// fract(x), mix(a, b, t) and clamp(x, lo, hi). Scripts have no access to
// files or the operating system.
package luashader

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/vis-iks/libled"
)

// Program is a compiled shader script. Calls to Shade are serialized, so
// one program may back several effects.
type Program struct {
	mu     sync.Mutex
	state  *lua.LState
	shade  lua.LValue
	errs   int
	closed bool
}

// Compile runs src and looks up its shade function.
func Compile(src string) (*Program, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibs(L)
	registerHelpers(L)
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("luashader: compile: %w", err)
	}
	fn := L.GetGlobal("shade")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, errors.New("luashader: compile: script defines no shade function")
	}
	return &Program{state: L, shade: fn}, nil
}

func openLibs(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// The base library can load files.
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func num(L *lua.LState, n int) float32 { return float32(L.CheckNumber(n)) }

func registerHelpers(L *lua.LState) {
	helpers := map[string]func(L *lua.LState) float32{
		"noise": func(L *lua.LState) float32 {
			return libled.Noise(libled.Vec2{X: num(L, 1), Y: num(L, 2)})
		},
		"fbm": func(L *lua.LState) float32 {
			return libled.FBM(libled.Vec2{X: num(L, 1), Y: num(L, 2)})
		},
		"voronoi": func(L *lua.LState) float32 {
			return libled.Voronoi(libled.Vec2{X: num(L, 1), Y: num(L, 2)}, num(L, 3))
		},
		"smoothstep": func(L *lua.LState) float32 {
			return libled.SmoothStep(num(L, 1), num(L, 2), num(L, 3))
		},
		"fract": func(L *lua.LState) float32 { return libled.Fract(num(L, 1)) },
		"mix":   func(L *lua.LState) float32 { return libled.Mix(num(L, 1), num(L, 2), num(L, 3)) },
		"clamp": func(L *lua.LState) float32 { return libled.Clamp(num(L, 1), num(L, 2), num(L, 3)) },
	}
	for name, fn := range helpers {
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LNumber(fn(L)))
			return 1
		}))
	}
}

// channel maps a Lua number in [0, 1] to a byte. Other values give def.
func channel(v lua.LValue, def uint8) uint8 {
	n, ok := v.(lua.LNumber)
	if !ok {
		return def
	}
	switch f := float64(n); {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}

// Shade evaluates the script for one pixel. A script error yields
// Transparent; the first one is logged.
func (p *Program) Shade(u, v, t float32) libled.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return libled.Transparent
	}
	err := p.state.CallByParam(lua.P{Fn: p.shade, NRet: 4, Protect: true},
		lua.LNumber(u), lua.LNumber(v), lua.LNumber(t))
	if err != nil {
		if p.errs == 0 {
			libled.Warnf("luashader: %v", err)
		}
		p.errs++
		return libled.Transparent
	}
	c := libled.Color{
		R: channel(p.state.Get(-4), 0),
		G: channel(p.state.Get(-3), 0),
		B: channel(p.state.Get(-2), 0),
		A: channel(p.state.Get(-1), 255),
	}
	p.state.Pop(4)
	return c
}

// Shader adapts the program to libled.Shader.
func (p *Program) Shader() libled.Shader { return p.Shade }

// Errors returns how many pixels failed to evaluate.
func (p *Program) Errors() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs
}

// Close releases the Lua state. Later calls to Shade return Transparent.
func (p *Program) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.state.Close()
	}
}
