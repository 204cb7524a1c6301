package libled

import (
	"math"
	"math/rand/v2"
)

// Particle motion is expressed in "LED units": velocities are multiplied by
// this factor per second so that speeds of a few units cross a 32-pixel
// display in about a second.
const particleSpeedScale = 20

// particle holds per-particle simulation state. Unexported; managed by
// particlePool.
type particle struct {
	x, y    float32
	vx, vy  float32
	life    float32 // remaining lifetime in seconds
	maxLife float32 // initial lifetime, for fading
	color   Color
}

// gone reports whether p has left a w x h display for good. Horizontal
// motion is linear, so leaving the side edges is final. Leaving the bottom
// is final while moving down, and leaving the top only without gravity.
func (p *particle) gone(w, h int, gravity bool) bool {
	switch {
	case p.x < 0 || p.x >= float32(w):
		return true
	case p.y >= float32(h):
		return p.vy >= 0
	case p.y < 0:
		return !gravity && p.vy <= 0
	}
	return false
}

// particlePool is a preallocated set of particles. The first alive entries
// are live; dead ones are swap-removed.
type particlePool struct {
	particles []particle
	alive     int
	emitAccum float32
	emitted   int
}

func newParticlePool(size int) particlePool {
	if size <= 0 {
		size = 128
	}
	return particlePool{particles: make([]particle, size)}
}

// spawn returns the next free particle, or nil when the pool is full.
func (p *particlePool) spawn() *particle {
	if p.alive >= len(p.particles) {
		return nil
	}
	pt := &p.particles[p.alive]
	*pt = particle{}
	p.alive++
	p.emitted++
	return pt
}

// kill swap-removes particle i. Callers iterating forward must revisit i.
func (p *particlePool) kill(i int) {
	p.alive--
	p.particles[i] = p.particles[p.alive]
}

// due accumulates rate*dt and returns how many whole particles to emit now.
// The fractional remainder is carried to the next frame.
func (p *particlePool) due(rate, dt float32) int {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	p.emitAccum += rate * dt
	n := int(p.emitAccum)
	p.emitAccum -= float32(n)
	return n
}

func (p *particlePool) clear() {
	p.alive = 0
	p.emitAccum = 0
	p.emitted = 0
}

// live returns the live particles.
func (p *particlePool) live() []particle { return p.particles[:p.alive] }

// Random returns a value in [Min, Max).
func (r Range) Random(rng *rand.Rand) float32 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

// --- ParticleSystem ---

// EmitterConfig controls how a ParticleSystem spawns and draws particles.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// Rate is the number of particles spawned per second.
	Rate float32
	// Color is the particle base color.
	Color Color
	// Gravity pulls particles down at 9.8 units/s².
	Gravity bool
	// VX and VY are the initial velocity ranges in units per second.
	VX, VY Range
	// Life is the lifetime range in seconds.
	Life Range
	// Mode is how particles combine with the canvas.
	Mode BlendMode
}

// DefaultEmitterConfig is a fountain rising from the bottom row.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		MaxParticles: 512,
		Rate:         50,
		Color:        Red,
		Gravity:      true,
		VX:           Range{-1, 1},
		VY:           Range{-6, -1},
		Life:         Range{1, 2},
		Mode:         BlendAdd,
	}
}

// ParticleSystem emits particles from random points along the bottom row.
type ParticleSystem struct {
	Continuous
	Rand *rand.Rand

	config EmitterConfig
	pool   particlePool
	clock  frameDelta
}

// NewParticleSystem creates a system with a preallocated pool.
func NewParticleSystem(cfg EmitterConfig) *ParticleSystem {
	return &ParticleSystem{config: cfg, pool: newParticlePool(cfg.MaxParticles)}
}

// Config returns a pointer to the config for live tuning. The pool size is
// fixed at construction.
func (s *ParticleSystem) Config() *EmitterConfig { return &s.config }

// AliveCount returns the number of live particles.
func (s *ParticleSystem) AliveCount() int { return s.pool.alive }

// Emitted returns the number of particles spawned since the last reset.
func (s *ParticleSystem) Emitted() int { return s.pool.emitted }

// Reset kills every particle and restarts the frame clock.
func (s *ParticleSystem) Reset() {
	s.pool.clear()
	s.clock.reset()
}

// Render implements Effect.
func (s *ParticleSystem) Render(c *Canvas, timeMs int64) {
	if s.Rand == nil {
		s.Rand = newRand()
	}
	dt := s.clock.step(timeMs)
	s.update(dt, c.w, c.h)
	s.draw(c)
}

func (s *ParticleSystem) update(dt float32, w, h int) {
	cfg := &s.config
	for range s.pool.due(cfg.Rate, dt) {
		p := s.pool.spawn()
		if p == nil {
			break
		}
		p.x = float32(s.Rand.IntN(max(w, 1)))
		p.y = float32(h - 1)
		p.vx = cfg.VX.Random(s.Rand)
		p.vy = cfg.VY.Random(s.Rand)
		p.life = cfg.Life.Random(s.Rand)
		p.maxLife = p.life
		p.color = cfg.Color
	}
	i := 0
	for i < s.pool.alive {
		p := &s.pool.particles[i]
		p.x += p.vx * dt * particleSpeedScale
		p.y += p.vy * dt * particleSpeedScale
		if cfg.Gravity {
			p.vy += 9.8 * dt
		}
		p.life -= dt
		if p.life <= 0 || p.gone(w, h, cfg.Gravity) {
			s.pool.kill(i)
			continue
		}
		i++
	}
}

func (s *ParticleSystem) draw(c *Canvas) {
	for _, p := range s.pool.live() {
		c.DrawPixel(int(floor32(p.x)), int(floor32(p.y)), p.color.ModulateA(unit8(p.life)), s.config.Mode)
	}
}

// --- Explosion ---

// DefaultExplosionCount is the particle count of a default Explosion.
const DefaultExplosionCount = 100

// Explosion bursts particles in every direction from a point when
// triggered. It finishes once every particle has died.
type Explosion struct {
	Count int
	Color Color
	Rand  *rand.Rand

	pool      particlePool
	clock     frameDelta
	triggered bool
}

// NewExplosion returns an untriggered explosion.
func NewExplosion(col Color) *Explosion {
	return &Explosion{Count: DefaultExplosionCount, Color: col}
}

// Trigger respawns the burst at (x, y).
func (e *Explosion) Trigger(x, y int) {
	if e.Rand == nil {
		e.Rand = newRand()
	}
	if len(e.pool.particles) < e.Count {
		e.pool = newParticlePool(e.Count)
	}
	e.pool.clear()
	e.clock.reset()
	e.triggered = true
	for range e.Count {
		p := e.pool.spawn()
		if p == nil {
			break
		}
		angle := e.Rand.Float64() * 2 * math.Pi
		speed := 2 + e.Rand.Float32()*5
		p.x, p.y = float32(x), float32(y)
		p.vx = float32(math.Cos(angle)) * speed
		p.vy = float32(math.Sin(angle)) * speed
		p.life = 1
		p.maxLife = 1 + e.Rand.Float32()*0.5
		p.color = e.Color
	}
}

// AliveCount returns the number of live particles.
func (e *Explosion) AliveCount() int { return e.pool.alive }

// Render implements Effect.
func (e *Explosion) Render(c *Canvas, timeMs int64) {
	if !e.triggered {
		return
	}
	dt := e.clock.step(timeMs)
	i := 0
	for i < e.pool.alive {
		p := &e.pool.particles[i]
		p.x += p.vx * dt * particleSpeedScale
		p.y += p.vy * dt * particleSpeedScale
		p.vy += 9.8 * dt
		p.life -= dt
		if p.life <= 0 || p.gone(c.w, c.h, true) {
			e.pool.kill(i)
			continue
		}
		i++
	}
	for _, p := range e.pool.live() {
		c.BlendPixel(int(floor32(p.x)), int(floor32(p.y)), p.color.ScaleAlpha(p.life/p.maxLife))
	}
}

// Reset clears the burst; the explosion waits for the next Trigger.
func (e *Explosion) Reset() {
	e.pool.clear()
	e.clock.reset()
	e.triggered = false
}

// IsFinished reports whether a triggered burst has fully died out.
func (e *Explosion) IsFinished() bool {
	return e.triggered && e.pool.alive == 0
}

// --- Fireworks ---

type rocket struct {
	x, y  float32
	vy    float32
	color Color
}

// Fireworks launches rockets from the bottom edge at random intervals;
// each bursts into an Explosion near the top of its arc.
type Fireworks struct {
	Continuous
	Rand *rand.Rand

	rockets    []rocket
	explosions []*Explosion
	spare      []*Explosion
	next       int64
	started    bool
	clock      frameDelta
}

// NewFireworks returns an idle fireworks display.
func NewFireworks() *Fireworks {
	return &Fireworks{}
}

// Rockets returns the number of rockets in flight.
func (f *Fireworks) Rockets() int { return len(f.rockets) }

// Explosions returns the number of bursts still alive.
func (f *Fireworks) Explosions() int { return len(f.explosions) }

// Render implements Effect.
func (f *Fireworks) Render(c *Canvas, timeMs int64) {
	if f.Rand == nil {
		f.Rand = newRand()
	}
	if !f.started {
		f.started = true
		f.next = timeMs
	}
	dt := f.clock.step(timeMs)

	if timeMs >= f.next && c.w > 0 {
		x := 10 + f.Rand.IntN(max(c.w-20, 1))
		f.rockets = append(f.rockets, rocket{
			x:     float32(x),
			y:     float32(c.h),
			vy:    -2 - f.Rand.Float32()*2,
			color: HSV(f.Rand.Float64()*360, 1, 1),
		})
		f.next = timeMs + 500 + int64(f.Rand.IntN(1000))
	}

	live := f.rockets[:0]
	for _, r := range f.rockets {
		r.y += r.vy * dt * particleSpeedScale
		r.vy += 2 * dt
		c.SetPixel(int(floor32(r.x)), int(floor32(r.y)), r.color)
		if r.vy >= -0.5 {
			f.burst(int(r.x), int(r.y), r.color)
			continue
		}
		live = append(live, r)
	}
	f.rockets = live

	alive := f.explosions[:0]
	for _, e := range f.explosions {
		e.Render(c, timeMs)
		if e.IsFinished() {
			f.spare = append(f.spare, e)
			continue
		}
		alive = append(alive, e)
	}
	f.explosions = alive
}

func (f *Fireworks) burst(x, y int, col Color) {
	var e *Explosion
	if n := len(f.spare); n > 0 {
		e = f.spare[n-1]
		f.spare = f.spare[:n-1]
		e.Color = col
	} else {
		e = NewExplosion(col)
		e.Rand = f.Rand
	}
	e.Trigger(x, y)
	f.explosions = append(f.explosions, e)
}

// Reset removes every rocket and burst.
func (f *Fireworks) Reset() {
	f.spare = append(f.spare, f.explosions...)
	f.explosions = f.explosions[:0]
	f.rockets = f.rockets[:0]
	f.started = false
	f.clock.reset()
}

// --- Comet ---

// Comet is a white head bouncing around the display, leaving a fading fire
// trail behind it.
type Comet struct {
	Continuous

	x, y   float32
	vx, vy float32
	trail  particlePool
	clock  frameDelta
}

// NewComet starts a comet in the top-left corner.
func NewComet() *Comet {
	c := &Comet{trail: newParticlePool(256)}
	c.Reset()
	return c
}

// Reset moves the comet back to its start.
func (m *Comet) Reset() {
	m.x, m.y = 0, 0
	m.vx, m.vy = 2.5, 1
	m.trail.clear()
	m.clock.reset()
}

// Head returns the head position.
func (m *Comet) Head() Vec2 { return Vec2{m.x, m.y} }

// Render implements Effect.
func (m *Comet) Render(c *Canvas, timeMs int64) {
	dt := m.clock.step(timeMs)
	if dt > 0 {
		m.x += m.vx * dt * particleSpeedScale
		m.y += m.vy * dt * particleSpeedScale
		if m.x < 0 || m.x >= float32(c.w) {
			m.vx = -m.vx
		}
		if m.y < 0 || m.y >= float32(c.h) {
			m.vy = -m.vy
		}
		if p := m.trail.spawn(); p != nil {
			p.x, p.y, p.life, p.maxLife = m.x, m.y, 1, 1
		}
	}
	fire := Color{255, 100, 0, 255}
	i := 0
	for i < m.trail.alive {
		p := &m.trail.particles[i]
		p.life -= dt * 2
		if p.life <= 0 {
			m.trail.kill(i)
			continue
		}
		c.BlendPixel(int(floor32(p.x)), int(floor32(p.y)), fire.ScaleAlpha(p.life))
		i++
	}
	c.SetPixel(int(floor32(m.x)), int(floor32(m.y)), White)
}

// --- FallingPixels ---

// DefaultFallRate is the per-frame chance, in thousandths, that a resting
// pixel starts to fall.
const DefaultFallRate = 5

type fallingPixel struct {
	x, y  float32
	vy    float32
	color Color
}

// FallingPixels crumbles an image: every opaque pixel eventually drops off
// the bottom of the display. When nothing is left the image is rebuilt.
type FallingPixels struct {
	Source Image
	Rate   int     // per mille per frame
	Speed  float32 // fall speed multiplier
	Rand   *rand.Rand

	pixels []fallingPixel
	active int
	clock  frameDelta
	rounds int
}

// NewFallingPixels crumbles img.
func NewFallingPixels(img Image) *FallingPixels {
	return &FallingPixels{Source: img, Rate: DefaultFallRate, Speed: 1}
}

func (f *FallingPixels) rebuild() {
	f.pixels = f.pixels[:0]
	if f.Source == nil {
		return
	}
	for y := 0; y < f.Source.Height(); y++ {
		for x := 0; x < f.Source.Width(); x++ {
			c := f.Source.Color(x, y)
			if c.A > 0 {
				f.pixels = append(f.pixels, fallingPixel{x: float32(x), y: float32(y), color: c})
			}
		}
	}
	f.active = len(f.pixels)
	f.rounds++
}

// Remaining returns the number of pixels still on screen.
func (f *FallingPixels) Remaining() int { return f.active }

// Rounds returns how many times the image has been (re)built.
func (f *FallingPixels) Rounds() int { return f.rounds }

// Render implements Effect.
func (f *FallingPixels) Render(c *Canvas, timeMs int64) {
	if f.Rand == nil {
		f.Rand = newRand()
	}
	if f.active == 0 {
		f.rebuild()
		f.clock.reset()
	}
	dt := f.clock.step(timeMs)
	speed := f.Speed
	if speed <= 0 {
		speed = 1
	}
	i := 0
	for i < f.active {
		p := &f.pixels[i]
		if p.vy == 0 && f.Rand.IntN(1000) < f.Rate {
			p.vy = 2 + f.Rand.Float32()*2
		}
		if p.vy > 0 {
			p.y += p.vy * dt * particleSpeedScale * speed
			p.vy += 9.8 * dt * speed
		}
		if p.y >= float32(c.h) {
			f.active--
			f.pixels[i] = f.pixels[f.active]
			continue
		}
		c.SetPixel(int(p.x), int(floor32(p.y)), p.color)
		i++
	}
}

// Reset rebuilds the image on the next frame.
func (f *FallingPixels) Reset() {
	f.active = 0
	f.rounds = 0
	f.clock.reset()
}

// IsFinished always returns false; the effect restarts itself.
func (f *FallingPixels) IsFinished() bool { return false }
