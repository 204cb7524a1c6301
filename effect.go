package libled

import "time"

// Effect renders one frame of a visual onto a canvas at a point in time.
// timeMs is the time source every effect in a tree shares; effects derive
// their own elapsed time from it.
type Effect interface {
	Render(c *Canvas, timeMs int64)
	Reset()
	IsFinished() bool
}

// Continuous can be embedded by effects that never finish and keep no
// resettable state.
type Continuous struct{}

// Reset does nothing.
func (Continuous) Reset() {}

// IsFinished always returns false.
func (Continuous) IsFinished() bool { return false }

// EffectFunc adapts a plain render function into a continuous Effect.
type EffectFunc func(c *Canvas, timeMs int64)

// Render calls f.
func (f EffectFunc) Render(c *Canvas, timeMs int64) { f(c, timeMs) }

// Reset does nothing.
func (EffectFunc) Reset() {}

// IsFinished always returns false.
func (EffectFunc) IsFinished() bool { return false }

// --- Timeline ---

// TimelineState is the lifecycle position of a Timeline.
type TimelineState uint8

const (
	NotStarted TimelineState = iota
	Running
	Finished
)

func (s TimelineState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// FinishPolicy decides what a finished Timeline does on later ticks.
type FinishPolicy uint8

const (
	// FinishFreeze holds elapsed time at the finish point forever.
	FinishFreeze FinishPolicy = iota
	// FinishRestart re-arms on the next tick after finishing.
	FinishRestart
	// FinishRestartAfterIdle re-arms once Idle ms have passed since finishing.
	FinishRestartAfterIdle
)

// Timeline is the shared NotStarted -> Running -> Finished state machine for
// time-bounded effects. The owner calls Tick at the top of every Render and
// rebuilds its tweens whenever Tick reports armed.
type Timeline struct {
	Policy FinishPolicy
	Idle   int64 // ms, for FinishRestartAfterIdle

	state      TimelineState
	start      int64
	finishedAt int64
}

// Tick records the start time on the first call and returns the time
// elapsed since the current run started. armed is true whenever a new run
// begins. Time flowing backwards also starts a new run.
func (tl *Timeline) Tick(timeMs int64) (elapsed int64, armed bool) {
	switch tl.state {
	case Running:
		if timeMs < tl.start {
			return tl.arm(timeMs)
		}
		return timeMs - tl.start, false
	case Finished:
		switch tl.Policy {
		case FinishRestart:
			return tl.arm(timeMs)
		case FinishRestartAfterIdle:
			if timeMs-tl.finishedAt >= tl.Idle || timeMs < tl.finishedAt {
				return tl.arm(timeMs)
			}
		}
		return tl.finishedAt - tl.start, false
	default:
		return tl.arm(timeMs)
	}
}

func (tl *Timeline) arm(timeMs int64) (int64, bool) {
	tl.state = Running
	tl.start = timeMs
	tl.finishedAt = 0
	return 0, true
}

// Finish ends the current run at timeMs. It is a no-op unless running.
func (tl *Timeline) Finish(timeMs int64) {
	if tl.state != Running {
		return
	}
	tl.state = Finished
	tl.finishedAt = max(timeMs, tl.start)
}

// State returns the current lifecycle state.
func (tl *Timeline) State() TimelineState { return tl.state }

// Finished reports whether the current run has ended.
func (tl *Timeline) Finished() bool { return tl.state == Finished }

// Start returns the time the current run started.
func (tl *Timeline) Start() int64 { return tl.start }

// Reset returns the timeline to NotStarted.
func (tl *Timeline) Reset() {
	tl.state = NotStarted
	tl.start = 0
	tl.finishedAt = 0
}

// --- Clocks ---

// Clock is an alternative time source for an effect subtree.
type Clock interface {
	NowMs() int64
}

// ClockFunc adapts a function into a Clock.
type ClockFunc func() int64

// NowMs calls f.
func (f ClockFunc) NowMs() int64 { return f() }

// WallClock measures monotonic wall time from its first reading.
type WallClock struct {
	origin time.Time
}

// NewWallClock returns a wall clock whose zero is now.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// NowMs returns the milliseconds elapsed since the clock's origin.
func (w *WallClock) NowMs() int64 {
	if w.origin.IsZero() {
		w.origin = time.Now()
	}
	return time.Since(w.origin).Milliseconds()
}

// clocked renders its child with times taken from a Clock instead of the
// caller's timeMs.
type clocked struct {
	Effect
	clock Clock
}

// WithClock makes e and everything below it read time from clock. The
// timeMs passed to Render is ignored.
func WithClock(e Effect, clock Clock) Effect {
	if e == nil || clock == nil {
		return e
	}
	return &clocked{Effect: e, clock: clock}
}

func (c *clocked) Render(cv *Canvas, _ int64) {
	c.Effect.Render(cv, c.clock.NowMs())
}

// frameDelta turns consecutive timeMs readings into a step in seconds. The
// first reading, backwards time and gaps over a second all yield zero.
type frameDelta struct {
	last int64
	seen bool
}

func (f *frameDelta) step(timeMs int64) float32 {
	if !f.seen {
		f.seen = true
		f.last = timeMs
		return 0
	}
	d := timeMs - f.last
	f.last = timeMs
	if d <= 0 || d > 1000 {
		return 0
	}
	return float32(d) / 1000
}

func (f *frameDelta) reset() { *f = frameDelta{} }
