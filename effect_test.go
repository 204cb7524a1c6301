package libled

import "testing"

func TestTimelineLifecycle(t *testing.T) {
	var tl Timeline
	if tl.State() != NotStarted {
		t.Fatalf("initial state = %v", tl.State())
	}
	elapsed, armed := tl.Tick(1000)
	if elapsed != 0 || !armed || tl.State() != Running {
		t.Fatalf("first tick = %d, %v, %v", elapsed, armed, tl.State())
	}
	elapsed, armed = tl.Tick(1250)
	if elapsed != 250 || armed {
		t.Errorf("second tick = %d, %v", elapsed, armed)
	}
	tl.Finish(1500)
	if !tl.Finished() {
		t.Fatal("should be finished")
	}
	tl.Reset()
	if tl.State() != NotStarted {
		t.Errorf("after Reset state = %v", tl.State())
	}
}

func TestTimelinePolicies(t *testing.T) {
	tests := []struct {
		name       string
		policy     FinishPolicy
		idle       int64
		at         int64
		wantArmed  bool
		wantElapse int64
	}{
		{"freeze holds", FinishFreeze, 0, 5000, false, 500},
		{"restart", FinishRestart, 0, 1600, true, 0},
		{"idle waits", FinishRestartAfterIdle, 300, 1700, false, 500},
		{"idle restarts", FinishRestartAfterIdle, 300, 1800, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Timeline{Policy: tt.policy, Idle: tt.idle}
			tl.Tick(1000)
			tl.Finish(1500)
			elapsed, armed := tl.Tick(tt.at)
			if armed != tt.wantArmed || elapsed != tt.wantElapse {
				t.Errorf("Tick(%d) = %d, %v, want %d, %v", tt.at, elapsed, armed, tt.wantElapse, tt.wantArmed)
			}
		})
	}
}

func TestTimelineBackwardsTimeRearms(t *testing.T) {
	var tl Timeline
	tl.Tick(1000)
	if _, armed := tl.Tick(500); !armed {
		t.Error("time going backwards should start a new run")
	}
	if tl.Start() != 500 {
		t.Errorf("Start = %d, want 500", tl.Start())
	}
}

func TestTimelineStateString(t *testing.T) {
	for s, want := range map[TimelineState]string{NotStarted: "not-started", Running: "running", Finished: "finished"} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}

func TestFrameDelta(t *testing.T) {
	var f frameDelta
	steps := []struct {
		at   int64
		want float64
	}{
		{100, 0},
		{125, 0.025},
		{125, 0},
		{100, 0},
		{2000, 0},
		{2500, 0.5},
	}
	for _, s := range steps {
		assertNear(t, "step", float64(f.step(s.at)), s.want)
	}
}

func TestWithClock(t *testing.T) {
	var seen []int64
	probe := EffectFunc(func(c *Canvas, timeMs int64) { seen = append(seen, timeMs) })
	now := int64(42)
	e := WithClock(probe, ClockFunc(func() int64 { return now }))
	c := NewCanvas(1, 1)
	e.Render(c, 0)
	now = 99
	e.Render(c, 0)
	if len(seen) != 2 || seen[0] != 42 || seen[1] != 99 {
		t.Errorf("seen = %v, want [42 99]", seen)
	}
	if WithClock(probe, nil) == nil {
		t.Error("nil clock should return the effect unchanged")
	}
}

func TestWallClockMonotonic(t *testing.T) {
	var w WallClock
	a := w.NowMs()
	b := w.NowMs()
	if a < 0 || b < a {
		t.Errorf("wall clock went backwards: %d then %d", a, b)
	}
}
