package libled

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween interpolates a fixed number of keys through a chain of move and
// hold segments. Each key of a move segment is driven by its own
// gween.Tween, evaluated at the segment-local time.
//
//	t := NewTween(0).Wait(400).To(255).During(1).To(0).During(200).Via(ease.OutExpo)
//
// Times are in milliseconds.
type Tween struct {
	from   []float32
	segs   []tweenSegment
	total  float32
	cursor float32
	vals   []float32
	dirty  bool
}

type tweenSegment struct {
	wait   bool
	dur    float32
	begin  []float32
	end    []float32
	fns    []ease.TweenFunc
	tweens []*gween.Tween
}

// NewTween starts a chain at the given values. The number of values fixes
// the key count for every later To.
func NewTween(from ...float32) *Tween {
	t := &Tween{
		from: append([]float32(nil), from...),
		vals: append([]float32(nil), from...),
	}
	return t
}

// end returns the values the chain currently finishes on.
func (t *Tween) end() []float32 {
	if len(t.segs) == 0 {
		return t.from
	}
	return t.segs[len(t.segs)-1].end
}

// To appends a linear move segment with zero duration.
func (t *Tween) To(values ...float32) *Tween {
	if len(values) != len(t.from) {
		panic(fmt.Sprintf("libled: tween To expects %d values, got %d", len(t.from), len(values)))
	}
	t.segs = append(t.segs, tweenSegment{
		begin: t.end(),
		end:   append([]float32(nil), values...),
	})
	t.dirty = true
	return t
}

// Wait appends a hold segment that keeps the current end values for ms.
func (t *Tween) Wait(ms float32) *Tween {
	e := t.end()
	t.segs = append(t.segs, tweenSegment{wait: true, dur: max(ms, 0), begin: e, end: e})
	t.total += max(ms, 0)
	t.dirty = true
	return t
}

// During sets the duration of the last segment.
func (t *Tween) During(ms float32) *Tween {
	if len(t.segs) == 0 {
		return t
	}
	s := &t.segs[len(t.segs)-1]
	t.total += max(ms, 0) - s.dur
	s.dur = max(ms, 0)
	s.tweens = nil
	t.cursor = min(t.cursor, t.total)
	t.dirty = true
	return t
}

// Via sets the easing of the last move segment. A single function applies
// to every key; otherwise functions map to keys in order and missing ones
// stay linear.
func (t *Tween) Via(fns ...ease.TweenFunc) *Tween {
	for i := len(t.segs) - 1; i >= 0; i-- {
		if t.segs[i].wait {
			continue
		}
		t.segs[i].fns = append([]ease.TweenFunc(nil), fns...)
		t.segs[i].tweens = nil
		t.dirty = true
		break
	}
	return t
}

func (s *tweenSegment) easing(k int) ease.TweenFunc {
	var fn ease.TweenFunc
	switch {
	case len(s.fns) == 1:
		fn = s.fns[0]
	case k < len(s.fns):
		fn = s.fns[k]
	}
	if fn == nil {
		return ease.Linear
	}
	return fn
}

func (s *tweenSegment) build() {
	s.tweens = make([]*gween.Tween, len(s.end))
	for k := range s.end {
		s.tweens[k] = gween.New(s.begin[k], s.end[k], s.dur, s.easing(k))
	}
}

// --- Runtime ---

// Step advances the cursor by dt ms and returns key 0. Negative steps are
// ignored.
func (t *Tween) Step(dt float32) float32 {
	if dt > 0 {
		t.cursor = min(t.cursor+dt, t.total)
		t.dirty = true
	}
	return t.Peek()
}

// Seek moves the cursor to ms, clamped to [0, Duration], and returns key 0.
func (t *Tween) Seek(ms float32) float32 {
	t.cursor = min(max(ms, 0), t.total)
	t.dirty = true
	return t.Peek()
}

// Reset moves the cursor back to the start.
func (t *Tween) Reset() { t.Seek(0) }

// Peek returns key 0 without advancing.
func (t *Tween) Peek() float32 {
	return t.Value(0)
}

// Value returns key k at the cursor, or 0 for an unknown key.
func (t *Tween) Value(k int) float32 {
	t.eval()
	if k < 0 || k >= len(t.vals) {
		return 0
	}
	return t.vals[k]
}

// Values returns a copy of every key at the cursor.
func (t *Tween) Values() []float32 {
	t.eval()
	return append([]float32(nil), t.vals...)
}

// Progress is the cursor position as a fraction of the total duration. It
// is exactly 1 once the end is reached, and for zero-length chains.
func (t *Tween) Progress() float32 {
	if t.total <= 0 || t.cursor >= t.total {
		return 1
	}
	return t.cursor / t.total
}

// Duration returns the chain length in ms.
func (t *Tween) Duration() float32 { return t.total }

// Elapsed returns the cursor position in ms.
func (t *Tween) Elapsed() float32 { return t.cursor }

// Finished reports whether the cursor reached the end.
func (t *Tween) Finished() bool { return t.Progress() >= 1 }

func (t *Tween) eval() {
	if !t.dirty {
		return
	}
	t.dirty = false
	at := t.cursor
	for i := range t.segs {
		s := &t.segs[i]
		if at < s.dur {
			if s.wait {
				copy(t.vals, s.begin)
				return
			}
			if s.tweens == nil {
				s.build()
			}
			for k, tw := range s.tweens {
				t.vals[k], _ = tw.Set(at)
			}
			return
		}
		at -= s.dur
	}
	copy(t.vals, t.end())
}

// --- Easing table ---

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"inbounce":     ease.InBounce,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
}

// EasingByName looks up an easing function by name, ignoring case and
// separators: "OutCubic", "out-cubic" and "out_cubic" are equivalent.
func EasingByName(name string) (ease.TweenFunc, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	fn, ok := easings[key]
	return fn, ok
}
