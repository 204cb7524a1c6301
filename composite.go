package libled

import (
	"math/rand/v2"
	"reflect"
)

// Composite renders its children in order onto the same canvas.
type Composite struct {
	children []Effect
}

// NewComposite builds a composite from effects, skipping nil ones.
func NewComposite(children ...Effect) *Composite {
	c := &Composite{}
	for _, e := range children {
		c.Add(e)
	}
	return c
}

// Add appends a child. Nil, including a typed nil pointer, is ignored.
func (c *Composite) Add(e Effect) {
	if e = effectOrNil(e); e != nil {
		c.children = append(c.children, e)
	}
}

// Clear removes every child.
func (c *Composite) Clear() { c.children = c.children[:0] }

// Len returns the number of children.
func (c *Composite) Len() int { return len(c.children) }

// Render draws each child in insertion order.
func (c *Composite) Render(cv *Canvas, timeMs int64) {
	for _, e := range c.children {
		e.Render(cv, timeMs)
	}
}

// Reset resets every child.
func (c *Composite) Reset() {
	for _, e := range c.children {
		e.Reset()
	}
}

// IsFinished reports whether there is at least one child and every child
// has finished.
func (c *Composite) IsFinished() bool {
	if len(c.children) == 0 {
		return false
	}
	for _, e := range c.children {
		if !e.IsFinished() {
			return false
		}
	}
	return true
}

// offscreen is a lazily allocated private canvas that follows the size of
// the canvas it is composited into.
type offscreen struct {
	c *Canvas
}

// get returns a cleared canvas the size of like.
func (o *offscreen) get(like *Canvas) *Canvas {
	if o.c == nil || o.c.w != like.w || o.c.h != like.h {
		o.c = NewCanvas(like.w, like.h)
		return o.c
	}
	o.c.Clear(Transparent)
	return o.c
}

// renderInto clears a private canvas sized like c and renders e into it.
// A nil effect leaves it transparent.
func (o *offscreen) renderInto(e Effect, c *Canvas, timeMs int64) *Canvas {
	buf := o.get(c)
	if e != nil {
		e.Render(buf, timeMs)
	}
	return buf
}

// newRand returns a randomly seeded generator for effects built without an
// explicit one.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// effectOrNil maps a nil pointer or func held in an Effect, such as
// (*Fade)(nil), to a nil Effect. Constructors pass every source through it
// so the nil checks in Render hold. Fields set directly must use a plain nil.
func effectOrNil(e Effect) Effect {
	if e == nil {
		return nil
	}
	switch v := reflect.ValueOf(e); v.Kind() {
	case reflect.Pointer, reflect.Func:
		if v.IsNil() {
			return nil
		}
	}
	return e
}

func resetEffect(e Effect) {
	if e != nil {
		e.Reset()
	}
}

func effectFinished(e Effect) bool {
	return e != nil && e.IsFinished()
}
