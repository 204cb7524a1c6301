package libled

// Point is an integer pixel coordinate. The origin is the top-left corner
// with Y increasing downward.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{x, y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned integer rectangle. X and Y are inclusive, the
// right and bottom edges X+Width and Y+Height are exclusive.
type Rect struct {
	X, Y, Width, Height int
}

// RectOf builds the rectangle covering a whole size at the origin.
func RectOf(s Size) Rect {
	return Rect{0, 0, s.W, s.H}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlap of r and o. The result is empty (zero
// width or height) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Translate returns r moved by p.
func (r Rect) Translate(p Point) Rect {
	return Rect{r.X + p.X, r.Y + p.Y, r.Width, r.Height}
}

// Vec2 is a float32 2D vector used by shaders and particle simulation.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a float32 3-component vector, usually an RGB triple in [0, 1].
type Vec3 struct {
	X, Y, Z float32
}

// Range is a float32 min/max pair used for randomized particle parameters.
type Range struct {
	Min, Max float32
}
