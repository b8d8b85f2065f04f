package entropy

import (
	"math"
	"math/rand/v2"
)

// Point is a position in canvas space, in pixels. The origin is the top-left
// corner of the canvas with Y increasing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by s on both axes.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Perp returns p rotated by 90 degrees: (-y, x).
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Range is an inclusive min/max sampling range used for per-particle
// attributes. A Range whose Max is not greater than Min samples as Min.
type Range struct {
	Min, Max float64
}

// Sample returns a value in [Min, Max] drawn from rng.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// SampleInt returns an integer in [ceil(Min), floor(Max)] drawn from rng.
// Degenerate ranges return Min rounded to the nearest integer.
func (r Range) SampleInt(rng *rand.Rand) int {
	lo := int(math.Ceil(r.Min))
	hi := int(math.Floor(r.Max))
	if hi <= lo {
		return int(math.Round(r.Min))
	}
	return lo + rng.IntN(hi-lo+1)
}
