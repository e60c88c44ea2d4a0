// Package geom provides the 2D geometry primitives shared by the scene
// engine: points, axis-aligned rectangles, numeric clamping, and short
// unique id generation.
package geom

import "github.com/google/uuid"

// Point represents a 2D coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FromCorners builds the rectangle spanning two arbitrary points.
// The points may be given in any order.
func FromCorners(a, b Point) Rect {
	x := min(a.X, b.X)
	y := min(a.Y, b.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(a.X, b.X) - x,
		Height: max(a.Y, b.Y) - y,
	}
}

// IsEmpty reports whether the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point lies inside the rect (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Intersects reports whether the two rects overlap. Rects that merely
// touch at an edge are considered intersecting, which matches lasso
// selection expectations.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.MaxX() && other.X <= r.MaxX() &&
		r.Y <= other.MaxY() && other.Y <= r.MaxY()
}

// Union returns the smallest rect containing both rects. An empty rect
// is treated as the identity so unions can be folded over a set.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.MaxX(), other.MaxX())
	maxY := max(r.MaxY(), other.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewID generates a short unique identifier for scene records.
func NewID() string {
	return uuid.New().String()[:8]
}
