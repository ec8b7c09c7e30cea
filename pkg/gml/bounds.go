package gml

import (
	"math"

	"github.com/beetlebugorg/gml/internal/geometry"
)

// Bounds is a two-dimensional bounding box in the coordinates of the
// geometries it was computed from. No CRS conversion is applied.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Contains returns true if the point (x, y) is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by margin in all directions.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Union returns the smallest bounds covering b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Width returns the extent along the first axis.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the extent along the second axis.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf returns the 2D bounds of g. ok is false when g has no positions
// or only one ordinate per position.
func BoundsOf(g Geometry) (Bounds, bool) {
	if g == nil {
		return Bounds{}, false
	}
	env, ok := geometry.Bounds(g)
	if !ok || len(env.Min) < 2 || len(env.Max) < 2 {
		return Bounds{}, false
	}
	return Bounds{
		MinX: env.Min[0],
		MinY: env.Min[1],
		MaxX: env.Max[0],
		MaxY: env.Max[1],
	}, true
}
