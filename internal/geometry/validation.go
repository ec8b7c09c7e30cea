package geometry

import (
	"fmt"
	"math"
)

// ValidateCoordinate checks that every ordinate of a position is finite.
func ValidateCoordinate(coords []float64) error {
	for i, v := range coords {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("ordinate %d is not finite (%v)", i, v)
		}
	}
	return nil
}

// Validate checks g and its nested geometries against the model rules the
// readers do not enforce by themselves:
//   - ordinates are finite
//   - all positions of a geometry have the same dimension
//   - linear rings are closed and have at least four positions
//   - line strings have at least two positions
//
// Unresolved references are not followed.
func Validate(g Geometry) error {
	if g == nil {
		return &ErrInvalidGeometry{Reason: "geometry is nil"}
	}
	var err error
	Walk(g, func(n Geometry) bool {
		err = validateOne(n)
		return err == nil
	})
	return err
}

func validateOne(g Geometry) error {
	switch v := g.(type) {
	case *Point:
		if v.Ref != nil {
			return nil
		}
		return checkPositions(g, []*Point{v})
	case *LineString:
		if len(v.Points) < 2 {
			return invalid(g, fmt.Sprintf("must consist of two points at least, got %d", len(v.Points)))
		}
		return checkPositions(g, v.Points)
	case *LinearRing:
		if len(v.Points) < 4 {
			return invalid(g, fmt.Sprintf("must specify at least four points, got %d", len(v.Points)))
		}
		if err := checkPositions(g, v.Points); err != nil {
			return err
		}
		if !closed(v.Points) {
			return invalid(g, "ring is not closed")
		}
	case *Ring:
		pts := CurvePoints(v)
		if len(pts) >= 2 && !closed(pts) {
			return invalid(g, "ring is not closed")
		}
	case *Tin:
		if len(v.ControlPoints) < 3 {
			return invalid(g, fmt.Sprintf("must specify at least three control points, got %d", len(v.ControlPoints)))
		}
		return checkPositions(g, v.ControlPoints)
	case *Envelope:
		if len(v.Min) != len(v.Max) {
			return invalid(g, "corners differ in dimension")
		}
		if err := ValidateCoordinate(v.Min); err != nil {
			return invalid(g, err.Error())
		}
		if err := ValidateCoordinate(v.Max); err != nil {
			return invalid(g, err.Error())
		}
	case *Curve:
		for i, s := range v.Segments {
			if _, ok := s.(*OffsetCurve); ok {
				continue
			}
			if reason := positionsReason(s.ControlPoints()); reason != "" {
				return invalid(g, fmt.Sprintf("segment %d (%s): %s", i, s.SegmentKind(), reason))
			}
		}
	}
	return nil
}

func checkPositions(g Geometry, points []*Point) error {
	if reason := positionsReason(points); reason != "" {
		return invalid(g, reason)
	}
	return nil
}

func positionsReason(points []*Point) string {
	dim := Dimension(points)
	for i, p := range points {
		if p.Ref != nil {
			continue
		}
		if len(p.Coords) != dim {
			return fmt.Sprintf("position %d has dimension %d, expected %d", i, len(p.Coords), dim)
		}
		if err := ValidateCoordinate(p.Coords); err != nil {
			return fmt.Sprintf("position %d invalid: %v", i, err)
		}
	}
	return ""
}

func closed(points []*Point) bool {
	first, last := points[0], points[len(points)-1]
	if first.Ref != nil || last.Ref != nil {
		return true
	}
	return first.Equal(last)
}

func invalid(g Geometry, reason string) error {
	return &ErrInvalidGeometry{Kind: g.Kind(), ID: g.ID(), Reason: reason}
}
