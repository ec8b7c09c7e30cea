package dialect

import (
	"encoding/xml"
	"sort"
)

// Class is the branch of the reader a geometry element is dispatched to.
type Class int

const (
	NotGeometry Class = iota
	ClassPoint
	ClassCurve
	ClassRing
	ClassSurface
	ClassSolid
	ClassAggregate
	ClassComplex
	ClassImplicit
	ClassEnvelope
)

var classNames = map[Class]string{
	NotGeometry:    "none",
	ClassPoint:     "point",
	ClassCurve:     "curve",
	ClassRing:      "ring",
	ClassSurface:   "surface",
	ClassSolid:     "solid",
	ClassAggregate: "aggregate",
	ClassComplex:   "complex",
	ClassImplicit:  "implicit",
	ClassEnvelope:  "envelope",
}

func (c Class) String() string { return classNames[c] }

// Primitive reports whether elements of the class substitute for
// gml:_GeometricPrimitive.
func (c Class) Primitive() bool {
	switch c {
	case ClassPoint, ClassCurve, ClassRing, ClassSurface, ClassSolid:
		return true
	}
	return false
}

// gml2Elements are the concrete geometry elements of GML 2.1.
var gml2Elements = map[string]Class{
	"Point":           ClassPoint,
	"LineString":      ClassCurve,
	"LinearRing":      ClassRing,
	"Polygon":         ClassSurface,
	"Box":             ClassEnvelope,
	"MultiPoint":      ClassAggregate,
	"MultiLineString": ClassAggregate,
	"MultiPolygon":    ClassAggregate,
	"MultiGeometry":   ClassAggregate,
}

// gml3Elements are the concrete geometry elements of GML 3.0 to 3.2.
var gml3Elements = map[string]Class{
	"Point": ClassPoint,

	"LineString":      ClassCurve,
	"Curve":           ClassCurve,
	"OrientableCurve": ClassCurve,
	"CompositeCurve":  ClassCurve,

	"LinearRing": ClassRing,
	"Ring":       ClassRing,

	"Polygon":             ClassSurface,
	"Surface":             ClassSurface,
	"CompositeSurface":    ClassSurface,
	"OrientableSurface":   ClassSurface,
	"PolyhedralSurface":   ClassSurface,
	"TriangulatedSurface": ClassSurface,
	"Tin":                 ClassSurface,

	"Solid":          ClassSolid,
	"CompositeSolid": ClassSolid,

	"MultiPoint":      ClassAggregate,
	"MultiCurve":      ClassAggregate,
	"MultiLineString": ClassAggregate,
	"MultiSurface":    ClassAggregate,
	"MultiPolygon":    ClassAggregate,
	"MultiSolid":      ClassAggregate,
	"MultiGeometry":   ClassAggregate,

	"GeometricComplex": ClassComplex,

	"Grid":          ClassImplicit,
	"RectifiedGrid": ClassImplicit,

	"Envelope": ClassEnvelope,
}

func table(v Version) map[string]Class {
	if v == GML21 {
		return gml2Elements
	}
	return gml3Elements
}

// Lookup returns the class of a GML element given by its local name, or
// NotGeometry.
func Lookup(v Version, local string) Class {
	return table(v)[local]
}

// Elements returns the local names of the geometry elements of version v,
// sorted.
func Elements(v Version) []string {
	t := table(v)
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Element is a geometry element after substitution-group resolution.
type Element struct {
	// Name is the element name as it appears in the document.
	Name xml.Name
	// Base is the local name of the concrete GML element Name stands for.
	Base  string
	Class Class
}

// Substituted reports whether Name is an application-schema element
// standing in for a GML element.
func (e Element) Substituted() bool {
	return !IsGMLNamespace(e.Name.Space) || e.Name.Local != e.Base
}

// Classify resolves name to a geometry element. With a hierarchy the
// hierarchy alone decides; without one the element must be a GML element
// of version v. Unknown names fail with ErrUnknownElement.
func Classify(v Version, name xml.Name, h Hierarchy) (Element, error) {
	base := name.Local
	if h != nil {
		b, ok := h.Substitution(name)
		if !ok {
			return Element{}, &ErrUnknownElement{Name: name, Reason: "not declared in the application schema in use"}
		}
		base = b
	} else if name.Space != v.Namespace() {
		return Element{}, &ErrUnknownElement{Name: name, Reason: "not in the GML " + v.String() + " namespace"}
	}
	class := Lookup(v, base)
	if class == NotGeometry {
		return Element{}, &ErrUnknownElement{Name: name, Reason: "not a GML " + v.String() + " geometry element"}
	}
	return Element{Name: name, Base: base, Class: class}, nil
}

// IsGeometry reports whether name denotes a geometry or envelope element.
func IsGeometry(v Version, name xml.Name, h Hierarchy) bool {
	_, err := Classify(v, name, h)
	return err == nil
}
