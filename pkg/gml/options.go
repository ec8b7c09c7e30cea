package gml

import (
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gml/internal/parser"
	"github.com/beetlebugorg/gml/internal/writer"
)

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Version forces the GML version. VersionUnknown detects it from the
	// namespace of the first geometry element.
	Version Version

	// DefaultCRS is the srsName assumed for geometries without one in scope.
	DefaultCRS string

	// DefaultDimension is used when neither srsDimension nor the CRS give
	// the coordinate dimension.
	// Default: 2
	DefaultDimension int

	// Hierarchy declares application elements substituting for GML
	// geometries and the extra properties they carry.
	Hierarchy Hierarchy

	// CRSResolver maps srsName values to CRS handles. Default: built-in
	// definitions.
	CRSResolver *CRSResolver

	// AllowDuplicateIDs lets a later geometry replace an earlier one with the
	// same gml:id instead of failing.
	// Default: false
	AllowDuplicateIDs bool

	// ValidateGeometry checks ring closure, finite ordinates and consistent
	// dimensions after parsing.
	// Default: true
	ValidateGeometry bool

	// Cache, if set, resolves xlink:href values that point into other
	// documents by loading them through the cache.
	Cache *DocumentCache

	// Logger receives debug output. Default: discarded.
	Logger logrus.FieldLogger
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		DefaultDimension: 2,
		ValidateGeometry: true,
	}
}

func (o ParseOptions) internal(p Parser) parser.ParseOptions {
	opts := parser.ParseOptions{
		Version:           o.Version,
		DefaultCRS:        o.DefaultCRS,
		DefaultDimension:  o.DefaultDimension,
		Hierarchy:         o.Hierarchy,
		CRSResolver:       o.CRSResolver,
		AllowDuplicateIDs: o.AllowDuplicateIDs,
		ValidateGeometry:  o.ValidateGeometry,
		Logger:            o.Logger,
	}
	if o.Cache != nil && p != nil {
		opts.Fallback = o.Cache.Resolver(p, o)
	}
	return opts
}

// Simplifier rewrites a geometry before it is written.
type Simplifier = writer.Simplifier

// ExportedIDs is the set of ids already written to an output.
type ExportedIDs = writer.ExportedIDs

// NewIDSet creates an empty ExportedIDs set that may be shared by several
// encoders writing into one output.
func NewIDSet() *writer.IDSet {
	return writer.NewIDSet()
}

// WriteOptions configures encoding.
type WriteOptions struct {
	// Version is the GML version written.
	// Default: GML 3.2
	Version Version

	// OutputCRS, if set, transforms all coordinates into this system.
	OutputCRS string

	// CRSResolver supplies CRS definitions. Default: built-in definitions.
	CRSResolver *CRSResolver

	// Simplifier, if set, rewrites every geometry before it is written.
	Simplifier Simplifier

	// Exported is the set of ids already written. Geometries whose id is in
	// the set are written as xlink:href references. Default: a new set per
	// Encode call.
	Exported ExportedIDs

	// NewID generates the gml:id GML 3.2 requires on unidentified
	// geometries. Default: "GEOMETRY_" followed by a random UUID.
	NewID func() string

	// Indent, if set, pretty prints the output.
	Indent string

	// Logger receives debug output. Default: discarded.
	Logger logrus.FieldLogger
}

// DefaultWriteOptions returns default options.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Version: GML32}
}

func (o WriteOptions) internal() writer.Options {
	return writer.Options{
		Version:    o.Version,
		OutputCRS:  o.OutputCRS,
		Resolver:   o.CRSResolver,
		Simplifier: o.Simplifier,
		Exported:   o.Exported,
		NewID:      o.NewID,
		Indent:     o.Indent,
		Logger:     o.Logger,
	}
}
