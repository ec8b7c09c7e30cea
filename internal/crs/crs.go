// Package crs resolves coordinate reference system names and transforms
// coordinates between them.
//
// Names are accepted in every form GML documents use for EPSG codes
// ("EPSG:4326", "urn:ogc:def:crs:EPSG::4326", "urn:x-ogc:def:crs:EPSG:6.6:4326",
// "http://www.opengis.net/gml/srs/epsg.xml#4326",
// "http://www.opengis.net/def/crs/EPSG/0/4326") and are normalized to
// "EPSG:<code>". Projection math is delegated to github.com/ctessum/geom/proj.
//
// The URN forms and the OGC definition URL use the axis order of the EPSG
// registry, which is latitude first for geographic systems. The short
// "EPSG:n" form and the epsg.xml URL are always longitude first.
package crs

import (
	"regexp"
	"strings"
)

// CRS is a handle for a coordinate reference system named in a document.
//
// A handle is created for every srsName seen, whether or not a definition
// is known. Unknown systems have Dimension 0 and cannot be transformed.
type CRS struct {
	name   string
	code   string
	dim    int
	latLon bool
}

// Name returns the name as written in the document.
func (c *CRS) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Code returns the normalized identifier, or "" when the name is not a
// recognizable EPSG or OGC code.
func (c *CRS) Code() string {
	if c == nil {
		return ""
	}
	return c.code
}

// Dimension returns the native coordinate dimension, 0 when unknown.
func (c *CRS) Dimension() int {
	if c == nil {
		return 0
	}
	return c.dim
}

// LatLon reports whether positions in c list latitude before longitude.
func (c *CRS) LatLon() bool {
	return c != nil && c.latLon
}

// SameSystem reports whether two handles denote the same datum and
// projection, regardless of axis order.
func (c *CRS) SameSystem(o *CRS) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.code != "" && o.code != "" {
		return c.code == o.code
	}
	return c.name == o.name
}

// Equal reports whether positions in c and o can be used unchanged: the
// same system with the same axis order. Handles with normalized codes
// compare by code; others by name.
func (c *CRS) Equal(o *CRS) bool {
	return c.SameSystem(o) && c.LatLon() == o.LatLon()
}

func (c *CRS) String() string { return c.Name() }

var epsgPattern = regexp.MustCompile(`(?i)epsg[^0-9]*?(?:[:/#]|::)(?:[0-9.]+[:/])?([0-9]+)$`)

// Normalize maps the many spellings of a CRS identifier to a canonical
// "EPSG:<code>" or "CRS:84". It returns "" for names it does not recognize.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	lower := strings.ToLower(s)
	switch {
	case lower == "":
		return ""
	case lower == "crs:84" || strings.HasSuffix(lower, ":crs84") || strings.HasSuffix(lower, "/crs84"):
		return "CRS:84"
	}
	if m := epsgPattern.FindStringSubmatch(s); m != nil {
		return "EPSG:" + m[1]
	}
	return ""
}

// authorityAxes reports whether name is spelled in a form that follows the
// axis order of the EPSG registry.
func authorityAxes(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasPrefix(lower, "urn:ogc:def:crs:epsg:") ||
		strings.HasPrefix(lower, "urn:x-ogc:def:crs:epsg:") ||
		strings.HasPrefix(lower, "http://www.opengis.net/def/crs/epsg/") ||
		strings.HasPrefix(lower, "https://www.opengis.net/def/crs/epsg/")
}
