// Package geoson reads and writes GeoJSON feature collections whose
// coordinates live either in the global geodetic frame (EPSG:4326) or in a
// local east/north/up frame anchored at a datum.
//
// Whatever the flavor of the source document, parsed coordinates are always
// stored in the local frame. The declared flavor only selects how tuples are
// interpreted on read and how they are emitted on write.
package geoson

import (
	"github.com/woozymasta/geoson/frame"
	"github.com/woozymasta/geoson/shape"
)

// GeoJSON type tags.
const (
	typeFeatureCollection  = "FeatureCollection"
	typeFeature            = "Feature"
	typePoint              = "Point"
	typeLineString         = "LineString"
	typePolygon            = "Polygon"
	typeMultiPoint         = "MultiPoint"
	typeMultiLineString    = "MultiLineString"
	typeMultiPolygon       = "MultiPolygon"
	typeGeometryCollection = "GeometryCollection"
)

// FeatureCollection is the unit of read and write.
//
// Datum is metadata plus the transform anchor used on the next write.
// Assigning a new Datum does not reproject stored coordinates, use Reanchor
// for that.
type FeatureCollection struct {
	Flavor  Flavor
	Datum   frame.Datum
	Heading frame.Euler

	// Properties holds collection-level properties other than crs, datum
	// and heading.
	Properties map[string]string

	Features []Feature
}

// Feature is exactly one geometry with string properties.
type Feature struct {
	Geometry   shape.Geometry
	Properties map[string]string

	// ID is the literal JSON text of the source id, empty when absent.
	ID string
}

// Kinds returns the geometry kind of every feature in order.
func (fc *FeatureCollection) Kinds() []shape.Kind {
	kinds := make([]shape.Kind, len(fc.Features))
	for i, f := range fc.Features {
		kinds[i] = f.Geometry.Kind()
	}
	return kinds
}

// Codec holds read and write settings. The zero value is ready to use:
// lenient parsing with frame.Default.
type Codec struct {
	transform frame.Transformer
	datum     *frame.Datum
	strict    bool
}

// NewCodec returns a lenient codec using frame.Default.
func NewCodec() Codec {
	return Codec{transform: frame.Default}
}

// WithStrict turns tolerated input into errors: features without geometry,
// polygon holes, unknown geometry types and line strings with fewer than
// two positions.
func (c Codec) WithStrict(strict bool) Codec {
	c.strict = strict
	return c
}

// WithTransformer sets the geodetic/local transform used on read and write.
func (c Codec) WithTransformer(t frame.Transformer) Codec {
	c.transform = t
	return c
}

// WithDatum makes parsing anchor coordinates at d instead of the datum
// declared by the document. The declared datum is still validated.
//
// Geodetic input is projected around d. Local input keeps its east/north/up
// values and is only re-labelled with d, so a later Geodetic write places it
// around d. Parse without the override and call FeatureCollection.Reanchor to
// move a Local document while keeping its geodetic positions.
func (c Codec) WithDatum(d frame.Datum) Codec {
	c.datum = &d
	return c
}

// Strict reports whether strict parsing is enabled.
func (c Codec) Strict() bool {
	return c.strict
}

// Transformer returns the configured transform.
func (c Codec) Transformer() frame.Transformer {
	if c.transform == nil {
		return frame.Default
	}
	return c.transform
}

var defaultCodec = NewCodec()

// Read parses the file at path with the default codec.
func Read(path string) (*FeatureCollection, error) {
	return defaultCodec.Read(path)
}

// Parse parses a GeoJSON document with the default codec.
func Parse(data []byte) (*FeatureCollection, error) {
	return defaultCodec.Parse(data)
}

// Write writes fc to path in its declared flavor with the default codec.
func Write(fc *FeatureCollection, path string) error {
	return defaultCodec.Write(fc, path)
}

// WriteAs writes fc to path in the given flavor with the default codec.
func WriteAs(fc *FeatureCollection, path string, flavor Flavor) error {
	return defaultCodec.WriteAs(fc, path, flavor)
}
