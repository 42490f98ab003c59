package geoson

import (
	"maps"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/woozymasta/geoson/frame"
	"github.com/woozymasta/geoson/shape"
)

// reservedProperties are the collection-level keys consumed as metadata.
var reservedProperties = []string{"crs", "datum", "heading"}

// Read loads and parses the GeoJSON file at path.
func (c Codec) Read(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErrorf(err, "cannot open %q", path)
	}

	fc, err := c.Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "read %s", path)
	}

	log.Debug().
		Str("path", path).
		Str("crs", fc.Flavor.Label()).
		Int("features", len(fc.Features)).
		Msg("Feature collection loaded")

	return fc, nil
}

// Parse parses a GeoJSON document of any top-level shape.
func (c Codec) Parse(data []byte) (*FeatureCollection, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.WithStack(ErrMalformedJSON)
	}

	doc, err := Normalize(gjson.ParseBytes(data))
	if err != nil {
		return nil, err
	}

	return c.ParseCollection(doc)
}

// ParseCollection parses a normalized FeatureCollection document.
//
// The top-level properties must carry a string crs, a datum array of at
// least three numbers (lat, lon, alt) and a numeric heading. Features
// without geometry are skipped unless the codec is strict. Every leaf
// geometry becomes its own Feature with a copy of the source properties.
func (c Codec) ParseCollection(doc gjson.Result) (*FeatureCollection, error) {
	props := doc.Get("properties")
	if !props.IsObject() {
		return nil, errors.WithStack(ErrMissingProperties)
	}

	crs := props.Get("crs")
	if crs.Type != gjson.String {
		return nil, errors.WithStack(ErrMissingCRS)
	}

	datum, err := parseDatum(props.Get("datum"))
	if err != nil {
		return nil, err
	}

	heading := props.Get("heading")
	if heading.Type != gjson.Number {
		return nil, errors.WithStack(ErrMissingHeading)
	}

	flavor, err := ResolveCRS(crs.String())
	if err != nil {
		return nil, err
	}

	if c.datum != nil {
		datum = *c.datum
	}

	fc := &FeatureCollection{
		Flavor:     flavor,
		Datum:      datum,
		Heading:    frame.Euler{Yaw: heading.Float()},
		Properties: CoerceProperties(props),
	}
	for _, key := range reservedProperties {
		delete(fc.Properties, key)
	}

	features := doc.Get("features")
	if !features.Exists() {
		return fc, nil
	}
	if !features.IsArray() {
		return nil, errors.WithStack(ErrFeatures)
	}

	for i, feat := range features.Array() {
		if !feat.IsObject() {
			return nil, errors.Wrapf(ErrType, "feature %d is %s, not an object", i, feat.Type)
		}

		geometry := feat.Get("geometry")
		if !geometry.Exists() || geometry.Type == gjson.Null {
			if c.strict {
				return nil, errors.Wrapf(ErrNullGeometry, "feature %d", i)
			}
			log.Debug().Int("feature", i).Msg("Skipping feature without geometry")
			continue
		}

		geoms, err := c.ParseGeometry(geometry, datum, flavor)
		if err != nil {
			return nil, errors.WithMessagef(err, "feature %d", i)
		}

		properties := CoerceProperties(feat.Get("properties"))

		var id string
		if raw := feat.Get("id"); raw.Exists() {
			id = canonicalJSON(raw)
		}

		for _, g := range geoms {
			fc.Features = append(fc.Features, Feature{
				Geometry:   g,
				Properties: maps.Clone(properties),
				ID:         id,
			})
		}
	}

	return fc, nil
}

func parseDatum(v gjson.Result) (frame.Datum, error) {
	if !v.IsArray() {
		return frame.Datum{}, errors.WithStack(ErrInvalidDatum)
	}

	vals := v.Array()
	if len(vals) < 3 {
		return frame.Datum{}, errors.WithStack(ErrInvalidDatum)
	}
	for _, x := range vals[:3] {
		if x.Type != gjson.Number {
			return frame.Datum{}, errors.WithStack(ErrInvalidDatum)
		}
	}

	return frame.Datum{Lat: vals[0].Float(), Lon: vals[1].Float(), Alt: vals[2].Float()}, nil
}

// ParseGeometry converts one geometry node into its leaf geometries, in
// document order. Multi geometries and collections are flattened.
//
// Under Geodetic flavor a tuple is [lon, lat, alt?] and is projected into
// the local frame of datum; under Local flavor it is [east, north, up?]
// taken as is. A missing third element is 0.
func (c Codec) ParseGeometry(node gjson.Result, datum frame.Datum, flavor Flavor) ([]shape.Geometry, error) {
	p := geometryParser{
		transform: c.Transformer(),
		datum:     datum,
		flavor:    flavor,
		strict:    c.strict,
	}
	return p.parse(node, nil)
}

type geometryParser struct {
	transform frame.Transformer
	datum     frame.Datum
	flavor    Flavor
	strict    bool
}

func (p geometryParser) parse(node gjson.Result, out []shape.Geometry) ([]shape.Geometry, error) {
	typ, err := geometryType(node)
	if err != nil {
		return nil, err
	}

	if typ == typeGeometryCollection {
		geometries, err := elements(node.Get("geometries"))
		if err != nil {
			return nil, err
		}
		for _, sub := range geometries {
			if out, err = p.parse(sub, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	coords := node.Get("coordinates")

	switch typ {
	case typePoint:
		pt, err := p.point(coords)
		if err != nil {
			return nil, err
		}
		return append(out, pt), nil

	case typeLineString:
		g, err := p.lineString(coords)
		if err != nil {
			return nil, err
		}
		return append(out, g), nil

	case typePolygon:
		g, err := p.polygon(coords)
		if err != nil {
			return nil, err
		}
		return append(out, g), nil

	case typeMultiPoint, typeMultiLineString, typeMultiPolygon:
		members, err := elements(coords)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			var g shape.Geometry
			switch typ {
			case typeMultiPoint:
				g, err = p.point(m)
			case typeMultiLineString:
				g, err = p.lineString(m)
			default:
				g, err = p.polygon(m)
			}
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	}

	if p.strict {
		return nil, errors.Wrapf(ErrUnknownGeometry, "%q", typ)
	}
	log.Debug().Str("type", typ).Msg("Ignoring unknown geometry type")

	return out, nil
}

func (p geometryParser) point(coords gjson.Result) (shape.Point, error) {
	tuple, err := elements(coords)
	if err != nil {
		return shape.Point{}, err
	}

	a, err := number(tuple, 0)
	if err != nil {
		return shape.Point{}, err
	}
	b, err := number(tuple, 1)
	if err != nil {
		return shape.Point{}, err
	}
	var c float64
	if len(tuple) > 2 {
		if c, err = number(tuple, 2); err != nil {
			return shape.Point{}, err
		}
	}

	if p.flavor == Local {
		return shape.Point{X: a, Y: b, Z: c}, nil
	}

	enu := p.transform.ToENU(p.datum, frame.WGS{Lat: b, Lon: a, Alt: c})
	return shape.Point{X: enu.East, Y: enu.North, Z: enu.Up}, nil
}

func (p geometryParser) points(coords gjson.Result) ([]shape.Point, error) {
	tuples, err := elements(coords)
	if err != nil {
		return nil, err
	}

	pts := make([]shape.Point, 0, len(tuples))
	for _, t := range tuples {
		pt, err := p.point(t)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

// lineString returns a Line for exactly two positions and a Path otherwise.
func (p geometryParser) lineString(coords gjson.Result) (shape.Geometry, error) {
	pts, err := p.points(coords)
	if err != nil {
		return nil, err
	}

	switch {
	case len(pts) == 2:
		return shape.Line{Start: pts[0], End: pts[1]}, nil
	case len(pts) < 2 && p.strict:
		return nil, errors.Wrapf(ErrMalformedGeometry, "line string with %d positions", len(pts))
	}
	return shape.Path{Points: pts}, nil
}

// polygon keeps the exterior ring only.
func (p geometryParser) polygon(coords gjson.Result) (shape.Polygon, error) {
	rings, err := elements(coords)
	if err != nil {
		return shape.Polygon{}, err
	}
	if len(rings) == 0 {
		return shape.Polygon{}, errors.Wrap(ErrMalformedGeometry, "polygon has no rings")
	}
	if len(rings) > 1 {
		if p.strict {
			return shape.Polygon{}, errors.Wrapf(ErrPolygonHoles, "%d holes", len(rings)-1)
		}
		log.Trace().Int("holes", len(rings)-1).Msg("Dropping polygon holes")
	}

	pts, err := p.points(rings[0])
	if err != nil {
		return shape.Polygon{}, err
	}
	return shape.Polygon{Points: pts}, nil
}
