package geoson

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson/frame"
	"github.com/woozymasta/geoson/shape"
)

// GeometryToJSON serializes one geometry. Local flavor emits [x, y, z] as
// stored; Geodetic flavor projects each point back around datum and emits
// [lon, lat, alt]. Line and Path both become LineString, Polygon a single
// ring.
func (c Codec) GeometryToJSON(g shape.Geometry, datum frame.Datum, flavor Flavor) GeometryDoc {
	enc := coordinateEncoder{transform: c.Transformer(), datum: datum, flavor: flavor}

	switch v := g.(type) {
	case shape.Point:
		return GeometryDoc{Type: typePoint, Coordinates: enc.point(v)}
	case shape.Line:
		return GeometryDoc{Type: typeLineString, Coordinates: [][]float64{enc.point(v.Start), enc.point(v.End)}}
	case shape.Path:
		return GeometryDoc{Type: typeLineString, Coordinates: enc.points(v.Points)}
	case shape.Polygon:
		return GeometryDoc{Type: typePolygon, Coordinates: [][][]float64{enc.points(v.Points)}}
	}
	panic(fmt.Sprintf("geoson: unexpected geometry %T", g))
}

// FeatureToJSON serializes one feature. Property values are written as
// strings, coerced values keep their text form.
func (c Codec) FeatureToJSON(f Feature, datum frame.Datum, flavor Flavor) FeatureDoc {
	return FeatureDoc{
		Type:       typeFeature,
		ID:         RawID(f.ID),
		Geometry:   c.GeometryToJSON(f.Geometry, datum, flavor),
		Properties: cloneProperties(f.Properties),
	}
}

// ToJSON builds the document for fc in the given flavor. fc is not modified.
func (c Codec) ToJSON(fc *FeatureCollection, flavor Flavor) Document {
	features := make([]FeatureDoc, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, c.FeatureToJSON(f, fc.Datum, flavor))
	}

	return Document{
		Type: typeFeatureCollection,
		Properties: DocumentProperties{
			CRS:     flavor.Label(),
			Datum:   [3]float64{fc.Datum.Lat, fc.Datum.Lon, fc.Datum.Alt},
			Heading: fc.Heading.Yaw,
			Extra:   cloneProperties(fc.Properties),
		},
		Features: features,
	}
}

// Marshal returns fc as indented GeoJSON text in the given flavor.
func (c Codec) Marshal(fc *FeatureCollection, flavor Flavor) ([]byte, error) {
	data, err := json.MarshalIndent(c.ToJSON(fc, flavor), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal feature collection")
	}
	return append(data, '\n'), nil
}

// Write writes fc to path in its declared flavor.
func (c Codec) Write(fc *FeatureCollection, path string) error {
	return c.WriteAs(fc, path, fc.Flavor)
}

// WriteAs writes fc to path in the given flavor.
func (c Codec) WriteAs(fc *FeatureCollection, path string, flavor Flavor) (err error) {
	data, err := c.Marshal(fc, flavor)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(err, "cannot open for write: %s", path)
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
			if err == nil {
				err = ioErrorf(closeErr, "close %s", path)
			}
		}
	}()

	if _, err := f.Write(data); err != nil {
		return ioErrorf(err, "write %s", path)
	}

	log.Debug().
		Str("path", path).
		Str("crs", flavor.Label()).
		Int("features", len(fc.Features)).
		Msg("Feature collection written")

	return nil
}

type coordinateEncoder struct {
	transform frame.Transformer
	datum     frame.Datum
	flavor    Flavor
}

func (e coordinateEncoder) point(p shape.Point) []float64 {
	if e.flavor == Local {
		return []float64{p.X, p.Y, p.Z}
	}

	wgs := e.transform.ToWGS(e.datum, frame.ENU{East: p.X, North: p.Y, Up: p.Z})
	return []float64{wgs.Lon, wgs.Lat, wgs.Alt}
}

func (e coordinateEncoder) points(pts []shape.Point) [][]float64 {
	out := make([][]float64, 0, len(pts))
	for _, p := range pts {
		out = append(out, e.point(p))
	}
	return out
}
