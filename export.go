package geoson

import (
	"encoding/json"
	"fmt"

	geojson "github.com/paulmach/go.geojson"

	"github.com/woozymasta/geoson/shape"
)

// Standard converts fc into a plain RFC 7946 collection: geodetic
// [lon, lat, alt] positions, no crs/datum/heading block. Ids are decoded
// from their JSON text.
func (c Codec) Standard(fc *FeatureCollection) *geojson.FeatureCollection {
	enc := coordinateEncoder{transform: c.Transformer(), datum: fc.Datum, flavor: Geodetic}
	out := geojson.NewFeatureCollection()

	for _, f := range fc.Features {
		var feat *geojson.Feature
		switch g := f.Geometry.(type) {
		case shape.Point:
			feat = geojson.NewPointFeature(enc.point(g))
		case shape.Line:
			feat = geojson.NewLineStringFeature([][]float64{enc.point(g.Start), enc.point(g.End)})
		case shape.Path:
			feat = geojson.NewLineStringFeature(enc.points(g.Points))
		case shape.Polygon:
			feat = geojson.NewPolygonFeature([][][]float64{enc.points(g.Points)})
		default:
			panic(fmt.Sprintf("geoson: unexpected geometry %T", f.Geometry))
		}

		for k, v := range f.Properties {
			feat.SetProperty(k, v)
		}
		if f.ID != "" {
			var id interface{}
			if err := json.Unmarshal([]byte(f.ID), &id); err == nil {
				feat.ID = id
			}
		}

		out.AddFeature(feat)
	}

	return out
}

