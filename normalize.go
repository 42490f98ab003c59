package geoson

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Normalize rewrites any GeoJSON value into FeatureCollection shape.
//
// A FeatureCollection is returned as is. A Feature becomes the only member
// of a new collection's features. Anything else is taken as a bare geometry
// and wrapped into a Feature with empty properties first. Collection-level
// properties are never synthesized.
func Normalize(doc gjson.Result) (gjson.Result, error) {
	typ := doc.Get("type")
	if !doc.IsObject() || typ.Type != gjson.String {
		return gjson.Result{}, errors.WithStack(ErrStructure)
	}

	switch typ.String() {
	case typeFeatureCollection:
		return doc, nil
	case typeFeature:
		return gjson.Parse(`{"type":"FeatureCollection","features":[` + doc.Raw + `]}`), nil
	}

	return gjson.Parse(`{"type":"FeatureCollection","features":[` +
		`{"type":"Feature","geometry":` + doc.Raw + `,"properties":{}}]}`), nil
}
