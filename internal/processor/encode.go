package processor

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoson"
)

// Output formats.
const (
	FormatGeoJSON  = "geojson"
	FormatStandard = "standard"
	FormatYAML     = "yaml"
	FormatSummary  = "summary"
)

// Content types of the output formats.
const (
	ContentGeoJSON = "application/geo+json"
	ContentYAML    = "application/yaml"
	ContentText    = "text/plain; charset=utf-8"
)

var ErrUnknownFormat = errors.New("unknown format, expected geojson, standard, yaml or summary")

// Encode renders fc in format and returns the matching content type.
// geojson (or empty) is the native document in flavor, standard is plain
// RFC 7946 without the crs block, yaml is the native document as YAML and
// summary the human readable listing.
func Encode(codec geoson.Codec, fc *geoson.FeatureCollection, flavor geoson.Flavor, format string) ([]byte, string, error) {
	switch format {
	case "", FormatGeoJSON:
		data, err := codec.Marshal(fc, flavor)
		return data, ContentGeoJSON, err

	case FormatStandard:
		data, err := codec.Standard(fc).MarshalJSON()
		if err != nil {
			return nil, "", errors.Wrap(err, "marshal standard geojson")
		}
		return append(data, '\n'), ContentGeoJSON, nil

	case FormatYAML:
		data, err := yaml.Marshal(codec.ToJSON(fc, flavor))
		if err != nil {
			return nil, "", errors.Wrap(err, "marshal yaml")
		}
		return data, ContentYAML, nil

	case FormatSummary:
		var buf bytes.Buffer
		err := fc.Fprint(&buf)
		return buf.Bytes(), ContentText, err
	}

	return nil, "", errors.Wrapf(ErrUnknownFormat, "%q", format)
}
