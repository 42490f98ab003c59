package geoson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/woozymasta/geoson/frame"
)

var testDatum = frame.Datum{Lat: 52.0, Lon: 5.0, Alt: 0.0}

// collectionJSON builds a FeatureCollection document around the test datum.
func collectionJSON(crs string, features ...string) []byte {
	return []byte(`{"type":"FeatureCollection",` +
		`"properties":{"crs":"` + crs + `","datum":[52.0,5.0,0.0],"heading":45.0},` +
		`"features":[` + strings.Join(features, ",") + `]}`)
}

func featureJSON(geometry, properties string) string {
	return `{"type":"Feature","geometry":` + geometry + `,"properties":` + properties + `}`
}

func mustParse(t *testing.T, c Codec, data []byte) *FeatureCollection {
	t.Helper()
	fc, err := c.Parse(data)
	require.NoError(t, err)
	return fc
}

func node(raw string) gjson.Result {
	return gjson.Parse(raw)
}
