package processor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoson"
)

func TestEncode(t *testing.T) {
	codec := geoson.NewCodec()
	fc, err := codec.Parse([]byte(geodeticDoc))
	require.NoError(t, err)

	data, ct, err := Encode(codec, fc, geoson.Local, "")
	require.NoError(t, err)
	require.Equal(t, ContentGeoJSON, ct)
	require.Equal(t, "ENU", gjson.GetBytes(data, "properties.crs").String())

	data, ct, err = Encode(codec, fc, geoson.Local, FormatStandard)
	require.NoError(t, err)
	require.Equal(t, ContentGeoJSON, ct)
	require.False(t, gjson.GetBytes(data, "properties.crs").Exists())
	require.InDelta(t, 5.001, gjson.GetBytes(data, "features.0.geometry.coordinates.0").Float(), 1e-9)

	data, ct, err = Encode(codec, fc, geoson.Geodetic, FormatYAML)
	require.NoError(t, err)
	require.Equal(t, ContentYAML, ct)

	var doc struct {
		Properties struct {
			CRS   string     `yaml:"crs"`
			Datum [3]float64 `yaml:"datum"`
		} `yaml:"properties"`
		Features []map[string]interface{} `yaml:"features"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Equal(t, "EPSG:4326", doc.Properties.CRS)
	require.Equal(t, [3]float64{52, 5, 0}, doc.Properties.Datum)
	require.Len(t, doc.Features, 3)

	data, ct, err = Encode(codec, fc, geoson.Geodetic, FormatSummary)
	require.NoError(t, err)
	require.Equal(t, ContentText, ct)
	require.Contains(t, string(data), "features=3")

	_, _, err = Encode(codec, fc, geoson.Geodetic, "kml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
