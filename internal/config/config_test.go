package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/frame"
)

const sample = `
transform: ellipsoid
strict: true
datum: [52.0, 5.0, 1.5]
crs: EPSG:4326
documents:
  - name: field
    input: data/field.geojson
    output: out/field.geojson
    crs: ENU
  - name: rows
    input: data/rows.geojson
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "ellipsoid", cfg.Transform)
	require.True(t, cfg.Strict)
	require.Equal(t, []float64{52.0, 5.0, 1.5}, cfg.Datum)
	require.Len(t, cfg.Documents, 2)
	require.Equal(t, Document{Name: "field", Input: "data/field.geojson", Output: "out/field.geojson", CRS: "ENU"}, cfg.Documents[0])

	codec, err := cfg.Codec()
	require.NoError(t, err)
	require.True(t, codec.Strict())
	require.Equal(t, frame.Ellipsoid{}, codec.Transformer())

	f, ok := cfg.OutputFlavor(cfg.Documents[0])
	require.True(t, ok)
	require.Equal(t, geoson.Local, f)

	f, ok = cfg.OutputFlavor(cfg.Documents[1])
	require.True(t, ok)
	require.Equal(t, geoson.Geodetic, f)

	require.Equal(t, "out/field.geojson", cfg.Documents[0].OutputPath())
	require.Equal(t, filepath.Join("collections", "rows.geojson"), cfg.Documents[1].OutputPath())

	doc, ok := cfg.Document("rows")
	require.True(t, ok)
	require.Equal(t, "data/rows.geojson", doc.Input)
	_, ok = cfg.Document("absent")
	require.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("documents:\n  - name: a\n    input: a.geojson\n"))
	require.NoError(t, err)

	codec, err := cfg.Codec()
	require.NoError(t, err)
	require.False(t, codec.Strict())
	require.Equal(t, frame.Default, codec.Transformer())

	_, ok := cfg.OutputFlavor(cfg.Documents[0])
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown transform", "transform: mercator\n", `unknown transform "mercator"`},
		{"short datum", "datum: [52, 5]\n", "datum must have exactly 3 numbers"},
		{"unknown crs", "crs: EPSG:3857\n", "unknown CRS string: EPSG:3857"},
		{"unnamed document", "documents:\n  - input: a.geojson\n", "document 0 has no name"},
		{"duplicate document", "documents:\n  - {name: a, input: a.geojson}\n  - {name: a, input: b.geojson}\n", `duplicate document name "a"`},
		{"missing input", "documents:\n  - name: a\n", `document "a" has no input`},
		{"document crs", "documents:\n  - {name: a, input: a.geojson, crs: UTM}\n", `document "a": unknown CRS string: UTM`},
		{"bad yaml", "documents: [", "decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
