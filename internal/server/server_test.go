package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/internal/config"
)

const localDoc = `{
	"type": "FeatureCollection",
	"properties": {"crs": "ENU", "datum": [52.0, 5.0, 0.0], "heading": 90, "farm": "north"},
	"features": [
		{"type": "Feature", "id": "s1", "geometry": {"type": "Point", "coordinates": [10, 20, 0]}, "properties": {"kind": "stake"}},
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0,0],[100,0],[100,100],[0,0]]]}, "properties": {}}
	]
}`

func newTestServer(t *testing.T) (*ServerContext, http.Handler) {
	t.Helper()
	dir := t.TempDir()

	converted := filepath.Join(dir, "field.geojson")
	require.NoError(t, os.WriteFile(converted, []byte(localDoc), 0o644))

	source := filepath.Join(dir, "rows-source.geojson")
	require.NoError(t, os.WriteFile(source, []byte(localDoc), 0o644))

	broken := filepath.Join(dir, "broken.geojson")
	require.NoError(t, os.WriteFile(broken, []byte(`{"type":"FeatureCollection"}`), 0o644))

	cfg := &config.Config{Documents: []config.Document{
		{Name: "field", Input: filepath.Join(dir, "absent.geojson"), Output: converted},
		{Name: "rows", Input: source, Output: filepath.Join(dir, "rows.geojson")},
		{Name: "broken", Input: broken, Output: broken},
		{Name: "ghost", Input: filepath.Join(dir, "ghost.geojson")},
	}}

	s := NewServerContext(cfg, geoson.NewCodec())
	return s, s.Routes()
}

func get(t *testing.T, h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServerContext(t *testing.T) {
	s, _ := newTestServer(t)

	require.Equal(t, []string{"broken", "field", "rows"}, s.Names)
	require.Contains(t, s.Paths["rows"], "rows-source.geojson")
	require.NotContains(t, s.Paths, "ghost")
}

func TestHandleCollectionsList(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/api/collections", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list []CollectionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)

	require.Equal(t, "broken", list[0].Name)
	require.Contains(t, list[0].Error, "missing top-level 'properties'")

	require.Equal(t, CollectionInfo{Name: "field", CRS: "ENU", Datum: []float64{52, 5, 0}, Features: 2}, list[1])
}

func TestHandleCollectionRaw(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/collections/field", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, localDoc, rec.Body.String())

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = get(t, h, "/collections/field.geojson", map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestHandleCollectionReencode(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/collections/field?crs=EPSG:4326", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "EPSG:4326", gjson.Get(rec.Body.String(), "properties.crs").String())
	require.Equal(t, "north", gjson.Get(rec.Body.String(), "properties.farm").String())
	require.InDelta(t, 5.0, gjson.Get(rec.Body.String(), "features.0.geometry.coordinates.0").Float(), 0.01)

	etag := rec.Header().Get("ETag")
	raw := get(t, h, "/collections/field", nil).Header().Get("ETag")
	require.NotEqual(t, raw, etag)

	rec = get(t, h, "/collections/field?crs=EPSG:4326", map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestHandleCollectionFormats(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/collections/field?format=standard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "FeatureCollection", gjson.Get(rec.Body.String(), "type").String())
	require.False(t, gjson.Get(rec.Body.String(), "properties.crs").Exists())
	require.Equal(t, "s1", gjson.Get(rec.Body.String(), "features.0.id").String())

	rec = get(t, h, "/collections/field?format=yaml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "FeatureCollection", doc["type"])

	rec = get(t, h, "/collections/field?format=summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "FeatureCollection crs=ENU")
	require.Contains(t, rec.Body.String(), "[1] Polygon vertices=4")
}

func TestHandleCollectionErrors(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		target string
		status int
	}{
		{"/collections/ghost", http.StatusNotFound},
		{"/collections/field/extra", http.StatusNotFound},
		{"/collections/field?crs=UTM", http.StatusBadRequest},
		{"/collections/field?format=kml", http.StatusBadRequest},
		{"/collections/broken?crs=ENU", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			require.Equal(t, tt.status, get(t, h, tt.target, nil).Code)
		})
	}
}
