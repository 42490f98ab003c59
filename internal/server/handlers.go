// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/internal/processor"
)

const etagCap = 64

const contentJSON = "application/json"

// CollectionInfo is one entry of the collection list.
type CollectionInfo struct {
	Name     string    `json:"name"`
	CRS      string    `json:"crs,omitempty"`
	Error    string    `json:"error,omitempty"`
	Datum    []float64 `json:"datum,omitempty"`
	Features int       `json:"features"`
}

// HandleCollectionsList serves a JSON summary of every available collection.
func (s *ServerContext) HandleCollectionsList(w http.ResponseWriter, r *http.Request) {
	list := make([]CollectionInfo, 0, len(s.Names))
	for _, name := range s.Names {
		info := CollectionInfo{Name: name}

		fc, err := s.Codec.Read(s.Paths[name])
		if err != nil {
			info.Error = err.Error()
		} else {
			info.CRS = fc.Flavor.Label()
			info.Datum = []float64{fc.Datum.Lat, fc.Datum.Lon, fc.Datum.Alt}
			info.Features = len(fc.Features)
		}

		list = append(list, info)
	}

	w.Header().Set("Content-Type", contentJSON)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(list)
}

// HandleCollection serves one collection: /collections/{name}[.geojson].
//
// Without query parameters the stored file is served as is. crs re-encodes
// it under another CRS label; format selects geojson (default), standard
// (plain RFC 7946), yaml or summary.
func (s *ServerContext) HandleCollection(w http.ResponseWriter, r *http.Request) {
	// Path: /collections/{name}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "collections" {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimSuffix(parts[1], ".geojson")
	path, ok := s.Paths[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	label, format := query.Get("crs"), query.Get("format")

	if label == "" && (format == "" || format == "geojson") {
		if !s.serveFile(w, r, path, processor.ContentGeoJSON) {
			http.NotFound(w, r)
		}
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	etag := fileETag(info, label+"/"+format)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	fc, err := s.Codec.Read(path)
	if err != nil {
		log.Error().Err(err).Str("collection", name).Msg("Failed to read collection")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	flavor := fc.Flavor
	if label != "" {
		if flavor, err = geoson.ResolveCRS(label); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	body, contentType, err := processor.Encode(s.Codec, fc, flavor, format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, processor.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	etag := fileETag(info, "")

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}

// fileETag derives a validator from size and mtime. A non-empty variant
// tells apart re-encodings of the same file.
func fileETag(info os.FileInfo, variant string) string {
	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	if variant != "" {
		h := fnv.New32a()
		_, _ = h.Write([]byte(variant))
		buf = append(buf, '-')
		buf = strconv.AppendUint(buf, uint64(h.Sum32()), 16)
	}
	buf = append(buf, '"')
	return string(buf)
}
