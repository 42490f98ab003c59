// Package processor converts configured documents between coordinate flavors.
package processor

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/internal/config"
)

// Result describes one processed document.
type Result struct {
	Err      error
	Name     string
	Output   string
	CRS      string
	Features int
	Skipped  bool
}

// ProcessDocument reads doc, converts it to its configured output flavor and
// writes it. An existing output is left alone unless force is set.
// Inputs starting with http are downloaded with client.
func ProcessDocument(client *http.Client, codec geoson.Codec, cfg *config.Config, doc config.Document, force bool) Result {
	res := Result{Name: doc.Name, Output: doc.OutputPath()}

	// Check if file exists
	if _, err := os.Stat(res.Output); err == nil && !force {
		log.Debug().Str("document", doc.Name).Str("path", res.Output).Msg("Output exists, skipping")
		res.Skipped = true
		return res
	}

	fc, err := load(client, codec, doc.Input)
	if err != nil {
		res.Err = errors.WithMessagef(err, "document %s", doc.Name)
		return res
	}

	flavor, ok := cfg.OutputFlavor(doc)
	if !ok {
		flavor = fc.Flavor
	}

	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Err = errors.Wrapf(err, "document %s", doc.Name)
		return res
	}

	if err := codec.WriteAs(fc, res.Output, flavor); err != nil {
		res.Err = errors.WithMessagef(err, "document %s", doc.Name)
		return res
	}

	res.CRS = flavor.Label()
	res.Features = len(fc.Features)

	log.Info().
		Str("document", doc.Name).
		Str("from", fc.Flavor.Label()).
		Str("to", res.CRS).
		Int("features", res.Features).
		Msg("Document converted")

	return res
}

func load(client *http.Client, codec geoson.Codec, source string) (*geoson.FeatureCollection, error) {
	if !strings.HasPrefix(source, "http") {
		return codec.Read(source)
	}

	if client == nil {
		client = http.DefaultClient
	}

	log.Info().Str("url", source).Msg("Downloading document")
	resp, err := client.Get(source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("download failed: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return codec.Parse(data)
}
