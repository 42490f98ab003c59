// Package config handles configuration loading for the geoson tools.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/frame"
)

// Config represents the root configuration file structure.
type Config struct {
	// Datum overrides the datum declared by every input when set.
	Datum []float64 `yaml:"datum,omitempty,flow" json:"datum,omitempty"`

	Transform string     `yaml:"transform,omitempty" json:"transform,omitempty"` // tangent | ellipsoid
	CRS       string     `yaml:"crs,omitempty" json:"crs,omitempty"`             // default output label
	Documents []Document `yaml:"documents" json:"documents"`
	Strict    bool       `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// Document is one collection handled by the tools.
type Document struct {
	Name   string `yaml:"name" json:"name"`
	Input  string `yaml:"input" json:"-"`
	Output string `yaml:"output,omitempty" json:"-"`
	CRS    string `yaml:"crs,omitempty" json:"crs,omitempty"` // output label, falls back to Config.CRS
}

// OutputDir holds converted documents without an explicit output path.
const OutputDir = "collections"

// OutputPath returns the converted file path of the document.
func (d Document) OutputPath() string {
	if d.Output != "" {
		return d.Output
	}
	return filepath.Join(OutputDir, d.Name+".geojson")
}

// Load reads, parses and validates the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes and validates configuration text.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks transform, datum, crs labels and document entries.
func (c *Config) Validate() error {
	if _, err := frame.ByName(c.Transform); err != nil {
		return err
	}

	if c.Datum != nil && len(c.Datum) != 3 {
		return errors.Errorf("datum must have exactly 3 numbers [lat, lon, alt], got %d", len(c.Datum))
	}

	if c.CRS != "" {
		if _, err := geoson.ResolveCRS(c.CRS); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(c.Documents))
	for i, doc := range c.Documents {
		if doc.Name == "" {
			return errors.Errorf("document %d has no name", i)
		}
		if _, ok := seen[doc.Name]; ok {
			return errors.Errorf("duplicate document name %q", doc.Name)
		}
		seen[doc.Name] = struct{}{}

		if doc.Input == "" {
			return errors.Errorf("document %q has no input", doc.Name)
		}
		if doc.CRS != "" {
			if _, err := geoson.ResolveCRS(doc.CRS); err != nil {
				return errors.WithMessagef(err, "document %q", doc.Name)
			}
		}
	}

	return nil
}

// Codec builds the codec described by the configuration.
func (c *Config) Codec() (geoson.Codec, error) {
	t, err := frame.ByName(c.Transform)
	if err != nil {
		return geoson.Codec{}, err
	}

	codec := geoson.NewCodec().WithTransformer(t).WithStrict(c.Strict)
	if c.Datum != nil {
		d := c.Datum
		codec = codec.WithDatum(frame.Datum{Lat: d[0], Lon: d[1], Alt: d[2]})
	}

	return codec, nil
}

// OutputFlavor returns the flavor doc is written in. ok is false when neither
// the document nor the config names one and the declared flavor is kept.
func (c *Config) OutputFlavor(doc Document) (f geoson.Flavor, ok bool) {
	label := doc.CRS
	if label == "" {
		label = c.CRS
	}
	if label == "" {
		return 0, false
	}

	f, err := geoson.ResolveCRS(label)
	return f, err == nil
}

// Document returns the document named name.
func (c *Config) Document(name string) (Document, bool) {
	for _, doc := range c.Documents {
		if doc.Name == name {
			return doc, true
		}
	}
	return Document{}, false
}
