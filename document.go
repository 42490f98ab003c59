package geoson

import (
	"encoding/json"
	"maps"
)

// Document is the serialized form of a FeatureCollection.
type Document struct {
	Type       string             `json:"type" yaml:"type"`
	Properties DocumentProperties `json:"properties" yaml:"properties"`
	Features   []FeatureDoc       `json:"features" yaml:"features"`
}

// DocumentProperties is the collection-level metadata block.
type DocumentProperties struct {
	CRS     string     `json:"crs" yaml:"crs"`
	Datum   [3]float64 `json:"datum" yaml:"datum,flow"` // [lat, lon, alt]
	Heading float64    `json:"heading" yaml:"heading"`

	// Extra is emitted alongside crs, datum and heading.
	Extra map[string]string `json:"-" yaml:",inline"`
}

// MarshalJSON flattens Extra into the properties object.
func (p DocumentProperties) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+3)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["crs"] = p.CRS
	m["datum"] = p.Datum
	m["heading"] = p.Heading

	return json.Marshal(m)
}

// FeatureDoc is the serialized form of a Feature.
type FeatureDoc struct {
	Type       string            `json:"type" yaml:"type"`
	ID         RawID             `json:"id,omitempty" yaml:"id,omitempty"`
	Geometry   GeometryDoc       `json:"geometry" yaml:"geometry"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// GeometryDoc is a GeoJSON geometry object (Point, LineString, Polygon).
type GeometryDoc struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"` // [a, b, c], [][3] or [][][3]
}

// RawID is a feature id kept as literal JSON text.
type RawID string

// MarshalJSON emits the id text unchanged.
func (id RawID) MarshalJSON() ([]byte, error) {
	return []byte(id), nil
}

// MarshalYAML decodes the id so YAML output carries a native value.
func (id RawID) MarshalYAML() (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(id), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func cloneProperties(props map[string]string) map[string]string {
	if props == nil {
		return map[string]string{}
	}
	return maps.Clone(props)
}
