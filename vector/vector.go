// Package vector models a field: one boundary polygon plus the elements
// placed on it (stakes, rows, obstacles), stored as a geoson feature
// collection.
//
// The boundary is written as the first feature with property type=field.
// Every other feature is an Element classified by its own type property.
package vector

import (
	"iter"
	"maps"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/frame"
	"github.com/woozymasta/geoson/shape"
)

const (
	// TypeKey is the property holding an element type.
	TypeKey = "type"
	// FieldType marks the boundary feature.
	FieldType = "field"
	// UnknownType is assigned to loaded features without a type property.
	UnknownType = "unknown"
)

// Default element types used by the Add helpers.
const (
	TypePoint   = "point"
	TypeLine    = "line"
	TypePath    = "path"
	TypePolygon = "polygon"
)

var (
	ErrNoFeatures   = errors.New("no features found in file")
	ErrNoBoundary   = errors.New("no polygon found to use as field boundary")
	ErrElementIndex = errors.New("element index out of range")
)

// Element is one geometry placed on the field.
type Element struct {
	Geometry   shape.Geometry
	Properties map[string]string
	Type       string
}

// Vector is a field boundary with its elements. Use New or FromFile.
type Vector struct {
	boundary        shape.Polygon
	fieldProperties map[string]string
	elements        []Element

	datum   frame.Datum
	heading frame.Euler
	flavor  geoson.Flavor

	globalProperties map[string]string
}

// New returns an empty field around boundary.
func New(boundary shape.Polygon, datum frame.Datum, heading frame.Euler, flavor geoson.Flavor) *Vector {
	return &Vector{
		boundary:         boundary,
		fieldProperties:  map[string]string{},
		datum:            datum,
		heading:          heading,
		flavor:           flavor,
		globalProperties: map[string]string{},
	}
}

// FromFile reads a field document with codec.
//
// The boundary is the first Polygon whose type property is "field", or the
// first Polygon at all. Every feature not explicitly typed "field" becomes
// an element, so an untyped boundary also appears among the elements.
func FromFile(codec geoson.Codec, path string) (*Vector, error) {
	fc, err := codec.Read(path)
	if err != nil {
		return nil, err
	}
	return FromCollection(fc)
}

// FromCollection builds a Vector from an already parsed collection.
func FromCollection(fc *geoson.FeatureCollection) (*Vector, error) {
	if len(fc.Features) == 0 {
		return nil, errors.WithStack(ErrNoFeatures)
	}

	field, ok := findBoundary(fc.Features, true)
	if !ok {
		field, ok = findBoundary(fc.Features, false)
	}
	if !ok {
		return nil, errors.WithStack(ErrNoBoundary)
	}

	v := New(field.Geometry.(shape.Polygon), fc.Datum, fc.Heading, fc.Flavor)
	if field.Properties != nil {
		v.fieldProperties = maps.Clone(field.Properties)
	}
	if fc.Properties != nil {
		v.globalProperties = maps.Clone(fc.Properties)
	}

	for _, f := range fc.Features {
		typ, ok := f.Properties[TypeKey]
		if ok && typ == FieldType {
			continue
		}
		if !ok {
			typ = UnknownType
		}
		v.elements = append(v.elements, Element{
			Geometry:   f.Geometry,
			Properties: maps.Clone(f.Properties),
			Type:       typ,
		})
	}

	log.Debug().
		Int("elements", len(v.elements)).
		Int("boundary_vertices", len(v.boundary.Points)).
		Msg("Field loaded")

	return v, nil
}

func findBoundary(features []geoson.Feature, explicit bool) (geoson.Feature, bool) {
	for _, f := range features {
		if _, ok := f.Geometry.(shape.Polygon); !ok {
			continue
		}
		if !explicit || f.Properties[TypeKey] == FieldType {
			return f, true
		}
	}
	return geoson.Feature{}, false
}

// Collection returns the field as a feature collection: boundary first,
// tagged type=field, then the elements in order.
func (v *Vector) Collection() *geoson.FeatureCollection {
	fieldProps := maps.Clone(v.fieldProperties)
	if fieldProps == nil {
		fieldProps = map[string]string{}
	}
	fieldProps[TypeKey] = FieldType

	fc := &geoson.FeatureCollection{
		Flavor:     v.flavor,
		Datum:      v.datum,
		Heading:    v.heading,
		Properties: maps.Clone(v.globalProperties),
		Features:   make([]geoson.Feature, 0, len(v.elements)+1),
	}
	fc.Features = append(fc.Features, geoson.Feature{Geometry: v.boundary, Properties: fieldProps})
	for _, e := range v.elements {
		fc.Features = append(fc.Features, geoson.Feature{Geometry: e.Geometry, Properties: maps.Clone(e.Properties)})
	}

	return fc
}

// ToFile writes the field to path in the given flavor.
func (v *Vector) ToFile(codec geoson.Codec, path string, flavor geoson.Flavor) error {
	return codec.WriteAs(v.Collection(), path, flavor)
}

// Boundary returns the field boundary.
func (v *Vector) Boundary() shape.Polygon { return v.boundary }

// SetBoundary replaces the field boundary.
func (v *Vector) SetBoundary(p shape.Polygon) { v.boundary = p }

// FieldProperties returns a copy of the boundary properties.
func (v *Vector) FieldProperties() map[string]string { return maps.Clone(v.fieldProperties) }

func (v *Vector) SetFieldProperty(key, value string) { v.fieldProperties[key] = value }
func (v *Vector) RemoveFieldProperty(key string)     { delete(v.fieldProperties, key) }

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.elements) }

// ClearElements removes every element.
func (v *Vector) ClearElements() { v.elements = nil }

// Element returns the element at index i.
func (v *Vector) Element(i int) (Element, error) {
	if i < 0 || i >= len(v.elements) {
		return Element{}, errors.Wrapf(ErrElementIndex, "index %d of %d", i, len(v.elements))
	}
	return v.elements[i], nil
}

// SetElement replaces the element at index i.
func (v *Vector) SetElement(i int, e Element) error {
	if i < 0 || i >= len(v.elements) {
		return errors.Wrapf(ErrElementIndex, "index %d of %d", i, len(v.elements))
	}
	v.elements[i] = e
	return nil
}

// RemoveElement deletes the element at index i. Out of range is a no-op.
func (v *Vector) RemoveElement(i int) {
	if i < 0 || i >= len(v.elements) {
		return
	}
	v.elements = append(v.elements[:i], v.elements[i+1:]...)
}

// AddElement appends g. A non-empty typ is also stored as the type property.
func (v *Vector) AddElement(g shape.Geometry, typ string, properties map[string]string) {
	props := maps.Clone(properties)
	if props == nil {
		props = map[string]string{}
	}
	if typ != "" {
		props[TypeKey] = typ
	}
	v.elements = append(v.elements, Element{Geometry: g, Properties: props, Type: typ})
}

func (v *Vector) AddPoint(p shape.Point, properties map[string]string) {
	v.AddElement(p, TypePoint, properties)
}

func (v *Vector) AddLine(l shape.Line, properties map[string]string) {
	v.AddElement(l, TypeLine, properties)
}

func (v *Vector) AddPath(p shape.Path, properties map[string]string) {
	v.AddElement(p, TypePath, properties)
}

func (v *Vector) AddPolygon(p shape.Polygon, properties map[string]string) {
	v.AddElement(p, TypePolygon, properties)
}

// All iterates over the elements in order.
func (v *Vector) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, e := range v.elements {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Filter returns the elements for which keep reports true.
func (v *Vector) Filter(keep func(Element) bool) []Element {
	var out []Element
	for _, e := range v.elements {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ElementsByType returns the elements whose Type equals typ.
func (v *Vector) ElementsByType(typ string) []Element {
	return v.Filter(func(e Element) bool { return e.Type == typ })
}

// ElementsByKind returns the elements holding geometries of kind k.
func (v *Vector) ElementsByKind(k shape.Kind) []Element {
	return v.Filter(func(e Element) bool { return e.Geometry.Kind() == k })
}

func (v *Vector) Points() []Element   { return v.ElementsByKind(shape.KindPoint) }
func (v *Vector) Lines() []Element    { return v.ElementsByKind(shape.KindLine) }
func (v *Vector) Paths() []Element    { return v.ElementsByKind(shape.KindPath) }
func (v *Vector) Polygons() []Element { return v.ElementsByKind(shape.KindPolygon) }

// FilterByProperty returns the elements whose property key equals value.
func (v *Vector) FilterByProperty(key, value string) []Element {
	return v.Filter(func(e Element) bool {
		got, ok := e.Properties[key]
		return ok && got == value
	})
}

func (v *Vector) Datum() frame.Datum        { return v.datum }
func (v *Vector) SetDatum(d frame.Datum)    { v.datum = d }
func (v *Vector) Heading() frame.Euler      { return v.heading }
func (v *Vector) SetHeading(h frame.Euler)  { v.heading = h }
func (v *Vector) Flavor() geoson.Flavor     { return v.flavor }
func (v *Vector) SetFlavor(f geoson.Flavor) { v.flavor = f }

// GlobalProperty returns the collection-level property key, or def when unset.
func (v *Vector) GlobalProperty(key, def string) string {
	if value, ok := v.globalProperties[key]; ok {
		return value
	}
	return def
}

// GlobalProperties returns a copy of the collection-level properties.
func (v *Vector) GlobalProperties() map[string]string { return maps.Clone(v.globalProperties) }

func (v *Vector) SetGlobalProperty(key, value string) { v.globalProperties[key] = value }
func (v *Vector) RemoveGlobalProperty(key string)     { delete(v.globalProperties, key) }

// Area returns the boundary area in square meters.
func (v *Vector) Area() float64 { return v.boundary.Area() }
