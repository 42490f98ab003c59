// Package shape holds the closed set of local-frame geometries:
// Point, Line, Path and Polygon.
//
// Every coordinate is east/north/up meters relative to the owning
// collection's datum. Geodetic values are derived on demand through a
// frame.Transformer and never stored.
package shape

import "fmt"

// Kind identifies a geometry variant.
type Kind int

// Geometry kinds.
const (
	KindPoint Kind = iota
	KindLine
	KindPath
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLine:
		return "Line"
	case KindPath:
		return "Path"
	case KindPolygon:
		return "Polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Geometry is implemented only by Point, Line, Path and Polygon.
// Switch on the concrete type to handle every variant.
type Geometry interface {
	Kind() Kind
	// Vertices returns the constituent points in order.
	Vertices() []Point
	isGeometry()
}

// Point is a single local-frame coordinate in meters.
type Point struct {
	X float64 `json:"x" yaml:"x"` // east
	Y float64 `json:"y" yaml:"y"` // north
	Z float64 `json:"z" yaml:"z"` // up
}

// Line is an ordered pair of points.
type Line struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// Path is an open polyline, normally of three or more points.
type Path struct {
	Points []Point `json:"points" yaml:"points"`
}

// Polygon is a single ring. By convention the first point equals the last,
// this is not enforced.
type Polygon struct {
	Points []Point `json:"points" yaml:"points"`
}

func (Point) Kind() Kind   { return KindPoint }
func (Line) Kind() Kind    { return KindLine }
func (Path) Kind() Kind    { return KindPath }
func (Polygon) Kind() Kind { return KindPolygon }

func (p Point) Vertices() []Point   { return []Point{p} }
func (l Line) Vertices() []Point    { return []Point{l.Start, l.End} }
func (p Path) Vertices() []Point    { return p.Points }
func (p Polygon) Vertices() []Point { return p.Points }

func (Point) isGeometry()   {}
func (Line) isGeometry()    {}
func (Path) isGeometry()    {}
func (Polygon) isGeometry() {}

// Map returns a copy of g with fn applied to every vertex.
// The variant and vertex order are preserved.
func Map(g Geometry, fn func(Point) Point) Geometry {
	switch v := g.(type) {
	case Point:
		return fn(v)
	case Line:
		return Line{Start: fn(v.Start), End: fn(v.End)}
	case Path:
		return Path{Points: mapPoints(v.Points, fn)}
	case Polygon:
		return Polygon{Points: mapPoints(v.Points, fn)}
	}
	panic(fmt.Sprintf("shape: unexpected geometry %T", g))
}

func mapPoints(pts []Point, fn func(Point) Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = fn(p)
	}
	return out
}
