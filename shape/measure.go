package shape

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Geom converts g to its go-geom counterpart with an XYZ layout.
// Path and Line become *geom.LineString, Polygon a single-ring *geom.Polygon.
func Geom(g Geometry) geom.T {
	switch v := g.(type) {
	case Point:
		return geom.NewPointFlat(geom.XYZ, flat(v))
	case Line:
		return geom.NewLineStringFlat(geom.XYZ, flat(v.Start, v.End))
	case Path:
		return geom.NewLineStringFlat(geom.XYZ, flat(v.Points...))
	case Polygon:
		coords := flat(v.Points...)
		return geom.NewPolygonFlat(geom.XYZ, coords, []int{len(coords)})
	}
	panic(fmt.Sprintf("shape: unexpected geometry %T", g))
}

// Bounds returns the 3D bounding box of g.
func Bounds(g Geometry) *geom.Bounds {
	return Geom(g).Bounds()
}

// Length returns the planar length of the line in meters.
func (l Line) Length() float64 {
	return Geom(l).(*geom.LineString).Length()
}

// Length returns the planar length of the path in meters.
func (p Path) Length() float64 {
	return Geom(p).(*geom.LineString).Length()
}

// Area returns the planar area enclosed by the ring in square meters.
func (p Polygon) Area() float64 {
	return Geom(p).(*geom.Polygon).Area()
}

// Perimeter returns the planar length of the ring in meters.
// An open ring is measured without the closing edge.
func (p Polygon) Perimeter() float64 {
	return Geom(p).(*geom.Polygon).Length()
}

// Closed reports whether the first and last vertices coincide.
func (p Polygon) Closed() bool {
	n := len(p.Points)
	return n > 0 && p.Points[0] == p.Points[n-1]
}

func flat(pts ...Point) []float64 {
	out := make([]float64, 0, 3*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
