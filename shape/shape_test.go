package shape

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func square(size float64) Polygon {
	return Polygon{Points: []Point{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
		{X: 0, Y: 0},
	}}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		geom Geometry
		kind Kind
		name string
		n    int
	}{
		{Point{X: 1}, KindPoint, "Point", 1},
		{Line{Start: Point{}, End: Point{X: 1}}, KindLine, "Line", 2},
		{Path{Points: make([]Point, 3)}, KindPath, "Path", 3},
		{square(1), KindPolygon, "Polygon", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.geom.Kind())
			require.Equal(t, tt.name, tt.geom.Kind().String())
			require.Len(t, tt.geom.Vertices(), tt.n)
		})
	}

	require.Equal(t, "Kind(9)", Kind(9).String())
}

func TestMeasures(t *testing.T) {
	poly := square(10)
	require.InDelta(t, 100.0, poly.Area(), 1e-9)
	require.InDelta(t, 40.0, poly.Perimeter(), 1e-9)
	require.True(t, poly.Closed())

	open := Polygon{Points: poly.Points[:4]}
	require.False(t, open.Closed())

	line := Line{Start: Point{X: 0, Y: 0}, End: Point{X: 3, Y: 4}}
	require.InDelta(t, 5.0, line.Length(), 1e-9)

	path := Path{Points: []Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}}}
	require.InDelta(t, 11.0, path.Length(), 1e-9)
}

func TestBounds(t *testing.T) {
	path := Path{Points: []Point{{X: -1, Y: 2, Z: 3}, {X: 4, Y: -5, Z: 6}, {X: 0, Y: 0, Z: -7}}}

	b := Bounds(path)

	require.Equal(t, geom.XYZ, b.Layout())
	require.Equal(t, []float64{-1, -5, -7}, []float64{b.Min(0), b.Min(1), b.Min(2)})
	require.Equal(t, []float64{4, 2, 6}, []float64{b.Max(0), b.Max(1), b.Max(2)})
}

func TestGeom(t *testing.T) {
	g := Geom(Line{Start: Point{X: 1, Y: 2, Z: 3}, End: Point{X: 4, Y: 5, Z: 6}})

	ls, ok := g.(*geom.LineString)
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, ls.FlatCoords())

	poly, ok := Geom(square(2)).(*geom.Polygon)
	require.True(t, ok)
	require.Equal(t, 1, poly.NumLinearRings())
}

func TestMap(t *testing.T) {
	shift := func(p Point) Point { return Point{X: p.X + 1, Y: p.Y, Z: p.Z} }

	orig := Path{Points: []Point{{X: 0}, {X: 1}, {X: 2}}}
	got := Map(orig, shift)

	require.Equal(t, Path{Points: []Point{{X: 1}, {X: 2}, {X: 3}}}, got)
	require.Equal(t, 0.0, orig.Points[0].X, "source must not be mutated")
	require.Equal(t, Line{Start: Point{X: 1}, End: Point{X: 2}}, Map(Line{End: Point{X: 1}}, shift))
}
