package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	metersEps  = 1e-6
	degreesEps = 1e-9
)

func TestTangentToENU(t *testing.T) {
	d := Datum{Lat: 52.0, Lon: 5.0, Alt: 0.0}

	got := Default.ToENU(d, WGS{Lat: 52.1, Lon: 5.1, Alt: 10.0})

	require.InDelta(t, 6845.843258671739, got.East, metersEps)
	require.InDelta(t, 11119.492664455875, got.North, metersEps)
	require.InDelta(t, 10.0, got.Up, metersEps)
}

func TestTangentDatumIsOrigin(t *testing.T) {
	d := Datum{Lat: -33.9, Lon: 151.2, Alt: 42}

	got := Default.ToENU(d, d.WGS())

	require.Equal(t, ENU{}, got)
}

func TestTangentAntimeridian(t *testing.T) {
	d := Datum{Lat: 0, Lon: 179.95, Alt: 0}

	enu := Default.ToENU(d, WGS{Lat: 0, Lon: -179.95})
	require.InDelta(t, EarthRadiusMeters*0.1*math.Pi/180, enu.East, metersEps)

	back := Default.ToWGS(d, enu)
	require.InDelta(t, -179.95, back.Lon, degreesEps)
}

func TestEllipsoidToENU(t *testing.T) {
	d := Datum{Lat: 52.0, Lon: 5.0, Alt: 0.0}

	got := Ellipsoid{}.ToENU(d, WGS{Lat: 52.1, Lon: 5.1, Alt: 10.0})

	require.InDelta(t, 6852.495, got.East, 1e-3)
	require.InDelta(t, 11131.554, got.North, 1e-3)
	require.InDelta(t, -3.392, got.Up, 1e-3)
}

func TestRoundTrip(t *testing.T) {
	transformers := map[string]Transformer{
		"tangent":   Default,
		"ellipsoid": Ellipsoid{},
	}
	datums := []Datum{
		{Lat: 52.0, Lon: 5.0, Alt: 0.0},
		{Lat: -41.3, Lon: 174.8, Alt: 120.5},
		{Lat: 0.001, Lon: 0.001, Alt: 1.0},
	}
	offsets := []ENU{
		{East: 0, North: 0, Up: 0},
		{East: 1500.25, North: -820.5, Up: 12.75},
		{East: -25000, North: 40000, Up: -300},
	}

	for name, tf := range transformers {
		t.Run(name, func(t *testing.T) {
			for _, d := range datums {
				for _, o := range offsets {
					wgs := tf.ToWGS(d, o)
					back := tf.ToENU(d, wgs)

					require.InDelta(t, o.East, back.East, metersEps)
					require.InDelta(t, o.North, back.North, metersEps)
					require.InDelta(t, o.Up, back.Up, metersEps)

					again := tf.ToWGS(d, back)
					require.InDelta(t, wgs.Lat, again.Lat, degreesEps)
					require.InDelta(t, wgs.Lon, again.Lon, degreesEps)
					require.InDelta(t, wgs.Alt, again.Alt, metersEps)
				}
			}
		})
	}
}

func TestByName(t *testing.T) {
	tf, err := ByName("")
	require.NoError(t, err)
	require.Equal(t, Default, tf)

	tf, err = ByName("ellipsoid")
	require.NoError(t, err)
	require.Equal(t, Ellipsoid{}, tf)

	_, err = ByName("mercator")
	require.ErrorContains(t, err, `"mercator"`)
}

func TestTangentFoldsPastPole(t *testing.T) {
	north := Datum{Lat: 90, Lon: 0}
	got := Default.ToWGS(north, ENU{East: 5, North: 5})

	require.LessOrEqual(t, got.Lat, 90.0)
	require.InDelta(t, 90-4.49660803e-5, got.Lat, 1e-9)

	south := Datum{Lat: -90, Lon: 10}
	got = Default.ToWGS(south, ENU{North: -5})

	require.GreaterOrEqual(t, got.Lat, -90.0)
	require.InDelta(t, -90+4.49660803e-5, got.Lat, 1e-9)
	require.InDelta(t, -170.0, got.Lon, 1e-9)

	got = Default.ToWGS(Datum{Lat: 52, Lon: 5}, ENU{North: 1000})
	require.InDelta(t, 5.0, got.Lon, 1e-12)
}
