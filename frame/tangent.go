package frame

import (
	"math"

	"github.com/golang/geo/s1"
)

// EarthRadiusMeters is the radius of the earth in meters (in a spherical earth model).
const EarthRadiusMeters = 1000 * 6371

// Tangent is the small-angle local tangent plane approximation on a sphere.
//
// East is the longitude offset scaled by the parallel radius at the datum
// latitude, North is the latitude offset scaled by Radius and Up is the
// altitude difference. The inverse is exact, so a round trip only loses
// floating point precision. The approximation breaks down close to the
// poles, where the east scale goes to zero.
type Tangent struct {
	Radius float64
}

// ToENU converts a geodetic coordinate to the datum's local frame.
func (t Tangent) ToENU(d Datum, p WGS) ENU {
	r := t.radius()
	dLat := degrees(p.Lat - d.Lat)
	dLon := degrees(p.Lon - d.Lon).Normalized()

	return ENU{
		East:  r * dLon.Radians() * math.Cos(degrees(d.Lat).Radians()),
		North: r * dLat.Radians(),
		Up:    p.Alt - d.Alt,
	}
}

// ToWGS converts a local coordinate back to geodetic.
func (t Tangent) ToWGS(d Datum, p ENU) WGS {
	r := t.radius()
	dLat := s1.Angle(p.North / r)
	dLon := s1.Angle(p.East / (r * math.Cos(degrees(d.Lat).Radians())))

	lat, lon := foldPole(d.Lat+dLat.Degrees(), degrees(d.Lon)+dLon)

	return WGS{
		Lat: lat,
		Lon: lon.Normalized().Degrees(),
		Alt: d.Alt + p.Up,
	}
}

// foldPole brings a latitude past a pole back into [-90, 90], moving the
// longitude to the opposite meridian. Near the poles the tangent plane
// itself degrades, the fold only keeps the output a valid position.
func foldPole(lat float64, lon s1.Angle) (float64, s1.Angle) {
	switch {
	case lat > 90:
		return 180 - lat, lon + s1.Angle(math.Pi)
	case lat < -90:
		return -180 - lat, lon + s1.Angle(math.Pi)
	}
	return lat, lon
}

func (t Tangent) radius() float64 {
	if t.Radius <= 0 {
		return EarthRadiusMeters
	}
	return t.Radius
}

func degrees(v float64) s1.Angle {
	return s1.Angle(v) * s1.Degree
}
