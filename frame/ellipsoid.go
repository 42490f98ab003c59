package frame

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// WGS84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0
	wgs84F  = 1 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)
)

// ecefIterations bounds the latitude fixed-point iteration in toGeodetic.
// Four rounds already reach sub-millimeter accuracy near the surface.
const ecefIterations = 8

// Ellipsoid is the exact topocentric east/north/up frame on the WGS84
// ellipsoid, computed through Earth-centered Earth-fixed coordinates.
type Ellipsoid struct{}

// ToENU converts a geodetic coordinate to the datum's local frame.
func (Ellipsoid) ToENU(d Datum, p WGS) ENU {
	origin := toECEF(d.WGS())
	delta := toECEF(p).Sub(origin)
	e, n, u := enuBasis(d)

	return ENU{East: delta.Dot(e), North: delta.Dot(n), Up: delta.Dot(u)}
}

// ToWGS converts a local coordinate back to geodetic.
func (Ellipsoid) ToWGS(d Datum, p ENU) WGS {
	e, n, u := enuBasis(d)
	pos := toECEF(d.WGS()).
		Add(e.Mul(p.East)).
		Add(n.Mul(p.North)).
		Add(u.Mul(p.Up))

	return toGeodetic(pos)
}

// enuBasis returns the east, north and up unit vectors at the datum in ECEF.
func enuBasis(d Datum) (e, n, u r3.Vector) {
	sinLat, cosLat := math.Sincos(degrees(d.Lat).Radians())
	sinLon, cosLon := math.Sincos(degrees(d.Lon).Radians())

	e = r3.Vector{X: -sinLon, Y: cosLon, Z: 0}
	n = r3.Vector{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	u = r3.Vector{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
	return e, n, u
}

func toECEF(p WGS) r3.Vector {
	sinLat, cosLat := math.Sincos(degrees(p.Lat).Radians())
	sinLon, cosLon := math.Sincos(degrees(p.Lon).Radians())
	nu := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return r3.Vector{
		X: (nu + p.Alt) * cosLat * cosLon,
		Y: (nu + p.Alt) * cosLat * sinLon,
		Z: (nu*(1-wgs84E2) + p.Alt) * sinLat,
	}
}

func toGeodetic(v r3.Vector) WGS {
	lon := math.Atan2(v.Y, v.X)
	p := math.Hypot(v.X, v.Y)

	lat := math.Atan2(v.Z, p*(1-wgs84E2))
	var h float64
	for i := 0; i < ecefIterations; i++ {
		sinLat, cosLat := math.Sincos(lat)
		nu := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
		h = p*cosLat + v.Z*sinLat - wgs84A*wgs84A/nu
		lat = math.Atan2(v.Z, p*(1-wgs84E2*nu/(nu+h)))
	}

	sinLat, cosLat := math.Sincos(lat)
	nu := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
	h = p*cosLat + v.Z*sinLat - wgs84A*wgs84A/nu

	return WGS{
		Lat: s1.Angle(lat).Degrees(),
		Lon: s1.Angle(lon).Degrees(),
		Alt: h,
	}
}
