// Package frame converts coordinates between the global geodetic frame
// (latitude/longitude/altitude) and a local east/north/up tangent frame
// anchored at a datum.
package frame

import "github.com/pkg/errors"

// Datum is the geodetic reference point anchoring a local frame.
// Lat and Lon are degrees, Alt is meters.
type Datum struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
	Alt float64 `json:"alt" yaml:"alt"`
}

// WGS returns the datum as a geodetic coordinate.
func (d Datum) WGS() WGS {
	return WGS{Lat: d.Lat, Lon: d.Lon, Alt: d.Alt}
}

// Euler is an orientation in degrees. Only Yaw is carried by documents,
// Roll and Pitch stay zero.
type Euler struct {
	Roll  float64 `json:"roll" yaml:"roll"`
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Yaw   float64 `json:"yaw" yaml:"yaw"`
}

// WGS is a geodetic coordinate: degrees latitude, degrees longitude, meters altitude.
type WGS struct {
	Lat, Lon, Alt float64
}

// ENU is a local Cartesian coordinate in meters relative to a datum.
type ENU struct {
	East, North, Up float64
}

// Transformer converts between geodetic and local coordinates around a datum.
// Implementations must be pure and safe for concurrent use.
type Transformer interface {
	ToENU(d Datum, p WGS) ENU
	ToWGS(d Datum, p ENU) WGS
}

// Default is the transform used when none is configured.
var Default Transformer = Tangent{Radius: EarthRadiusMeters}

// ByName returns the transformer registered under name.
// An empty name selects Default.
func ByName(name string) (Transformer, error) {
	switch name {
	case "", "tangent":
		return Default, nil
	case "ellipsoid":
		return Ellipsoid{}, nil
	}

	return nil, errors.Errorf("unknown transform %q", name)
}
