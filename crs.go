package geoson

import "fmt"

// Flavor is the coordinate flavor a document is declared in.
type Flavor int

const (
	// Geodetic tuples are [lon, lat, alt] in degrees and meters.
	Geodetic Flavor = iota
	// Local tuples are [east, north, up] in meters from the datum.
	Local
)

// Labels emitted on write.
const (
	LabelGeodetic = "EPSG:4326"
	LabelLocal    = "ENU"
)

// crsLabels is case-sensitive. ECEF is read as Local: coordinates are
// treated as east/north/up, not as Earth-centered Cartesian.
var crsLabels = map[string]Flavor{
	"EPSG:4326": Geodetic,
	"WGS84":     Geodetic,
	"WGS":       Geodetic,
	"ENU":       Local,
	"ECEF":      Local,
}

// ResolveCRS maps a CRS label to its flavor.
func ResolveCRS(label string) (Flavor, error) {
	if f, ok := crsLabels[label]; ok {
		return f, nil
	}
	return 0, &UnknownCRSError{Label: label}
}

// Label returns the CRS label written for f.
func (f Flavor) Label() string {
	if f == Local {
		return LabelLocal
	}
	return LabelGeodetic
}

func (f Flavor) String() string {
	switch f {
	case Geodetic:
		return "Geodetic"
	case Local:
		return "Local"
	}
	return fmt.Sprintf("Flavor(%d)", int(f))
}

// MarshalText encodes f as its CRS label.
func (f Flavor) MarshalText() ([]byte, error) {
	return []byte(f.Label()), nil
}

// UnmarshalText accepts any recognized CRS label.
func (f *Flavor) UnmarshalText(text []byte) error {
	v, err := ResolveCRS(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
