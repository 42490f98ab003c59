package geoson

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson/frame"
	"github.com/woozymasta/geoson/shape"
)

// Reanchor moves the local frame to datum d while keeping every feature at
// the same geodetic position: each point is projected out around the
// current datum and back in around d. A nil t uses frame.Default.
//
// Setting fc.Datum directly only changes the anchor of the next write.
func (fc *FeatureCollection) Reanchor(d frame.Datum, t frame.Transformer) {
	if t == nil {
		t = frame.Default
	}

	from := fc.Datum
	move := func(p shape.Point) shape.Point {
		wgs := t.ToWGS(from, frame.ENU{East: p.X, North: p.Y, Up: p.Z})
		enu := t.ToENU(d, wgs)
		return shape.Point{X: enu.East, Y: enu.North, Z: enu.Up}
	}

	for i := range fc.Features {
		fc.Features[i].Geometry = shape.Map(fc.Features[i].Geometry, move)
	}
	fc.Datum = d

	log.Debug().
		Float64("lat", d.Lat).
		Float64("lon", d.Lon).
		Float64("alt", d.Alt).
		Int("features", len(fc.Features)).
		Msg("Feature collection reanchored")
}
