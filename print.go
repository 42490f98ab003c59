package geoson

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Fprint writes a human readable summary of fc to w.
func (fc *FeatureCollection) Fprint(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "FeatureCollection crs=%s datum=[%g, %g, %g] heading=%g features=%d\n",
		fc.Flavor.Label(), fc.Datum.Lat, fc.Datum.Lon, fc.Datum.Alt, fc.Heading.Yaw, len(fc.Features))
	if len(fc.Properties) > 0 {
		fmt.Fprintf(&b, "  properties: %s\n", formatProperties(fc.Properties))
	}

	for i, f := range fc.Features {
		fmt.Fprintf(&b, "  [%d] %s vertices=%d", i, f.Geometry.Kind(), len(f.Geometry.Vertices()))
		if f.ID != "" {
			fmt.Fprintf(&b, " id=%s", f.ID)
		}
		if len(f.Properties) > 0 {
			fmt.Fprintf(&b, " %s", formatProperties(f.Properties))
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "print feature collection")
	}
	return nil
}

func formatProperties(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + props[k]
	}
	return strings.Join(parts, " ")
}
