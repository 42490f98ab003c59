package geoson

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// canonicalOptions sorts object keys, whitespace is stripped afterwards.
var canonicalOptions = &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}

// CoerceProperties flattens a JSON object into string values. Strings are
// copied verbatim, every other value becomes its compact JSON text with
// object keys sorted: true becomes "true", [1, 2] becomes "[1,2]".
// A value that is not an object yields an empty map.
func CoerceProperties(props gjson.Result) map[string]string {
	out := make(map[string]string)
	if !props.IsObject() {
		return out
	}

	props.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			out[key.String()] = value.String()
		} else {
			out[key.String()] = canonicalJSON(value)
		}
		return true
	})

	return out
}

// canonicalJSON returns the compact text of v.
func canonicalJSON(v gjson.Result) string {
	if v.Type != gjson.JSON {
		return strings.TrimSpace(v.Raw)
	}
	return string(pretty.Ugly(pretty.PrettyOptions([]byte(v.Raw), canonicalOptions)))
}
