package geoson

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// elements returns the members of a JSON array.
func elements(v gjson.Result) ([]gjson.Result, error) {
	if !v.Exists() {
		return nil, errors.Wrap(ErrOutOfRange, "missing array")
	}
	if !v.IsArray() {
		return nil, errors.Wrapf(ErrType, "expected array, got %s", v.Type)
	}
	return v.Array(), nil
}

// number returns vals[i] as a float.
func number(vals []gjson.Result, i int) (float64, error) {
	if i >= len(vals) {
		return 0, errors.Wrapf(ErrOutOfRange, "index %d of %d-element tuple", i, len(vals))
	}
	if vals[i].Type != gjson.Number {
		return 0, errors.Wrapf(ErrType, "tuple element %d is %s, not a number", i, vals[i].Type)
	}
	return vals[i].Float(), nil
}

// geometryType returns the type tag of a geometry object.
func geometryType(node gjson.Result) (string, error) {
	if !node.IsObject() {
		return "", errors.Wrapf(ErrType, "geometry is %s, not an object", node.Type)
	}

	typ := node.Get("type")
	if !typ.Exists() {
		return "", errors.Wrap(ErrOutOfRange, "geometry has no 'type'")
	}
	if typ.Type != gjson.String {
		return "", errors.Wrapf(ErrType, "geometry 'type' is %s, not a string", typ.Type)
	}
	return typ.String(), nil
}
