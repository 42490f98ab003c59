package geoson

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Compare with errors.Is.
var (
	ErrMalformedJSON = errors.New("malformed JSON")
	ErrStructure     = errors.New("top-level object has no string 'type' field")
	ErrFeatures      = errors.New("'features' is not an array")

	ErrMissingProperties = errors.New("missing top-level 'properties'")
	ErrMissingCRS        = errors.New("'properties' missing string 'crs'")
	ErrInvalidDatum      = errors.New("'properties' missing array 'datum' of ≥3 numbers")
	ErrMissingHeading    = errors.New("'properties' missing numeric 'heading'")
	ErrUnknownCRS        = errors.New("unknown CRS string")

	ErrOutOfRange        = errors.New("out of range")
	ErrType              = errors.New("type mismatch")
	ErrMalformedGeometry = errors.New("malformed geometry")
	ErrIO                = errors.New("I/O error")

	// Strict mode only.
	ErrNullGeometry    = errors.New("feature has no geometry")
	ErrPolygonHoles    = errors.New("polygon has interior rings")
	ErrUnknownGeometry = errors.New("unknown geometry type")
)

// UnknownCRSError reports a CRS label that maps to no flavor.
type UnknownCRSError struct {
	Label string
}

func (e *UnknownCRSError) Error() string {
	return ErrUnknownCRS.Error() + ": " + e.Label
}

// Is matches ErrUnknownCRS.
func (e *UnknownCRSError) Is(target error) bool {
	return target == ErrUnknownCRS
}

// IOError reports a file that could not be opened, read or written.
// It matches ErrIO and unwraps to the underlying os error.
type IOError struct {
	Msg string
	Err error
}

func (e *IOError) Error() string {
	return e.Msg + ": " + e.Err.Error()
}

// Is matches ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioErrorf(err error, format string, args ...interface{}) error {
	return errors.WithStack(&IOError{Msg: fmt.Sprintf(format, args...), Err: err})
}
