package scene

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrMalformedDocument        = errors.New("malformed document")
	ErrInvalidMagic             = errors.New("invalid magic")
	ErrUnexpectedEOF            = errors.New("unexpected end of file")
	ErrUnsupportedComponentType = errors.New("unsupported component type")
	ErrMissingRequiredStructure = errors.New("missing required structure")
	ErrIndexOutOfRange          = errors.New("index out of range")
)

// IndexError reports a face index outside of [0, count).
func IndexError(index, count int) error {
	return pkgerrors.Wrapf(ErrIndexOutOfRange, "vertex %d (vertex count %d)", index, count)
}
