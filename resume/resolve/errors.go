package resolve

import (
	"errors"
	"fmt"
)

// ErrUnsupportedNodeType signals that the resolver met a value outside the
// closed set of fragment types. It indicates a programming error.
var ErrUnsupportedNodeType = errors.New("unsupported node type")

// UnsupportedNodeTypeError carries the offending type and where it was found.
type UnsupportedNodeTypeError struct {
	Type string
	Path string
}

func (e *UnsupportedNodeTypeError) Error() string {
	return fmt.Sprintf("%s: %s at %s", ErrUnsupportedNodeType, e.Type, e.Path)
}

func (e *UnsupportedNodeTypeError) Unwrap() error {
	return ErrUnsupportedNodeType
}
