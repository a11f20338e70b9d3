package icon

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when neither the theme nor the file system
// provide the requested icon.
var ErrNotFound = errors.New("icon not found")

// LoadError reports an icon file which exists but cannot be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load icon %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// Cause implements the pkg/errors causer interface.
func (e *LoadError) Cause() error { return e.Err }

// InvalidEntityError reports a recolor value that cannot be used as an
// entity value. The substitution is skipped.
type InvalidEntityError struct {
	Path   string
	Entity string
	Value  string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("icon %s, entity %s is invalid: %q", e.Path, e.Entity, e.Value)
}

// MetadataParseError reports a malformed .icon side-car file.
type MetadataParseError struct {
	Path string
	Err  error
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("cannot read icon data %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MetadataParseError) Unwrap() error { return e.Err }

// Cause implements the pkg/errors causer interface.
func (e *MetadataParseError) Cause() error { return e.Err }
