// errors.go defines the errors shared across the drmprime packages.

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMem is returned when a pool slot, a context or a raw buffer
	// could not be allocated.
	ErrNoMem = errors.New("out of memory")

	// ErrNotHandled is a decline: the component does not handle the
	// requested format, and the caller is expected to try another one.
	ErrNotHandled = errors.New("not handled")

	// ErrUnsupported is a decline caused by a format or a platform
	// capability mismatch.
	ErrUnsupported = errors.New("unsupported")

	ErrNoBuffer     = errors.New("no raw buffer attached to the picture")
	ErrNoDescriptor = errors.New("no DRM frame descriptor in the raw buffer")
	ErrImportFailed = errors.New("unable to import the buffer as a GPU image")
)

// IsDecline returns true if the error means "try another adapter" rather
// than a hard failure.
func IsDecline(err error) bool {
	return errors.Is(err, ErrNotHandled) || errors.Is(err, ErrUnsupported)
}

type ErrPlaneImport struct {
	Plane int
	Err   error
}

func (e ErrPlaneImport) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to import plane #%d", e.Plane)
	}
	return fmt.Sprintf("unable to import plane #%d: %v", e.Plane, e.Err)
}

func (e ErrPlaneImport) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImportFailed}
	}
	return []error{ErrImportFailed, e.Err}
}
