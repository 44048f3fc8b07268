package fwpkg

import (
	"errors"
	"fmt"
)

// ManifestError indicates a package whose manifest is missing, unreadable,
// or out of step with the archive contents.
type ManifestError struct {
	// Filename is the image the problem concerns, if any
	Filename string
	Reason   string
}

func (e *ManifestError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("invalid package manifest: %s", e.Reason)
	}
	return fmt.Sprintf("invalid package manifest: %s: %s", e.Filename, e.Reason)
}

// IsManifestError reports whether err is a ManifestError.
func IsManifestError(err error) bool {
	var e *ManifestError
	return errors.As(err, &e)
}
