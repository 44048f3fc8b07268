package simg

import (
	"errors"
	"fmt"
)

// MalformedHeaderError indicates data that cannot hold a valid SIMG header.
type MalformedHeaderError struct {
	// Length is the size of the data that was examined
	Length int

	// Magic holds the leading bytes when the magic literal did not match
	Magic []byte

	// Reason describes what was wrong
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	if e.Magic != nil {
		return fmt.Sprintf("malformed SIMG header: %s %q (%d bytes)", e.Reason, e.Magic, e.Length)
	}
	return fmt.Sprintf("malformed SIMG header: %s (%d bytes)", e.Reason, e.Length)
}

// ChecksumMismatchError indicates that the stored CRC32 does not match the
// header and payload it covers.
type ChecksumMismatchError struct {
	Stored   uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("SIMG checksum mismatch: stored 0x%08X, computed 0x%08X",
		e.Stored, e.Computed)
}

// IsMalformedHeader returns true if err is or wraps a MalformedHeaderError.
func IsMalformedHeader(err error) bool {
	var target *MalformedHeaderError
	return errors.As(err, &target)
}

// IsChecksumMismatch returns true if err is or wraps a ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}
