package ubootenv

import (
	"fmt"
)

// MalformedEnvironmentError indicates a block too short to hold its CRC32 field.
type MalformedEnvironmentError struct {
	Length int
}

func (e *MalformedEnvironmentError) Error() string {
	return fmt.Sprintf("malformed environment: %d bytes cannot hold a %d-byte CRC field",
		e.Length, CRCSize)
}

// EnvironmentOverflowError indicates variables that do not fit in a block.
type EnvironmentOverflowError struct {
	Size     int
	Capacity int
}

func (e *EnvironmentOverflowError) Error() string {
	return fmt.Sprintf("environment overflow: %d bytes of variables exceed capacity of %d",
		e.Size, e.Capacity)
}

// InvalidVariableError indicates a name or value that cannot be encoded.
type InvalidVariableError struct {
	Name   string
	Reason string
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("invalid variable %q: %s", e.Name, e.Reason)
}

// InvalidBootDeviceError indicates a boot order token that is not a known device.
type InvalidBootDeviceError struct {
	Device string
	Reason string
}

func (e *InvalidBootDeviceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid boot device: %s", e.Device)
	}
	return fmt.Sprintf("invalid boot device: %s: %s", e.Device, e.Reason)
}

// ConflictingModifiersError indicates that retry and reset were both requested.
type ConflictingModifiersError struct{}

func (e *ConflictingModifiersError) Error() string {
	return "retry and reset are mutually exclusive"
}

// UnknownBootCommandError indicates a boot command or boot target that does
// not map back to a boot order token.
type UnknownBootCommandError struct {
	// Command is the unrecognized command text
	Command string

	// Target is set instead of Command for an unrecognized boot_targets entry
	Target string
}

func (e *UnknownBootCommandError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("unrecognized boot target: %s", e.Target)
	}
	return fmt.Sprintf("unrecognized boot command: %q", e.Command)
}

// ChecksumMismatchError indicates that a block's stored CRC32 does not match
// its contents.
type ChecksumMismatchError struct {
	Stored   uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("environment checksum mismatch: stored 0x%08X, computed 0x%08X",
		e.Stored, e.Computed)
}
