package simg

// Header layout constants.
const (
	// HeaderSize is the fixed size of an SIMG header in bytes:
	// MAGIC(4) + HDRFMT(2) + VERSION(2) + IMGOFF(4) + IMGLEN(4) + DADDR(4) + FLAGS(4) + CRC32(4)
	HeaderSize = 28

	// MagicSize is the size of the magic literal in bytes
	MagicSize = 4

	// HeaderFormat is the only header format this package produces
	HeaderFormat = 0

	// DefaultVersion is the content version used when none is given
	DefaultVersion = 0
)

// Field offsets within the header.
const (
	offsetMagic        = 0
	offsetHeaderFormat = 4
	offsetVersion      = 6
	offsetImageOffset  = 8
	offsetImageLength  = 12
	offsetDestAddr     = 16
	offsetFlags        = 20
	offsetCRC32        = 24
)

// Flag values.
const (
	// FlagsValid marks a finished image with no flags set
	FlagsValid uint32 = 0xFFFFFFFF

	// FlagsPending is the flags value used while computing the CRC
	FlagsPending uint32 = 0x00000000
)

// Magic is the literal that starts every SIMG header.
var Magic = [MagicSize]byte{'S', 'I', 'M', 'G'}
