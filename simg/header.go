package simg

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Header is a decoded SIMG header. All fields are little-endian on disk.
type Header struct {
	// Magic is the 4-byte literal "SIMG"
	Magic [MagicSize]byte

	// HeaderFormat is the header format version (hdrfmt)
	HeaderFormat uint16

	// Version is the content version
	Version uint16

	// ImageOffset is the byte offset of the payload (always HeaderSize)
	ImageOffset uint32

	// ImageLength is the payload size in bytes
	ImageLength uint32

	// DestinationAddress is the load address, or 0
	DestinationAddress uint32

	// Flags is FlagsValid on a finished image
	Flags uint32

	// CRC32 is the raw checksum register over the pending header and payload
	CRC32 uint32
}

// MarshalBinary encodes the header into its fixed 28-byte layout.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.encode(), nil
}

func (h Header) encode() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[offsetMagic:], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[offsetHeaderFormat:], h.HeaderFormat)
	binary.LittleEndian.PutUint16(buf[offsetVersion:], h.Version)
	binary.LittleEndian.PutUint32(buf[offsetImageOffset:], h.ImageOffset)
	binary.LittleEndian.PutUint32(buf[offsetImageLength:], h.ImageLength)
	binary.LittleEndian.PutUint32(buf[offsetDestAddr:], h.DestinationAddress)
	binary.LittleEndian.PutUint32(buf[offsetFlags:], h.Flags)
	binary.LittleEndian.PutUint32(buf[offsetCRC32:], h.CRC32)
	return buf
}

// UnmarshalBinary decodes the first HeaderSize bytes of data.
// The magic literal is checked; no other field is validated.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return &MalformedHeaderError{
			Length: len(data),
			Reason: fmt.Sprintf("need at least %d bytes", HeaderSize),
		}
	}

	var magic [MagicSize]byte
	copy(magic[:], data[offsetMagic:offsetMagic+MagicSize])
	if magic != Magic {
		return &MalformedHeaderError{
			Length: len(data),
			Magic:  magic[:],
			Reason: "bad magic",
		}
	}

	*h = Header{
		Magic:              magic,
		HeaderFormat:       binary.LittleEndian.Uint16(data[offsetHeaderFormat:]),
		Version:            binary.LittleEndian.Uint16(data[offsetVersion:]),
		ImageOffset:        binary.LittleEndian.Uint32(data[offsetImageOffset:]),
		ImageLength:        binary.LittleEndian.Uint32(data[offsetImageLength:]),
		DestinationAddress: binary.LittleEndian.Uint32(data[offsetDestAddr:]),
		Flags:              binary.LittleEndian.Uint32(data[offsetFlags:]),
		CRC32:              binary.LittleEndian.Uint32(data[offsetCRC32:]),
	}
	return nil
}

// pending returns a copy of the header as it looked when its checksum was
// computed: flags and crc32 zeroed.
func (h Header) pending() Header {
	h.Flags = FlagsPending
	h.CRC32 = 0
	return h
}

// String renders the header fields one per line for diagnostics.
func (h Header) String() string {
	return h.Format(nil)
}

// Format renders the header like String, naming each field with label.
// label receives the field id (magic, hdrfmt, version, imgoff, imglen,
// daddr, flags, crc32); a nil label uses the ids themselves.
func (h Header) Format(label func(id string) string) string {
	if label == nil {
		label = func(id string) string { return id }
	}

	fields := []struct {
		id    string
		value string
	}{
		{"magic", string(h.Magic[:])},
		{"hdrfmt", fmt.Sprint(h.HeaderFormat)},
		{"version", fmt.Sprint(h.Version)},
		{"imgoff", fmt.Sprint(h.ImageOffset)},
		{"imglen", fmt.Sprint(h.ImageLength)},
		{"daddr", fmt.Sprintf("0x%08x", h.DestinationAddress)},
		{"flags", fmt.Sprintf("0x%08x", h.Flags)},
		{"crc32", fmt.Sprintf("0x%08x", h.CRC32)},
	}

	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%-12s %s\n", label(f.id)+":", f.value)
	}
	return b.String()
}
