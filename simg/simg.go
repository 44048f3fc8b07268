package simg

import (
	"bytes"

	"github.com/calxeda/go-cxfw/checksum"
)

// Wrap prefixes payload with an SIMG header and returns the new image.
//
// The checksum is the CRC-32 register of the header (with flags and crc32
// zeroed) chained into the payload. The returned header carries FlagsValid.
//
// Example:
//
//	img := simg.Wrap(uboot, simg.WithDestinationAddress(0x8000))
func Wrap(payload []byte, opts ...Option) []byte {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	hdr := Header{
		Magic:              Magic,
		HeaderFormat:       HeaderFormat,
		Version:            cfg.version,
		ImageOffset:        HeaderSize,
		ImageLength:        uint32(len(payload)),
		DestinationAddress: cfg.destinationAddress,
		Flags:              FlagsPending,
	}

	if !cfg.skipChecksum {
		hdr.CRC32 = computeChecksum(hdr, payload)
	}
	hdr.Flags = FlagsValid

	img := make([]byte, 0, HeaderSize+len(payload))
	img = append(img, hdr.encode()...)
	img = append(img, payload...)
	return img
}

// Unwrap splits an SIMG image into its header and payload.
// The payload is everything after the header, regardless of ImageLength.
func Unwrap(data []byte) (Header, []byte, error) {
	var hdr Header
	if err := hdr.UnmarshalBinary(data); err != nil {
		return Header{}, nil, err
	}

	payload := make([]byte, len(data)-HeaderSize)
	copy(payload, data[HeaderSize:])
	return hdr, payload, nil
}

// ReadHeader decodes only the header of an SIMG image.
func ReadHeader(data []byte) (Header, error) {
	var hdr Header
	err := hdr.UnmarshalBinary(data)
	return hdr, err
}

// IsWrapped reports whether data starts with the SIMG magic literal.
// Nothing else is checked.
func IsWrapped(data []byte) bool {
	return len(data) >= MagicSize && bytes.Equal(data[:MagicSize], Magic[:])
}

// Contents returns the payload of data if it is an SIMG image and data
// itself otherwise.
func Contents(data []byte) []byte {
	if !IsWrapped(data) {
		return data
	}
	_, payload, err := Unwrap(data)
	if err != nil {
		// magic present but too short for a header
		return data
	}
	return payload
}

// Display renders the header of an SIMG image for diagnostics.
func Display(data []byte) (string, error) {
	hdr, err := ReadHeader(data)
	if err != nil {
		return "", err
	}
	return hdr.String(), nil
}

// VerifyChecksum recomputes the checksum of an SIMG image and compares it
// with the stored value. The payload covered is ImageLength bytes after
// the header.
func VerifyChecksum(data []byte) error {
	hdr, err := ReadHeader(data)
	if err != nil {
		return err
	}

	end := uint64(HeaderSize) + uint64(hdr.ImageLength)
	if end > uint64(len(data)) {
		return &MalformedHeaderError{
			Length: len(data),
			Reason: "image length exceeds data",
		}
	}

	computed := computeChecksum(hdr, data[HeaderSize:end])
	if computed != hdr.CRC32 {
		return &ChecksumMismatchError{
			Stored:   hdr.CRC32,
			Computed: computed,
		}
	}
	return nil
}

func computeChecksum(hdr Header, payload []byte) uint32 {
	seed := checksum.Sum(hdr.pending().encode())
	return checksum.Checksum(payload, seed)
}
