// Package simg builds and parses SIMG firmware image containers.
//
// # Image Format
//
// An SIMG image is a fixed 28-byte little-endian header followed by the
// payload:
//
//	[MAGIC(4)="SIMG"][HDRFMT(2)][VERSION(2)][IMGOFF(4)][IMGLEN(4)][DADDR(4)][FLAGS(4)][CRC32(4)][PAYLOAD...]
//
// Where:
//   - IMGOFF is always 28
//   - DADDR is the load address, or 0
//   - FLAGS is 0xFFFFFFFF on a finished image
//   - CRC32 is the raw CRC-32 register of the header (with FLAGS and CRC32
//     zeroed) chained into the payload, or 0 when the checksum was skipped
//
// # Usage
//
// Wrap a payload:
//
//	img := simg.Wrap(payload, simg.WithDestinationAddress(0x8000))
//
// Unwrap and inspect an image:
//
//	hdr, payload, err := simg.Unwrap(img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(hdr)
//
// # Error Handling
//
// Unwrap does not check the CRC32 field. Call VerifyChecksum when integrity
// matters:
//
//	if err := simg.VerifyChecksum(img); simg.IsChecksumMismatch(err) {
//	    // stored and computed checksums differ
//	}
package simg
