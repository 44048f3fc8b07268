// Package checksum implements the CRC-32 primitive shared by the SIMG and
// U-Boot environment codecs.
//
// The functions here operate on the raw CRC register: the seed is not
// inverted on the way in and the result is not inverted on the way out.
// This is what lets a SIMG checksum chain the header into the payload:
//
//	crc := checksum.Checksum(payload, checksum.Checksum(header, checksum.Init))
//
// The standard CRC-32 used by zlib and U-Boot is the raw register seeded
// with Init and finalized with FinalXor, available as IEEE.
package checksum

import "github.com/snksoft/crc"

// CRC-32 algorithm constants.
const (
	// Polynomial is the reflected CRC-32 polynomial (0x04C11DB7 bit-reversed)
	Polynomial = 0xEDB88320

	// Init is the conventional initial register value
	Init uint32 = 0xFFFFFFFF

	// FinalXor is XORed into the register to produce the standard CRC-32
	FinalXor uint32 = 0xFFFFFFFF

	// Size is the size of a CRC-32 value in bytes
	Size = 4
)

var table = crc.NewTable(crc.CRC32)

// Checksum feeds data through the CRC-32 register starting from seed and
// returns the resulting register value.
func Checksum(data []byte, seed uint32) uint32 {
	return uint32(table.UpdateCrc(uint64(seed), data))
}

// Sum returns the raw register for data seeded with Init.
func Sum(data []byte) uint32 {
	return Checksum(data, Init)
}

// Finalize converts a raw register into a standard CRC-32 value.
func Finalize(register uint32) uint32 {
	return register ^ FinalXor
}

// IEEE computes the standard CRC-32 of data. It matches
// hash/crc32.ChecksumIEEE.
func IEEE(data []byte) uint32 {
	return Finalize(Sum(data))
}
