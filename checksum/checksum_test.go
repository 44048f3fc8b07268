package checksum

import (
	"hash/crc32"
	"testing"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFFFFFF, // register untouched
		},
		{
			name:     "single zero byte",
			data:     []byte{0x00},
			expected: 0x2DFD1072,
		},
		{
			name:     "check string",
			data:     []byte("123456789"),
			expected: 0x340BC6D9,
		},
		{
			name:     "multiple bytes",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x49C30432,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sum(tt.data)
			if result != tt.expected {
				t.Errorf("Sum() = 0x%08X, want 0x%08X", result, tt.expected)
			}
		})
	}
}

func TestIEEE(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x00000000,
		},
		{
			name:     "check string",
			data:     []byte("123456789"),
			expected: 0xCBF43926,
		},
		{
			name:     "pangram",
			data:     []byte("The quick brown fox jumps over the lazy dog"),
			expected: 0x414FA339,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IEEE(tt.data)
			if result != tt.expected {
				t.Errorf("IEEE() = 0x%08X, want 0x%08X", result, tt.expected)
			}
			if std := crc32.ChecksumIEEE(tt.data); result != std {
				t.Errorf("IEEE() = 0x%08X, hash/crc32 = 0x%08X", result, std)
			}
		})
	}
}

func TestChecksumChaining(t *testing.T) {
	whole := Sum([]byte("123456789"))
	chained := Checksum([]byte("456789"), Checksum([]byte("123"), Init))
	if chained != whole {
		t.Errorf("chained = 0x%08X, want 0x%08X", chained, whole)
	}
}

func TestChecksumSeed(t *testing.T) {
	if got := Checksum([]byte("123456789"), 0); got != 0x2DFD2D88 {
		t.Errorf("Checksum(seed=0) = 0x%08X, want 0x2DFD2D88", got)
	}

	// hash/crc32 inverts around the register; undo that to compare seeds.
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}
	for _, seed := range []uint32{0, 1, 0xDEADBEEF, Init} {
		want := ^crc32.Update(^seed, crc32.IEEETable, data)
		if got := Checksum(data, seed); got != want {
			t.Errorf("Checksum(seed=0x%08X) = 0x%08X, want 0x%08X", seed, got, want)
		}
	}
}

func TestFinalize(t *testing.T) {
	if got := Finalize(Init); got != 0 {
		t.Errorf("Finalize(Init) = 0x%08X, want 0", got)
	}
	if got := Finalize(0x340BC6D9); got != 0xCBF43926 {
		t.Errorf("Finalize() = 0x%08X, want 0xCBF43926", got)
	}
}

func BenchmarkSum(b *testing.B) {
	data := make([]byte, 8192)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum(data)
	}
}

func BenchmarkIEEE(b *testing.B) {
	data := make([]byte, 8192)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		IEEE(data)
	}
}
