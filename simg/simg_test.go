package simg

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"testing"
)

// helloImage is "hello" wrapped with daddr 0x1000.
const helloImage = "53494d47000000001c0000000500000000100000ffffffff6983114568656c6c6f"

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	return b
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		opts    []Option
		wantCRC uint32
	}{
		{
			name:    "hello with destination address",
			payload: []byte("hello"),
			opts:    []Option{WithDestinationAddress(0x1000)},
			wantCRC: 0x45118369,
		},
		{
			name:    "empty payload",
			payload: []byte{},
			wantCRC: 0x1F2BF436,
		},
		{
			name:    "checksum skipped",
			payload: []byte("hello"),
			opts:    []Option{WithDestinationAddress(0x1000), WithoutChecksum()},
			wantCRC: 0,
		},
		{
			name:    "checksum disabled explicitly",
			payload: []byte("hello"),
			opts:    []Option{WithChecksum(false)},
			wantCRC: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Wrap(tt.payload, tt.opts...)

			if len(img) != HeaderSize+len(tt.payload) {
				t.Fatalf("len = %d, want %d", len(img), HeaderSize+len(tt.payload))
			}

			hdr, err := ReadHeader(img)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if hdr.CRC32 != tt.wantCRC {
				t.Errorf("CRC32 = 0x%08X, want 0x%08X", hdr.CRC32, tt.wantCRC)
			}
			if hdr.Flags != FlagsValid {
				t.Errorf("Flags = 0x%08X, want 0x%08X", hdr.Flags, FlagsValid)
			}
			if hdr.ImageOffset != HeaderSize {
				t.Errorf("ImageOffset = %d, want %d", hdr.ImageOffset, HeaderSize)
			}
			if hdr.ImageLength != uint32(len(tt.payload)) {
				t.Errorf("ImageLength = %d, want %d", hdr.ImageLength, len(tt.payload))
			}
			if !bytes.Equal(img[HeaderSize:], tt.payload) {
				t.Errorf("payload = %v, want %v", img[HeaderSize:], tt.payload)
			}
		})
	}
}

func TestWrapKnownImage(t *testing.T) {
	img := Wrap([]byte("hello"), WithDestinationAddress(0x1000))
	want := mustDecodeHex(t, helloImage)
	if !bytes.Equal(img, want) {
		t.Errorf("Wrap() = %x, want %x", img, want)
	}
}

func TestWrapVersion(t *testing.T) {
	img := Wrap([]byte("abc"), WithVersion(7))
	hdr, err := ReadHeader(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.Version != 7 {
		t.Errorf("Version = %d, want 7", hdr.Version)
	}
	if err := VerifyChecksum(img); err != nil {
		t.Errorf("VerifyChecksum() = %v", err)
	}
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		[]byte("SIMG inside payload"),
		bytes.Repeat([]byte{0xFF}, 4096),
	}
	addrs := []uint32{0, 0x8000, 0xFFFFFFFF}

	for _, p := range payloads {
		for _, addr := range addrs {
			img := Wrap(p, WithDestinationAddress(addr))

			hdr, payload, err := Unwrap(img)
			if err != nil {
				t.Fatalf("Unwrap() error: %v", err)
			}
			if !bytes.Equal(payload, p) {
				t.Errorf("payload mismatch for len=%d addr=0x%08X", len(p), addr)
			}
			if hdr.DestinationAddress != addr {
				t.Errorf("DestinationAddress = 0x%08X, want 0x%08X", hdr.DestinationAddress, addr)
			}
			if err := VerifyChecksum(img); err != nil {
				t.Errorf("VerifyChecksum() = %v", err)
			}
		}
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
		errMsg  string
	}{
		{
			name:    "too short",
			data:    []byte("SIMG"),
			wantErr: true,
			errMsg:  "need at least 28 bytes",
		},
		{
			name:    "empty",
			data:    nil,
			wantErr: true,
			errMsg:  "need at least 28 bytes",
		},
		{
			name:    "bad magic",
			data:    append([]byte("GMIS"), make([]byte, 24)...),
			wantErr: true,
			errMsg:  "bad magic",
		},
		{
			name: "valid",
			data: func() []byte {
				b, _ := hex.DecodeString(helloImage)
				return b
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Unwrap(tt.data)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %v, want substring %q", err, tt.errMsg)
				}
				if !IsMalformedHeader(err) {
					t.Errorf("error type = %T, want *MalformedHeaderError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnwrapIgnoresImageLength(t *testing.T) {
	img := Wrap([]byte("abc"))
	img = append(img, []byte("trailing")...)

	hdr, payload, err := Unwrap(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.ImageLength != 3 {
		t.Errorf("ImageLength = %d, want 3", hdr.ImageLength)
	}
	if string(payload) != "abctrailing" {
		t.Errorf("payload = %q, want %q", payload, "abctrailing")
	}

	// The checksum only covers ImageLength bytes.
	if err := VerifyChecksum(img); err != nil {
		t.Errorf("VerifyChecksum() = %v", err)
	}
}

func TestIsWrapped(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"wrapped image", Wrap([]byte("x")), true},
		{"bare magic", []byte("SIMG"), true},
		{"payload starting with magic", []byte("SIMGxyz"), true},
		{"plain payload", []byte("hello"), false},
		{"short", []byte("SIM"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWrapped(tt.data); got != tt.want {
				t.Errorf("IsWrapped() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContents(t *testing.T) {
	if got := Contents([]byte("plain")); string(got) != "plain" {
		t.Errorf("Contents(plain) = %q", got)
	}
	if got := Contents(Wrap([]byte("inner"))); string(got) != "inner" {
		t.Errorf("Contents(wrapped) = %q", got)
	}
	if got := Contents([]byte("SIMG-short")); string(got) != "SIMG-short" {
		t.Errorf("Contents(short) = %q", got)
	}
}

func TestVerifyChecksum(t *testing.T) {
	good := Wrap([]byte("firmware payload"), WithDestinationAddress(0x4000))

	t.Run("valid", func(t *testing.T) {
		if err := VerifyChecksum(good); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[len(bad)-1] ^= 0x01

		err := VerifyChecksum(bad)
		var mismatch *ChecksumMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("error = %v, want *ChecksumMismatchError", err)
		}
		if mismatch.Stored == mismatch.Computed {
			t.Errorf("stored and computed should differ: %+v", mismatch)
		}
	})

	t.Run("corrupted header", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[offsetDestAddr] ^= 0x01
		if !IsChecksumMismatch(VerifyChecksum(bad)) {
			t.Error("expected checksum mismatch")
		}
	})

	t.Run("flags do not affect checksum", func(t *testing.T) {
		img := append([]byte(nil), good...)
		img[offsetFlags] = 0x00
		if err := VerifyChecksum(img); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("checksum skipped", func(t *testing.T) {
		if !IsChecksumMismatch(VerifyChecksum(Wrap([]byte("x"), WithoutChecksum()))) {
			t.Error("expected checksum mismatch for zero crc32")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		err := VerifyChecksum(good[:len(good)-1])
		if !IsMalformedHeader(err) {
			t.Fatalf("error = %v, want *MalformedHeaderError", err)
		}
		if !strings.Contains(err.Error(), "image length exceeds data") {
			t.Errorf("error = %v", err)
		}
	})
}

func TestDisplayFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/image.simg")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	out, err := Display(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "magic:       SIMG\n" +
		"hdrfmt:      0\n" +
		"version:     0\n" +
		"imgoff:      28\n" +
		"imglen:      1000\n" +
		"daddr:       0x00008000\n" +
		"flags:       0xffffffff\n" +
		"crc32:       0x915d2875\n"
	if out != want {
		t.Errorf("Display() =\n%s\nwant\n%s", out, want)
	}

	if err := VerifyChecksum(data); err != nil {
		t.Errorf("VerifyChecksum() = %v", err)
	}
}

func TestDisplayMalformed(t *testing.T) {
	if _, err := Display([]byte("nope")); !IsMalformedHeader(err) {
		t.Errorf("error = %v, want *MalformedHeaderError", err)
	}
}

func TestHeaderFormat(t *testing.T) {
	hdr, err := ReadHeader(mustDecodeHex(t, helloImage))
	if err != nil {
		t.Fatal(err)
	}

	if hdr.Format(nil) != hdr.String() {
		t.Errorf("Format(nil) should match String()")
	}

	out := hdr.Format(strings.ToUpper)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if lines[0] != "MAGIC:       SIMG" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[5] != "DADDR:       0x00001000" {
		t.Errorf("daddr line = %q", lines[5])
	}
}

func TestHeaderMarshalBinary(t *testing.T) {
	want := mustDecodeHex(t, helloImage)[:HeaderSize]

	var hdr Header
	if err := hdr.UnmarshalBinary(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := hdr.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalBinary() = %x, want %x", got, want)
	}
}

func BenchmarkWrap(b *testing.B) {
	payload := make([]byte, 64*1024)
	for i := range payload {
		payload[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Wrap(payload, WithDestinationAddress(0x8000))
	}
}
