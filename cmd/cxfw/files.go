package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/sirupsen/logrus"
)

// readInput maps path read-only and returns a copy of its contents.
func readInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	defer m.Unmap()

	data := make([]byte, len(m))
	copy(data, m)

	log.WithFields(logrus.Fields{
		"file": path,
		"size": len(data),
	}).Debug("read input")
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file": path,
		"size": len(data),
	}).Debug("wrote output")
	return nil
}

// parseAddress parses a hexadecimal load address, with or without "0x".
func parseAddress(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: must be hexadecimal", s)
	}
	return uint32(v), nil
}
