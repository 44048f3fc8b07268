package ubootenv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/calxeda/go-cxfw/checksum"
	"github.com/calxeda/go-cxfw/simg"
)

// Constants for the U-Boot environment block layout.
const (
	// Size is the fixed size of a serialized environment block in bytes
	Size = 8192

	// CRCSize is the size of the leading CRC32 field
	CRCSize = checksum.Size

	// Capacity is the room left for variables and the end marker
	Capacity = Size - CRCSize

	// Padding fills the unused tail of the block
	Padding = 0xFF

	// separator terminates each name=value assignment
	separator = 0x00
)

// Env is a U-Boot environment: a set of name=value variables.
//
// Variables keep the order they were first seen in, so a parsed block
// serializes back in the same order. Env is not safe for concurrent
// mutation.
type Env struct {
	vars   map[string]string
	order  []string
	config config
}

// New returns an empty environment.
func New(opts ...Option) *Env {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Env{
		vars:   make(map[string]string),
		config: cfg,
	}
}

// Parse decodes a raw environment block. SIMG-wrapped blocks are
// unwrapped first. The stored CRC32 is not checked; see VerifyChecksum.
//
// Lines without '=' are kept as a variable with an empty value.
//
// Example:
//
//	raw, _ := os.ReadFile("ubootenv.bin")
//	env, err := ubootenv.Parse(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(env.Get("bootcmd_default"))
func Parse(raw []byte, opts ...Option) (*Env, error) {
	env := New(opts...)
	log := env.config.logger

	if simg.IsWrapped(raw) {
		log.Debug("unwrapping SIMG environment image")
	}
	raw, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	if len(raw) < CRCSize {
		return nil, &MalformedEnvironmentError{Length: len(raw)}
	}

	region := bytes.TrimRight(raw[CRCSize:], "\x00\xff")
	for _, line := range strings.Split(string(region), "\x00") {
		if line == "" {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if !found {
			log.WithField("line", line).Debug("environment line has no '=', keeping it with an empty value")
		}
		env.set(name, value)
	}

	log.WithFields(logrus.Fields{
		"variables": len(env.order),
		"bytes":     len(region),
	}).Debug("parsed environment")

	return env, nil
}

// Get returns the value of name, or "" if it is not set.
func (e *Env) Get(name string) string {
	return e.vars[name]
}

// Lookup returns the value of name and whether it is set.
func (e *Env) Lookup(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set assigns value to name. Names may not be empty or contain '=' or NUL;
// values may not contain NUL.
func (e *Env) Set(name, value string) error {
	if err := validate(name, value); err != nil {
		return err
	}
	e.set(name, value)
	return nil
}

func (e *Env) set(name, value string) {
	if _, ok := e.vars[name]; !ok {
		e.order = append(e.order, name)
	}
	e.vars[name] = value
}

// Unset removes name. It is a no-op if name is not set.
func (e *Env) Unset(name string) {
	if _, ok := e.vars[name]; !ok {
		return
	}
	delete(e.vars, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Names returns the variable names in serialization order.
func (e *Env) Names() []string {
	names := make([]string, len(e.order))
	copy(names, e.order)
	return names
}

// Len returns the number of variables.
func (e *Env) Len() int {
	return len(e.order)
}

// Variables returns a copy of the variables as a map.
func (e *Env) Variables() map[string]string {
	vars := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return vars
}

// Bytes serializes the environment into a Size-byte block:
//
//	[CRC32(4)][name=value\0 ...][\0][0xFF padding]
//
// The CRC32 is the standard CRC-32 of everything after the CRC field,
// stored little-endian.
func (e *Env) Bytes() ([]byte, error) {
	content := make([]byte, 0, Capacity)
	for _, name := range e.order {
		content = append(content, name...)
		content = append(content, '=')
		content = append(content, e.vars[name]...)
		content = append(content, separator)
	}
	content = append(content, separator)

	if len(content) > Capacity {
		e.config.logger.WithFields(logrus.Fields{
			"size":     len(content),
			"capacity": Capacity,
		}).Debug("environment does not fit")
		return nil, &EnvironmentOverflowError{Size: len(content), Capacity: Capacity}
	}

	block := make([]byte, Size)
	copy(block[CRCSize:], content)
	for i := CRCSize + len(content); i < Size; i++ {
		block[i] = Padding
	}

	binary.LittleEndian.PutUint32(block[:CRCSize], checksum.IEEE(block[CRCSize:]))
	return block, nil
}

// VerifyChecksum checks the stored CRC32 of a raw environment block.
// SIMG-wrapped blocks are unwrapped first.
func VerifyChecksum(raw []byte) error {
	raw, err := unwrap(raw)
	if err != nil {
		return err
	}
	if len(raw) < CRCSize {
		return &MalformedEnvironmentError{Length: len(raw)}
	}

	stored := binary.LittleEndian.Uint32(raw[:CRCSize])
	computed := checksum.IEEE(raw[CRCSize:])
	if stored != computed {
		return &ChecksumMismatchError{Stored: stored, Computed: computed}
	}
	return nil
}

// unwrap strips the SIMG header from a wrapped block. A block that carries
// the SIMG magic but not a whole header is an error.
func unwrap(raw []byte) ([]byte, error) {
	if !simg.IsWrapped(raw) {
		return raw, nil
	}
	_, payload, err := simg.Unwrap(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap environment: %w", err)
	}
	return payload, nil
}

func validate(name, value string) error {
	switch {
	case name == "":
		return &InvalidVariableError{Name: name, Reason: "empty name"}
	case strings.ContainsAny(name, "=\x00"):
		return &InvalidVariableError{Name: name, Reason: "name contains '=' or NUL"}
	case strings.ContainsRune(value, 0):
		return &InvalidVariableError{Name: name, Reason: "value contains NUL"}
	}
	return nil
}
