package resources

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Table maps a subject and an id to one or more strings. A Table is
// immutable once loaded and safe for concurrent reads.
type Table struct {
	subjects map[string]map[string]entry
}

// entry holds a scalar string or a list of strings.
type entry []string

func (e *entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = entry{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*e = list
		return nil
	}
	return fmt.Errorf("line %d: resource entry must be a string or a list of strings", node.Line)
}

// Load parses a resource table from YAML.
func Load(r io.Reader) (*Table, error) {
	var subjects map[string]map[string]entry
	if err := yaml.NewDecoder(r).Decode(&subjects); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse resources: %w", err)
	}
	if subjects == nil {
		subjects = make(map[string]map[string]entry)
	}
	return &Table{subjects: subjects}, nil
}

// String returns the first string stored under subject and id.
func (t *Table) String(subject, id string) (string, bool) {
	e := t.subjects[subject][id]
	if len(e) == 0 {
		return "", false
	}
	return e[0], true
}

// Strings returns every string stored under subject and id.
func (t *Table) Strings(subject, id string) []string {
	e := t.subjects[subject][id]
	out := make([]string, len(e))
	copy(out, e)
	return out
}

// Subjects returns the subject names in sorted order.
func (t *Table) Subjects() []string {
	names := make([]string, 0, len(t.subjects))
	for name := range t.subjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Label returns the string for subject and id, or id itself when the table
// has no entry.
func (t *Table) Label(subject, id string) string {
	if s, ok := t.String(subject, id); ok {
		return s
	}
	return id
}

var (
	once   sync.Once
	active *Table
)

// Init loads a YAML file to use in place of the embedded table. It must be
// called before the first call to Default; once a table is in use, later
// calls have no effect.
func Init(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open resources: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return err
	}

	once.Do(func() {
		active = t
	})
	return nil
}

// Default returns the process-wide table: the embedded strings unless Init
// loaded a file first.
func Default() *Table {
	once.Do(func() {
		t, err := Load(bytes.NewReader(defaultYAML))
		if err != nil {
			panic(fmt.Sprintf("resources: embedded table: %v", err))
		}
		active = t
	})
	return active
}
