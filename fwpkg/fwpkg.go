package fwpkg

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cavaliercoder/go-cpio"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/calxeda/go-cxfw/simg"
)

const (
	// ManifestName is the archive entry describing the package
	ManifestName = "manifest.yaml"

	// fileMode is the cpio mode of every entry: a regular file, 0644
	fileMode = 0100000 | 0644
)

// Image is one firmware image in a package. Data is always SIMG-wrapped.
type Image struct {
	Type     string
	Filename string
	Data     []byte
}

// Header returns the SIMG header of the image.
func (img Image) Header() (simg.Header, error) {
	return simg.ReadHeader(img.Data)
}

// Package is a versioned, ordered set of firmware images.
type Package struct {
	Version string
	Images  []Image
}

type manifest struct {
	Version string          `yaml:"version"`
	Images  []manifestImage `yaml:"images"`
}

type manifestImage struct {
	Type     string `yaml:"type"`
	Filename string `yaml:"filename"`
}

// New returns an empty package.
func New(version string) *Package {
	return &Package{Version: version}
}

// Add appends an image. Data that is not already SIMG-wrapped is wrapped
// with opts; wrapped data is stored as is and opts are ignored.
//
// Example:
//
//	pkg := fwpkg.New("1.2.0")
//	err := pkg.Add("UBOOTENV", "ubootenv.img", envBlock)
func (p *Package) Add(typ, filename string, data []byte, opts ...simg.Option) error {
	if err := p.checkName(filename); err != nil {
		return err
	}
	if typ == "" {
		return &ManifestError{Filename: filename, Reason: "empty image type"}
	}

	var wrapped []byte
	if simg.IsWrapped(data) {
		wrapped = append([]byte(nil), data...)
	} else {
		wrapped = simg.Wrap(data, opts...)
	}

	p.Images = append(p.Images, Image{Type: typ, Filename: filename, Data: wrapped})
	return nil
}

func (p *Package) checkName(filename string) error {
	switch {
	case filename == "":
		return &ManifestError{Reason: "empty image filename"}
	case filename == ManifestName:
		return &ManifestError{Filename: filename, Reason: "name is reserved for the manifest"}
	case strings.ContainsRune(filename, '/'):
		return &ManifestError{Filename: filename, Reason: "filename must not contain '/'"}
	}
	for _, img := range p.Images {
		if img.Filename == filename {
			return &ManifestError{Filename: filename, Reason: "duplicate filename"}
		}
	}
	return nil
}

// Lookup returns the first image of the given type.
func (p *Package) Lookup(typ string) (Image, bool) {
	for _, img := range p.Images {
		if img.Type == typ {
			return img, true
		}
	}
	return Image{}, false
}

// Write writes the package as a cpio archive: the manifest first, then
// each image in order.
func (p *Package) Write(w io.Writer) error {
	m := manifest{Version: p.Version}
	for _, img := range p.Images {
		m.Images = append(m.Images, manifestImage{Type: img.Type, Filename: img.Filename})
	}
	doc, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	cw := cpio.NewWriter(w)
	if err := writeFile(cw, ManifestName, doc); err != nil {
		return err
	}
	for _, img := range p.Images {
		if err := writeFile(cw, img.Filename, img.Data); err != nil {
			return err
		}
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func writeFile(w *cpio.Writer, name string, data []byte) error {
	hdr := &cpio.Header{
		Name: name,
		Mode: fileMode,
		Size: int64(len(data)),
	}
	if err := w.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Read parses a package archive. The manifest decides which entries are
// images and in what order; other entries are ignored.
func Read(r io.Reader, opts ...Option) (*Package, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger

	files := make(map[string][]byte)
	cr := cpio.NewReader(r)
	for {
		hdr, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read archive: %w", err)
		}

		data, err := io.ReadAll(cr)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}
		log.WithFields(logrus.Fields{
			"name": hdr.Name,
			"size": len(data),
		}).Debug("archive entry")
		files[hdr.Name] = data
	}

	doc, ok := files[ManifestName]
	if !ok {
		return nil, &ManifestError{Reason: "archive has no " + ManifestName}
	}
	var m manifest
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return nil, &ManifestError{Reason: err.Error()}
	}

	pkg := New(m.Version)
	for _, entry := range m.Images {
		data, ok := files[entry.Filename]
		if !ok {
			return nil, &ManifestError{Filename: entry.Filename, Reason: "listed in manifest but missing from archive"}
		}
		if !simg.IsWrapped(data) {
			return nil, &ManifestError{Filename: entry.Filename, Reason: "image is not SIMG-wrapped"}
		}
		if err := pkg.Add(entry.Type, entry.Filename, data); err != nil {
			return nil, err
		}
	}
	return pkg, nil
}

// Verify checks the SIMG checksum of every image.
func (p *Package) Verify() error {
	for _, img := range p.Images {
		if err := simg.VerifyChecksum(img.Data); err != nil {
			return fmt.Errorf("%s: %w", img.Filename, err)
		}
	}
	return nil
}

// Size returns the total size of all images.
func (p *Package) Size() int {
	total := 0
	for _, img := range p.Images {
		total += len(img.Data)
	}
	return total
}

// Summary returns one line per image: type, filename and size.
func (p *Package) Summary() []string {
	lines := make([]string, len(p.Images))
	for i, img := range p.Images {
		lines[i] = fmt.Sprintf("%-12s %-24s %s", img.Type, img.Filename, humanize.Bytes(uint64(len(img.Data))))
	}
	return lines
}

// Bytes returns the package as an in-memory archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
