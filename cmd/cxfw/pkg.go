package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/calxeda/go-cxfw/fwpkg"
)

type pkgCommand struct {
	Create pkgCreateCommand `command:"create" description:"Bundle images into a firmware package"`
	List   pkgListCommand   `command:"list" description:"List the images in a package"`
	Verify pkgVerifyCommand `command:"verify" description:"Check every image checksum in a package"`
}

type pkgCreateCommand struct {
	Version string `long:"version" required:"yes" description:"Package version"`

	Args struct {
		Output string   `positional-arg-name:"OUT"`
		Images []string `positional-arg-name:"TYPE=FILE" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

func (c *pkgCreateCommand) Execute(args []string) error {
	pkg := fwpkg.New(c.Version)

	for _, arg := range c.Args.Images {
		typ, path, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("invalid image %q: want TYPE=FILE", arg)
		}
		data, err := readInput(path)
		if err != nil {
			return err
		}
		if err := pkg.Add(typ, filepath.Base(path), data); err != nil {
			return err
		}
	}

	raw, err := pkg.Bytes()
	if err != nil {
		return err
	}
	if err := writeOutput(c.Args.Output, raw); err != nil {
		return err
	}

	log.Infof(res.Label("pkg", "written"), c.Args.Output, len(pkg.Images))
	return nil
}

func loadPackage(path string) (*fwpkg.Package, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return fwpkg.Read(bytes.NewReader(raw), fwpkg.WithLogger(log))
}

type pkgListCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *pkgListCommand) Execute(args []string) error {
	pkg, err := loadPackage(c.Args.Input)
	if err != nil {
		return err
	}

	fmt.Printf(res.Label("pkg", "version")+"\n", pkg.Version)
	for _, line := range pkg.Summary() {
		fmt.Println(line)
	}
	return nil
}

type pkgVerifyCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *pkgVerifyCommand) Execute(args []string) error {
	pkg, err := loadPackage(c.Args.Input)
	if err != nil {
		return err
	}
	if err := pkg.Verify(); err != nil {
		return err
	}
	fmt.Printf(res.Label("pkg", "verified")+"\n", len(pkg.Images))
	return nil
}
