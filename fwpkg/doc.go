// Package fwpkg bundles SIMG firmware images into a single versioned
// archive.
//
// A package is a cpio (newc) archive. Its first entry, manifest.yaml,
// records the package version and the type and filename of each image:
//
//	version: 1.2.0
//	images:
//	    - type: SOC_ELF
//	      filename: soc.img
//	    - type: UBOOTENV
//	      filename: ubootenv.img
//
// Every image is stored SIMG-wrapped; Add wraps raw data on the way in.
//
// Usage:
//
//	pkg := fwpkg.New("1.2.0")
//	if err := pkg.Add("UBOOTENV", "ubootenv.img", envBlock); err != nil {
//	    log.Fatal(err)
//	}
//	if err := pkg.Write(f); err != nil {
//	    log.Fatal(err)
//	}
package fwpkg
