package main

import (
	"fmt"

	"github.com/calxeda/go-cxfw/simg"
)

type simgCommand struct {
	Create  simgCreateCommand  `command:"create" description:"Wrap a payload in an SIMG header"`
	Display simgDisplayCommand `command:"display" description:"Print the SIMG header"`
	Verify  simgVerifyCommand  `command:"verify" description:"Check the SIMG checksum"`
	Extract simgExtractCommand `command:"extract" description:"Write the payload of an SIMG image"`
}

type simgCreateCommand struct {
	DestinationAddress string `short:"d" long:"daddr" default:"0" value-name:"HEX" description:"Load address of the payload"`
	SkipCRC            bool   `long:"skip-crc" description:"Leave the CRC32 field zero"`
	Version            uint16 `long:"version" default:"0" description:"Content version"`

	Args struct {
		Input  string `positional-arg-name:"IN"`
		Output string `positional-arg-name:"OUT"`
	} `positional-args:"yes" required:"yes"`
}

func (c *simgCreateCommand) Execute(args []string) error {
	daddr, err := parseAddress(c.DestinationAddress)
	if err != nil {
		return err
	}

	payload, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}

	image := simg.Wrap(payload,
		simg.WithDestinationAddress(daddr),
		simg.WithChecksum(!c.SkipCRC),
		simg.WithVersion(c.Version),
	)
	if err := writeOutput(c.Args.Output, image); err != nil {
		return err
	}

	log.Infof(res.Label("simg", "wrapped"), c.Args.Input, c.Args.Output)
	return nil
}

type simgDisplayCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *simgDisplayCommand) Execute(args []string) error {
	data, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}

	hdr, err := simg.ReadHeader(data)
	if err != nil {
		return err
	}

	fmt.Print(hdr.Format(func(id string) string {
		return res.Label("simg", id)
	}))
	return nil
}

type simgVerifyCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *simgVerifyCommand) Execute(args []string) error {
	data, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}
	if err := simg.VerifyChecksum(data); err != nil {
		return err
	}
	fmt.Println(res.Label("simg", "checksum-ok"))
	return nil
}

type simgExtractCommand struct {
	Args struct {
		Input  string `positional-arg-name:"IN"`
		Output string `positional-arg-name:"OUT"`
	} `positional-args:"yes" required:"yes"`
}

func (c *simgExtractCommand) Execute(args []string) error {
	data, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}

	_, payload, err := simg.Unwrap(data)
	if err != nil {
		return err
	}
	if err := writeOutput(c.Args.Output, payload); err != nil {
		return err
	}

	log.Infof(res.Label("simg", "extracted"), c.Args.Input, c.Args.Output)
	return nil
}
