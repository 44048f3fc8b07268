// Command cxfw creates and inspects Calxeda firmware artifacts: SIMG
// images, U-Boot environment blocks and firmware packages.
//
// Usage:
//
//	cxfw simg create -d 8000 soc.elf soc.img
//	cxfw simg display soc.img
//	cxfw env bootorder ubootenv.img
//	cxfw env set-bootorder ubootenv.img out.img disk1:2 pxe retry
//	cxfw pkg create --version 1.2.0 fw.cpio SOC_ELF=soc.img UBOOTENV=out.img
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/calxeda/go-cxfw/resources"
)

type options struct {
	Debug     bool   `long:"debug" description:"Enable debug logging"`
	Resources string `long:"resources" value-name:"FILE" description:"Load display strings from a YAML file"`

	Simg simgCommand `command:"simg" description:"Create and inspect SIMG images"`
	Env  envCommand  `command:"env" description:"Read and edit U-Boot environment blocks"`
	Pkg  pkgCommand  `command:"pkg" description:"Build and inspect firmware packages"`
}

var (
	opts options
	log  = logrus.New()
	res  *resources.Table
)

func main() {
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if opts.Debug {
			log.SetLevel(logrus.DebugLevel)
		}
		if err := resources.Init(opts.Resources); err != nil {
			return err
		}
		res = resources.Default()
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			fmt.Println(ferr.Message)
			os.Exit(0)
		}
		log.Fatal(err)
	}
}
