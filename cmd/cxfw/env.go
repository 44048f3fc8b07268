package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/calxeda/go-cxfw/simg"
	"github.com/calxeda/go-cxfw/ubootenv"
)

type envCommand struct {
	Show         envShowCommand         `command:"show" description:"Print every variable"`
	Get          envGetCommand          `command:"get" description:"Print one variable"`
	Set          envSetCommand          `command:"set" description:"Assign variables and write a new block"`
	BootOrder    envBootOrderCommand    `command:"bootorder" description:"Print the boot order"`
	SetBootOrder envSetBootOrderCommand `command:"set-bootorder" description:"Change the boot order and write a new block"`
	Verify       envVerifyCommand       `command:"verify" description:"Check the environment CRC32"`
}

// envOutput controls how an edited block is written.
type envOutput struct {
	Simg               bool   `long:"simg" description:"Wrap the output in an SIMG header"`
	DestinationAddress string `short:"d" long:"daddr" value-name:"HEX" description:"Load address for a wrapped output"`
}

func loadEnv(path string) (*ubootenv.Env, []byte, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, nil, err
	}
	env, err := ubootenv.Parse(raw, ubootenv.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return env, raw, nil
}

// save writes env to path. The output is SIMG-wrapped when asked to or when
// the input was; a wrapped input also supplies the default load address.
func (o envOutput) save(env *ubootenv.Env, input []byte, path string) error {
	block, err := env.Bytes()
	if err != nil {
		return err
	}

	wrap := o.Simg
	var daddr uint32
	if hdr, err := simg.ReadHeader(input); err == nil {
		wrap = true
		daddr = hdr.DestinationAddress
	}
	if o.DestinationAddress != "" {
		if daddr, err = parseAddress(o.DestinationAddress); err != nil {
			return err
		}
	}

	if wrap {
		log.WithField("daddr", fmt.Sprintf("0x%08x", daddr)).Debug("wrapping environment")
		block = simg.Wrap(block, simg.WithDestinationAddress(daddr))
	}
	if err := writeOutput(path, block); err != nil {
		return err
	}

	log.Infof(res.Label("env", "written"), path)
	return nil
}

type envShowCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *envShowCommand) Execute(args []string) error {
	env, _, err := loadEnv(c.Args.Input)
	if err != nil {
		return err
	}

	for _, name := range env.Names() {
		fmt.Printf("%s=%s\n", name, env.Get(name))
	}
	log.Infof(res.Label("env", "variables"), env.Len())
	return nil
}

type envGetCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
		Name  string `positional-arg-name:"NAME"`
	} `positional-args:"yes" required:"yes"`
}

func (c *envGetCommand) Execute(args []string) error {
	env, _, err := loadEnv(c.Args.Input)
	if err != nil {
		return err
	}

	value, ok := env.Lookup(c.Args.Name)
	if !ok {
		return fmt.Errorf(res.Label("env", "not-set"), c.Args.Name)
	}
	fmt.Println(value)
	return nil
}

type envSetCommand struct {
	envOutput

	Args struct {
		Input       string   `positional-arg-name:"IN"`
		Output      string   `positional-arg-name:"OUT"`
		Assignments []string `positional-arg-name:"NAME=VALUE" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

func (c *envSetCommand) Execute(args []string) error {
	env, raw, err := loadEnv(c.Args.Input)
	if err != nil {
		return err
	}

	for _, assignment := range c.Args.Assignments {
		name, value, found := strings.Cut(assignment, "=")
		if !found {
			return fmt.Errorf("invalid assignment %q: want NAME=VALUE", assignment)
		}
		if err := env.Set(name, value); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"name":  name,
			"value": value,
		}).Debug("set variable")
	}

	return c.save(env, raw, c.Args.Output)
}

type envBootOrderCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *envBootOrderCommand) Execute(args []string) error {
	env, _, err := loadEnv(c.Args.Input)
	if err != nil {
		return err
	}

	order, err := env.BootOrder()
	if err != nil {
		return err
	}
	fmt.Printf(res.Label("env", "boot-order")+"\n", strings.Join(order, " "))
	return nil
}

type envSetBootOrderCommand struct {
	envOutput

	Args struct {
		Input  string   `positional-arg-name:"IN"`
		Output string   `positional-arg-name:"OUT"`
		Tokens []string `positional-arg-name:"TOKEN" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

func (c *envSetBootOrderCommand) Execute(args []string) error {
	env, raw, err := loadEnv(c.Args.Input)
	if err != nil {
		return err
	}

	if err := env.SetBootOrder(c.Args.Tokens); err != nil {
		return err
	}
	log.WithField(ubootenv.VarBootCmdDefault, env.Get(ubootenv.VarBootCmdDefault)).Debug("boot order encoded")

	return c.save(env, raw, c.Args.Output)
}

type envVerifyCommand struct {
	Args struct {
		Input string `positional-arg-name:"IN"`
	} `positional-args:"yes" required:"yes"`
}

func (c *envVerifyCommand) Execute(args []string) error {
	raw, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}
	if simg.IsWrapped(raw) {
		if err := simg.VerifyChecksum(raw); err != nil {
			return err
		}
	}
	if err := ubootenv.VerifyChecksum(raw); err != nil {
		return err
	}
	fmt.Println(res.Label("env", "checksum-ok"))
	return nil
}
