package ubootenv

import (
	"fmt"
	"strconv"
	"strings"
)

// Variables that hold the boot order.
const (
	// VarBootCmdDefault is written by SetBootOrder and read first by BootOrder
	VarBootCmdDefault = "bootcmd_default"

	// VarBootCmd0 is read when bootcmd_default is not set
	VarBootCmd0 = "bootcmd0"

	// VarBootTargets lists targets when bootcmd0 is BootIterCommand
	VarBootTargets = "boot_targets"

	// VarBootDevice selects the SATA device and partition
	VarBootDevice = "bootdevice"

	// VarDevNum selects the device in older environments
	VarDevNum = "devnum"

	// BootIterCommand makes U-Boot walk boot_targets in order
	BootIterCommand = "run boot_iter"
)

// Boot order tokens.
const (
	TokenPXE   = "pxe"
	TokenDisk  = "disk"
	TokenRetry = "retry"
	TokenReset = "reset"
	TokenNone  = "none"
)

// Scripts run by the generated boot commands.
const (
	scriptPXE      = "bootcmd_pxe"
	scriptSATA     = "bootcmd_sata"
	scriptSCSI     = "bootcmd_scsi"
	scriptInitPXE  = "init_pxe"
	scriptInitSCSI = "init_scsi"
)

// boot_targets entries.
const (
	targetPXE  = "pxe"
	targetSCSI = "scsi"
)

// SetBootOrder encodes tokens as a boot script and stores it in
// bootcmd_default.
//
// Valid tokens:
//
//	pxe     - boot from the PXE server
//	disk    - boot from the default SATA device
//	diskX   - boot from SATA device X
//	diskX:Y - boot from SATA device X, partition Y
//	retry   - retry the last boot device forever
//	reset   - reset the processor after all devices fail
//	none    - clear the boot order (only on its own)
//
// retry and reset are flags and may appear anywhere in tokens.
//
// Example:
//
//	err := env.SetBootOrder([]string{"disk", "pxe", "retry"})
func (e *Env) SetBootOrder(tokens []string) error {
	cmds, err := EncodeBootOrder(tokens)
	if err != nil {
		return err
	}
	e.set(VarBootCmdDefault, FormatCommands(cmds))
	return nil
}

// EncodeBootOrder maps boot order tokens to boot commands.
func EncodeBootOrder(tokens []string) ([]Command, error) {
	var cmds []Command
	retry, reset := false, false

	for _, token := range tokens {
		switch {
		case token == TokenPXE:
			cmds = append(cmds, Run{Name: scriptPXE})
		case token == TokenDisk:
			cmds = append(cmds, Run{Name: scriptSATA})
		case strings.HasPrefix(token, TokenDisk):
			device, err := parseDevice(token)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, Sequence{
				SetEnv{Var: VarBootDevice, Value: device},
				Run{Name: scriptSATA},
			})
		case token == TokenRetry:
			retry = true
		case token == TokenReset:
			reset = true
		case token == TokenNone && len(tokens) == 1:
			return nil, nil
		case token == TokenNone:
			return nil, &InvalidBootDeviceError{Device: token, Reason: "cannot be combined with other tokens"}
		default:
			return nil, &InvalidBootDeviceError{Device: token}
		}
	}

	switch {
	case retry && reset:
		return nil, &ConflictingModifiersError{}
	case retry:
		if len(cmds) == 0 {
			return nil, &InvalidBootDeviceError{Device: TokenRetry, Reason: "no boot device to retry"}
		}
		last := len(cmds) - 1
		cmds[last] = Retry{Cmd: cmds[last]}
	case reset:
		cmds = append(cmds, Reset{})
	}

	return cmds, nil
}

// parseDevice turns "diskX" or "diskX:Y" into the bootdevice value "X" or "X:Y".
func parseDevice(token string) (string, error) {
	device := strings.TrimPrefix(token, TokenDisk)
	dev, part, hasPart := strings.Cut(device, ":")

	d, err := strconv.ParseUint(dev, 10, 32)
	if err != nil {
		return "", &InvalidBootDeviceError{Device: token, Reason: "device must be a number"}
	}
	if !hasPart {
		return strconv.FormatUint(d, 10), nil
	}

	p, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return "", &InvalidBootDeviceError{Device: token, Reason: "partition must be a number"}
	}
	return fmt.Sprintf("%d:%d", d, p), nil
}

// BootOrder decodes the boot order tokens from the environment.
//
// When bootcmd0 is "run boot_iter" the order comes from boot_targets.
// Otherwise bootcmd_default is decoded, or bootcmd0 if bootcmd_default is
// not set. An empty boot order is reported as ["none"].
//
// BootOrder is not the exact inverse of SetBootOrder: it understands the
// legacy init_pxe/init_scsi and devnum forms, and the boot_iter path names
// scsi targets "disk".
func (e *Env) BootOrder() ([]string, error) {
	if e.Get(VarBootCmd0) == BootIterCommand {
		return decodeBootTargets(e.Get(VarBootTargets))
	}

	script, ok := e.Lookup(VarBootCmdDefault)
	if !ok {
		script = e.Get(VarBootCmd0)
	}
	return DecodeBootOrder(ParseCommands(script))
}

// DecodeBootOrder maps boot commands back to boot order tokens.
//
// Decoding stops after a reset command, and after the first retry loop,
// which is reported as the loop's device followed by "retry". A command
// starting with "setenv bootdevice" or "setenv devnum" selects the device
// named by its third field, whatever follows.
func DecodeBootOrder(cmds []Command) ([]string, error) {
	var tokens []string

	for _, cmd := range cmds {
		retry := false
		if r, ok := cmd.(Retry); ok {
			retry = true
			cmd = r.Cmd
		}

		token, err := tokenFor(cmd)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)

		if token == TokenReset {
			break
		}
		if retry {
			tokens = append(tokens, TokenRetry)
			break
		}
	}

	if len(tokens) == 0 {
		return []string{TokenNone}, nil
	}
	return tokens, nil
}

func tokenFor(cmd Command) (string, error) {
	if device, ok := deviceFor(cmd); ok {
		return TokenDisk + device, nil
	}

	switch c := cmd.(type) {
	case Run:
		switch c.Name {
		case scriptPXE:
			return TokenPXE, nil
		case scriptSATA:
			return TokenDisk, nil
		}
	case Sequence:
		switch {
		case c.runs(scriptInitPXE, scriptPXE):
			return TokenPXE, nil
		case c.runs(scriptInitSCSI, scriptSCSI):
			return TokenDisk, nil
		}
	case Reset:
		return TokenReset, nil
	}
	return "", &UnknownBootCommandError{Command: cmd.String()}
}

// deviceFor returns the device selected by a command that starts with
// "setenv bootdevice" or "setenv devnum": its third field, whatever follows.
func deviceFor(cmd Command) (string, bool) {
	text := cmd.String()
	if !strings.HasPrefix(text, "setenv "+VarBootDevice) && !strings.HasPrefix(text, "setenv "+VarDevNum) {
		return "", false
	}

	fields := strings.Fields(text)
	if len(fields) < 3 {
		return "", false
	}
	return fields[2], true
}

// runs reports whether c is exactly "run a && run b && ...".
func (c Sequence) runs(names ...string) bool {
	if len(c) != len(names) {
		return false
	}
	for i, name := range names {
		if r, ok := c[i].(Run); !ok || r.Name != name {
			return false
		}
	}
	return true
}

func decodeBootTargets(targets string) ([]string, error) {
	var tokens []string
	for _, target := range strings.Fields(targets) {
		switch target {
		case targetPXE:
			tokens = append(tokens, TokenPXE)
		case targetSCSI:
			tokens = append(tokens, TokenDisk)
		default:
			return nil, &UnknownBootCommandError{Target: target}
		}
	}

	if len(tokens) == 0 {
		return []string{TokenNone}, nil
	}
	return tokens, nil
}
