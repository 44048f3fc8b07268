package ubootenv

import (
	"fmt"
	"strings"
)

// Boot command syntax.
const (
	// CommandSeparator joins the commands of a boot script
	CommandSeparator = "; "

	// SequenceSeparator chains commands that run while the previous succeeded
	SequenceSeparator = " && "

	// retryTemplate loops forever around a single command
	retryTemplate = "while true\ndo\n%s\nsleep 1\ndone"

	// retryPrefix identifies a retry loop
	retryPrefix = "while true"

	// retryBodyLine is the line of the loop holding the repeated command
	retryBodyLine = 2
)

// Command is one node of a boot script as stored in bootcmd_default.
// The concrete types are Run, SetEnv, Sequence, Reset, Retry and Raw.
type Command interface {
	// String renders the command in U-Boot shell syntax
	String() string

	isCommand()
}

// Run runs the script held in another variable: "run <Name>".
type Run struct {
	Name string
}

// SetEnv assigns a variable: "setenv <Var> <Value>".
type SetEnv struct {
	Var   string
	Value string
}

// Sequence chains commands with "&&".
type Sequence []Command

// Reset resets the processor.
type Reset struct{}

// Retry repeats Cmd forever, sleeping one second between attempts.
type Retry struct {
	Cmd Command
}

// Raw is command text that matched none of the other forms.
type Raw string

func (Run) isCommand()      {}
func (SetEnv) isCommand()   {}
func (Sequence) isCommand() {}
func (Reset) isCommand()    {}
func (Retry) isCommand()    {}
func (Raw) isCommand()      {}

func (c Run) String() string {
	return "run " + c.Name
}

func (c SetEnv) String() string {
	return "setenv " + c.Var + " " + c.Value
}

func (c Sequence) String() string {
	parts := make([]string, len(c))
	for i, cmd := range c {
		parts[i] = cmd.String()
	}
	return strings.Join(parts, SequenceSeparator)
}

func (Reset) String() string {
	return "reset"
}

func (c Retry) String() string {
	return fmt.Sprintf(retryTemplate, c.Cmd.String())
}

func (c Raw) String() string {
	return string(c)
}

// ParseCommands splits a boot script into its commands.
// An empty script has no commands.
func ParseCommands(script string) []Command {
	if script == "" {
		return nil
	}

	texts := strings.Split(script, CommandSeparator)
	cmds := make([]Command, len(texts))
	for i, text := range texts {
		cmds[i] = ParseCommand(text)
	}
	return cmds
}

// FormatCommands renders commands as a boot script.
func FormatCommands(cmds []Command) string {
	texts := make([]string, len(cmds))
	for i, cmd := range cmds {
		texts[i] = cmd.String()
	}
	return strings.Join(texts, CommandSeparator)
}

// ParseCommand parses a single boot command. Text that does not render
// back to exactly itself is returned as Raw.
//
// A retry loop is recognized by its "while true" prefix alone; the
// repeated command is taken from the loop's third line.
func ParseCommand(text string) Command {
	if strings.HasPrefix(text, retryPrefix) {
		lines := strings.Split(text, "\n")
		if len(lines) <= retryBodyLine {
			return Raw(text)
		}
		return Retry{Cmd: ParseCommand(lines[retryBodyLine])}
	}

	parts := strings.Split(text, SequenceSeparator)
	if len(parts) == 1 {
		return parseSimple(text)
	}

	seq := make(Sequence, len(parts))
	for i, part := range parts {
		seq[i] = parseSimple(part)
	}
	return seq
}

func parseSimple(text string) Command {
	var cmd Command = Raw(text)

	fields := strings.Fields(text)
	switch {
	case text == "reset":
		cmd = Reset{}
	case len(fields) == 2 && fields[0] == "run":
		cmd = Run{Name: fields[1]}
	case len(fields) == 3 && fields[0] == "setenv":
		cmd = SetEnv{Var: fields[1], Value: fields[2]}
	}

	if cmd.String() != text {
		return Raw(text)
	}
	return cmd
}
