package mpd

import (
	"strings"
)

// RawCommand is a command name plus its ordered arguments. Argument
// quoting is the encoder's responsibility; callers may pass arbitrary text.
type RawCommand struct {
	Name string
	Args []string
}

// NewRawCommand builds a RawCommand from a name and optional arguments.
func NewRawCommand(name string, args ...string) RawCommand {
	return RawCommand{Name: name, Args: args}
}

// AddArg appends an argument and returns the command for chaining.
func (c RawCommand) AddArg(arg string) RawCommand {
	c.Args = append(c.Args, arg)
	return c
}

// encode writes the command as a single terminated line, e.g. `play 3\n`.
func (c RawCommand) encode(b *strings.Builder) {
	b.WriteString(c.Name)
	for _, arg := range c.Args {
		b.WriteByte(' ')
		writeQuotedArg(b, arg)
	}
	b.WriteByte('\n')
}

func isBareArg(arg string) bool {
	if arg == "" {
		return false
	}
	for _, r := range arg {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '/' || r == ':' || r == '=' || r == '-':
		default:
			return false
		}
	}
	return true
}

func writeQuotedArg(b *strings.Builder, arg string) {
	if isBareArg(arg) {
		b.WriteString(arg)
		return
	}

	b.WriteByte('"')
	for _, r := range arg {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
}

// RawCommandList is a non-empty, ordered sequence of commands submitted
// together. When ListMarkers is true (the default for multi-command lists),
// the encoder wraps the list so the codec can recover one frame per command.
type RawCommandList struct {
	Commands    []RawCommand
	ListMarkers bool
}

// NewRawCommandList starts a list with a single command.
func NewRawCommandList(first RawCommand) RawCommandList {
	return RawCommandList{Commands: []RawCommand{first}, ListMarkers: true}
}

// NewRawCommandListOf builds a list from an existing slice of commands.
func NewRawCommandListOf(commands []RawCommand) RawCommandList {
	return RawCommandList{Commands: commands, ListMarkers: true}
}

// Add appends a command to the list.
func (l *RawCommandList) Add(cmd RawCommand) {
	l.Commands = append(l.Commands, cmd)
}

// Len reports the number of commands in the list.
func (l RawCommandList) Len() int {
	return len(l.Commands)
}

// Encode renders the list per §4.2: a single command is emitted bare, a list
// of more than one is wrapped in command_list_ok_begin/command_list_end
// when markers are requested.
func (l RawCommandList) Encode() string {
	var b strings.Builder

	if len(l.Commands) == 1 {
		l.Commands[0].encode(&b)
		return b.String()
	}

	if l.ListMarkers {
		b.WriteString("command_list_ok_begin\n")
	} else {
		b.WriteString("command_list_begin\n")
	}
	for _, cmd := range l.Commands {
		cmd.encode(&b)
	}
	b.WriteString("command_list_end\n")
	return b.String()
}
