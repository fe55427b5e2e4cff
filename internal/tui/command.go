package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Composer commands.
const (
	CmdNew    = "new"
	CmdRename = "rename"
	CmdDelete = "delete"
	CmdPin    = "pin"
	CmdAttach = "attach"
	CmdDetach = "detach"
	CmdClear  = "clear"
	CmdRetry  = "retry"
	CmdHelp   = "help"
	CmdQuit   = "quit"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("missing argument")
)

// argRequired lists the commands that take an argument; false means the
// command takes none and any argument is ignored.
var argRequired = map[string]bool{
	CmdNew:    false,
	CmdRename: true,
	CmdDelete: false,
	CmdPin:    false,
	CmdAttach: true,
	CmdDetach: true,
	CmdClear:  false,
	CmdRetry:  false,
	CmdHelp:   false,
	CmdQuit:   false,
}

var aliases = map[string]string{
	"n":  CmdNew,
	"mv": CmdRename,
	"rm": CmdDelete,
	"a":  CmdAttach,
	"h":  CmdHelp,
	"?":  CmdHelp,
	"q":  CmdQuit,
}

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// IsCommand reports whether composer input should be parsed as a command
// rather than sent. A doubled slash sends the text literally.
func IsCommand(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, "/") && !strings.HasPrefix(input, "//")
}

// Unescape turns a literal "//text" into "/text".
func Unescape(input string) string {
	if strings.HasPrefix(strings.TrimSpace(input), "//") {
		return strings.Replace(input, "//", "/", 1)
	}
	return input
}

// ParseCommand parses composer input such as "/rename Trip plans".
func ParseCommand(input string) (Command, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "/")
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	if full, ok := aliases[cmd.Name]; ok {
		cmd.Name = full
	}

	needsArg, ok := argRequired[cmd.Name]
	if !ok {
		return Command{}, fmt.Errorf("%w: /%s", ErrUnknownCommand, cmd.Name)
	}
	if needsArg && cmd.Args == "" {
		return Command{}, fmt.Errorf("%w: /%s", ErrMissingArg, cmd.Name)
	}
	return cmd, nil
}

// Index parses a 1-based list position from the command arguments and
// returns it 0-based.
func (c Command) Index() (int, error) {
	n, err := strconv.Atoi(c.Args)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("/%s: %q is not a position", c.Name, c.Args)
	}
	return n - 1, nil
}
