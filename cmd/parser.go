package cmd

import (
	"AppBuilder/internal/options"
	"AppBuilder/internal/version"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by a handler that printed usage instead of running.
var ErrHelp = errors.New("help shown")

// ParseError wraps argument parsing errors to provide rich output with the failing argument marked
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "ssl")
}

func (e *ParseError) Error() string {
	indent := "   "

	var cmdLineParts []string
	cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName))

	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := e.Args[i]
		if i == e.Index {
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}

	// 'appbuilder previous parts failing_part'
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	// Message might contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	replacer := strings.NewReplacer(
		"%c", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", e.FailingCommand),
		"%o", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt),
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(GetUsage(e.FailingCommand), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// Invocation is one parsed command line.
type Invocation struct {
	Command string
	// Options holds only the flags given on the command line.
	Options options.Options

	Verbose bool
	Debug   bool
	Yes     bool
	Dir     string

	// HelpTarget is the command whose usage "help" prints; empty means all.
	HelpTarget string

	// Args is the command line after short flag expansion.
	Args []string
}

type token struct {
	index int
	flag  *pflag.Flag // nil for a plain word
	value string
}

// Parse parses the raw command line arguments.
// The first word selects the command; flags may come before or after it.
func Parse(args []string) (Invocation, error) {
	expanded := expandShorts(args)
	inv := Invocation{Command: DefaultCommand, Options: options.New(), Args: expanded}

	// First pass locates the command word, skipping flag values
	located, _ := scan(expanded, -1, lookupAny, false)
	cmdIndex := -1
	for _, t := range located {
		if t.flag == nil {
			cmdIndex = t.index
			break
		}
	}
	if cmdIndex >= 0 {
		word := expanded[cmdIndex]
		if !knownCommand(word) {
			return inv, &ParseError{Args: expanded, Index: cmdIndex, Message: "Invalid command %o"}
		}
		inv.Command = word
	}

	fs := NewFlagSet(inv.Command)
	tokens, err := scan(expanded, cmdIndex, func(arg string) *pflag.Flag { return lookup(fs, arg) }, true)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.FailingCommand = inv.Command
		}
		return inv, err
	}

	var words []token
	for _, t := range tokens {
		if t.flag == nil {
			words = append(words, t)
			continue
		}
		if err := fs.Set(t.flag.Name, t.value); err != nil {
			return inv, &ParseError{
				Args:           expanded,
				Index:          t.index,
				Message:        fmt.Sprintf("Invalid value '%s' for option %%o.", t.value),
				FailingCommand: inv.Command,
			}
		}
	}

	if inv.Command == "help" {
		if len(words) > 0 {
			target := expanded[words[0].index]
			if !knownCommand(target) {
				return inv, &ParseError{Args: expanded, Index: words[0].index, Message: "Invalid command %o", FailingCommand: "help"}
			}
			inv.HelpTarget = target
			words = words[1:]
		}
	}
	if len(words) > 0 {
		return inv, &ParseError{Args: expanded, Index: words[0].index, Message: "Unexpected argument %o", FailingCommand: inv.Command}
	}

	inv.Verbose, _ = fs.GetBool("verbose")
	inv.Debug, _ = fs.GetBool("debug")
	inv.Yes, _ = fs.GetBool("yes")
	inv.Dir, _ = fs.GetString("dir")
	if help, _ := fs.GetBool("help"); help {
		if cmdIndex >= 0 && inv.Command != "help" {
			inv.HelpTarget = inv.Command
		}
		inv.Command = "help"
	}

	// Visit follows command line order, so a repeated option keeps its last value
	fs.Visit(func(f *pflag.Flag) {
		if isModifier(f.Name) {
			return
		}
		inv.Options.Set(optionKey(inv.Command, f.Name), flagValue(fs, f))
	})

	return inv, nil
}

// expandShorts splits combined short flags (-vy -> -v -y).
// The value of a string or int flag is kept as given, even when it starts with a dash.
func expandShorts(args []string) []string {
	var expanded []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 && !strings.Contains(arg, "=") {
			for _, c := range arg[1:] {
				expanded = append(expanded, fmt.Sprintf("-%c", c))
			}
			arg = expanded[len(expanded)-1]
		} else {
			expanded = append(expanded, arg)
		}
		if f := lookupAny(arg); f != nil && f.Value.Type() != "bool" && !strings.Contains(arg, "=") && i+1 < len(args) {
			i++
			expanded = append(expanded, args[i])
		}
	}
	return expanded
}

// scan splits args into flags with their values and plain words.
// The argument at skip is left out. In strict mode an unknown flag is an error.
func scan(args []string, skip int, lookup func(string) *pflag.Flag, strict bool) ([]token, error) {
	var tokens []token
	for i := 0; i < len(args); i++ {
		if i == skip {
			continue
		}
		arg := args[i]
		if arg == "--" {
			for j := i + 1; j < len(args); j++ {
				if j != skip {
					tokens = append(tokens, token{index: j})
				}
			}
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			tokens = append(tokens, token{index: i})
			continue
		}

		f := lookup(arg)
		if f == nil {
			if strict {
				return nil, &ParseError{Args: args, Index: i, Message: "Invalid option %o"}
			}
			continue
		}

		if _, value, ok := strings.Cut(arg, "="); ok {
			tokens = append(tokens, token{index: i, flag: f, value: value})
			continue
		}

		next := i + 1
		hasNext := next < len(args) && next != skip
		if f.Value.Type() == "bool" {
			// "--exposeDB false" works like "--exposeDB=false"
			if hasNext && isBoolWord(args[next]) {
				tokens = append(tokens, token{index: i, flag: f, value: strings.ToLower(args[next])})
				i++
				continue
			}
			tokens = append(tokens, token{index: i, flag: f, value: "true"})
			continue
		}

		if !hasNext || strings.HasPrefix(args[next], "--") {
			if strict {
				return nil, &ParseError{Args: args, Index: i, Message: "Option %o requires a value."}
			}
			continue
		}
		tokens = append(tokens, token{index: i, flag: f, value: args[next]})
		i++
	}
	return tokens, nil
}

func lookup(fs *pflag.FlagSet, arg string) *pflag.Flag {
	name, _, _ := strings.Cut(arg, "=")
	if long, ok := strings.CutPrefix(name, "--"); ok {
		return fs.Lookup(long)
	}
	short := strings.TrimPrefix(name, "-")
	if len(short) != 1 {
		return nil
	}
	return fs.ShorthandLookup(short)
}

// lookupAny finds arg in any command's flag set.
func lookupAny(arg string) *pflag.Flag {
	for _, c := range Commands {
		if f := lookup(NewFlagSet(c), arg); f != nil {
			return f
		}
	}
	return nil
}

func isBoolWord(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

func flagValue(fs *pflag.FlagSet, f *pflag.Flag) any {
	switch f.Value.Type() {
	case "bool":
		v, _ := fs.GetBool(f.Name)
		return v
	case "int":
		v, _ := fs.GetInt(f.Name)
		return v
	default:
		return f.Value.String()
	}
}
