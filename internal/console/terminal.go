package console

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Stdin, Stdout and Stderr are the streams prompts and output use.
// Tests swap them for buffers.
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// stdinFd returns the file descriptor of Stdin when it is a terminal.
func stdinFd() (int, bool) {
	f, ok := Stdin.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// IsInteractive reports whether prompts can be answered by a person.
func IsInteractive() bool {
	_, ok := stdinFd()
	return ok
}
