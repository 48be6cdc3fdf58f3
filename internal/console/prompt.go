package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input stream ends before an answer was given.
var ErrNoInput = errors.New("no input available")

// Printer is a function compatible with logger.Notice
type Printer func(ctx context.Context, msg any, args ...any)

var lineReader *bufio.Reader

// SetInput replaces the prompt input stream.
func SetInput(r io.Reader) {
	Stdin = r
	lineReader = nil
}

func reader() *bufio.Reader {
	if lineReader == nil {
		lineReader = bufio.NewReader(Stdin)
	}
	return lineReader
}

// ReadConfirm asks a Yes/No question and waits for y, n or Enter.
// On a terminal a single key press answers; otherwise a line is read.
func ReadConfirm(ctx context.Context, printer Printer, question string, defaultValue string) (bool, error) {
	ynPrompt := "[YN]"
	if strings.EqualFold(defaultValue, "y") {
		ynPrompt = "[Yn]"
	} else if strings.EqualFold(defaultValue, "n") {
		ynPrompt = "[yN]"
	}

	printer(ctx, question+" "+ynPrompt)

	var (
		answer bool
		err    error
	)
	if fd, ok := stdinFd(); ok {
		answer, err = readConfirmRaw(fd, defaultValue)
	} else {
		answer, err = readConfirmLine(defaultValue)
	}
	if err != nil {
		return false, err
	}

	if answer {
		printer(ctx, "Answered: {{_Yes_}}Yes{{|-|}}")
	} else {
		printer(ctx, "Answered: {{_No_}}No{{|-|}}")
	}
	return answer, nil
}

func readConfirmRaw(fd int, defaultValue string) (bool, error) {
	oldState, err := term.MakeRaw(fd)
	if err == nil {
		defer term.Restore(fd, oldState)
	}

	b := make([]byte, 1)
	for {
		if _, err := Stdin.Read(b); err != nil {
			return false, ErrNoInput
		}
		switch strings.ToLower(string(b[0])) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		case "\r", "\n":
			if strings.EqualFold(defaultValue, "y") {
				return true, nil
			}
			if strings.EqualFold(defaultValue, "n") {
				return false, nil
			}
			// No default, ignore Enter
		case "\x03":
			return false, context.Canceled
		}
		// Ignore other keys
	}
}

func readConfirmLine(defaultValue string) (bool, error) {
	for {
		line, err := ReadLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		case "":
			if strings.EqualFold(defaultValue, "y") {
				return true, nil
			}
			if strings.EqualFold(defaultValue, "n") {
				return false, nil
			}
		}
	}
}

// InputPrompt prints message (with the default in brackets) and reads one line.
// The line is returned without its trailing newline; an empty line is returned as is.
func InputPrompt(message, defaultValue string) (string, error) {
	prompt := "{{_Prompt_}}? " + message + "{{|-|}}"
	if defaultValue != "" {
		prompt += " {{_Default_}}(" + defaultValue + "){{|-|}}"
	}
	fmt.Fprint(Stderr, ToANSI(prompt)+" ")
	return ReadLine()
}

// PasswordPrompt reads a secret without echo when Stdin is a terminal.
func PasswordPrompt(message string) (string, error) {
	fmt.Fprint(Stderr, ToANSI("{{_Prompt_}}? "+message+"{{|-|}}")+" ")
	if fd, ok := stdinFd(); ok {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return ReadLine()
}

// ReadLine reads one line from the prompt input.
func ReadLine() (string, error) {
	line, err := reader().ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
