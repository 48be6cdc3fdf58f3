// Package prompt asks the questions of a wizard for every option the caller has not supplied.
package prompt

import (
	"AppBuilder/internal/console"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind selects how a question is asked.
type Kind int

const (
	// Input reads a line of text.
	Input Kind = iota
	// Confirm asks a yes/no question and stores a bool.
	Confirm
	// Password reads a line of text without echo.
	Password
)

// Question describes one option to collect.
type Question struct {
	Name    string
	Kind    Kind
	Message string
	// Default is offered when the answer is empty. Confirm questions use "y" or "n".
	Default string
	// When, if set, must return true for the question to be asked.
	When func(opts options.Options) bool
	// Filter rewrites the raw answer before validation.
	Filter func(answer string) string
	// Validate returns an error describing why the answer is rejected.
	Validate func(answer string) error
	// Required rejects an empty answer.
	Required bool
}

// ErrRequired is returned when a required question gets no answer.
var ErrRequired = errors.New("an answer is required")

// Asker presents a question and returns the raw answer.
type Asker interface {
	Input(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
	Password(ctx context.Context, q Question) (string, error)
	// Interactive reports whether a rejected answer can be asked again.
	Interactive() bool
}

// AskAll asks every question whose Name is not already in opts and stores the answers.
// Questions are asked in order, so When can depend on earlier answers.
func AskAll(ctx context.Context, asker Asker, questions []Question, opts options.Options) error {
	for _, q := range questions {
		if opts.Has(q.Name) {
			logger.Trace(ctx, "Option '{{_Option_}}%s{{|-|}}' was given, not asking.", q.Name)
			continue
		}
		if q.When != nil && !q.When(opts) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		value, err := ask(ctx, asker, q)
		if err != nil {
			return fmt.Errorf("%s: %w", q.Name, err)
		}
		opts.Set(q.Name, value)
	}
	return nil
}

func ask(ctx context.Context, asker Asker, q Question) (any, error) {
	if q.Kind == Confirm {
		return asker.Confirm(ctx, q)
	}
	for {
		var (
			answer string
			err    error
		)
		if q.Kind == Password {
			answer, err = asker.Password(ctx, q)
		} else {
			answer, err = asker.Input(ctx, q)
		}
		if err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			answer = q.Default
		}
		if q.Filter != nil {
			answer = q.Filter(answer)
		}
		verr := check(q, answer)
		if verr == nil {
			return answer, nil
		}
		if !asker.Interactive() {
			return nil, verr
		}
		logger.Warn(ctx, "%v", verr)
	}
}

func check(q Question, answer string) error {
	if q.Required && answer == "" {
		return ErrRequired
	}
	if q.Validate != nil {
		return q.Validate(answer)
	}
	return nil
}

// TerminalAsker asks on the console.
type TerminalAsker struct{}

func (TerminalAsker) Input(_ context.Context, q Question) (string, error) {
	return console.InputPrompt(q.Message, q.Default)
}

func (TerminalAsker) Password(_ context.Context, q Question) (string, error) {
	return console.PasswordPrompt(q.Message)
}

func (TerminalAsker) Confirm(ctx context.Context, q Question) (bool, error) {
	def := "n"
	if options.IsTruthy(q.Default) {
		def = "y"
	}
	return console.ReadConfirm(ctx, logger.Notice, "{{_Prompt_}}? "+q.Message+"{{|-|}}", def)
}

func (TerminalAsker) Interactive() bool { return true }

// DefaultsAsker answers every question with its default, for unattended runs.
type DefaultsAsker struct{}

func (DefaultsAsker) Input(ctx context.Context, q Question) (string, error) {
	logger.Info(ctx, "Using default for '{{_Option_}}%s{{|-|}}': '{{_Value_}}%s{{|-|}}'", q.Name, q.Default)
	return q.Default, nil
}

func (DefaultsAsker) Password(_ context.Context, q Question) (string, error) {
	return q.Default, nil
}

func (DefaultsAsker) Confirm(ctx context.Context, q Question) (bool, error) {
	answer := options.IsTruthy(q.Default)
	logger.Info(ctx, "Using default for '{{_Option_}}%s{{|-|}}': '{{_Value_}}%t{{|-|}}'", q.Name, answer)
	return answer, nil
}

func (DefaultsAsker) Interactive() bool { return false }

// For returns the asker matching the run mode.
func For(assumeYes bool) Asker {
	if assumeYes {
		return DefaultsAsker{}
	}
	return TerminalAsker{}
}
