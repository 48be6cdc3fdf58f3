// Package setup is the configuration wizard for an AppBuilder install.
//
// Run executes a fixed list of steps in order and stops at the first error:
// collect options, regenerate the compose files from their source templates,
// refresh and patch the support scripts, then hand over to the ssl, db, bot and
// smtp tasks.
package setup

import (
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/tasks"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another setup holds the project lock.
var ErrLocked = errors.New("another setup is running in this project")

// StackChecker reports the running containers of a stack.
type StackChecker interface {
	RunningServices(ctx context.Context, stack string) ([]string, error)
}

// Wizard runs setup for one project.
type Wizard struct {
	Project tasks.Project
	Tasks   tasks.Set
	// Docker is asked which containers of the stack are running; nil skips the check.
	Docker StackChecker
	// Summary prints the collected options when the run succeeds.
	Summary bool

	opts     options.Options
	answers  map[string]options.Options
	previous map[string][]byte
}

// New returns a wizard using the standard tasks.
func New(project tasks.Project, docker StackChecker) *Wizard {
	return &Wizard{
		Project: project,
		Tasks:   tasks.NewSet(project),
		Docker:  docker,
		Summary: true,
	}
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes the setup steps with the caller's options.
func (w *Wizard) Run(ctx context.Context, opts options.Options) error {
	lock := flock.New(filepath.Join(w.Project.Dir, constants.LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("locking %s: %w", w.Project.Dir, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, w.Project.Dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug(ctx, "Unlocking '{{_File_}}%s{{|-|}}': %v", lock.Path(), err)
		}
	}()

	w.opts = options.New()
	w.answers = map[string]options.Options{}
	w.previous = map[string][]byte{}

	steps := []step{
		{"options", func(context.Context) error { w.opts.Merge(opts); return nil }},
		{"questions", w.questions},
		{"remove generated files", w.removeGeneratedFiles},
		{"generate files", w.generateFiles},
		{"copy template files", w.copyTemplateFiles},
		{"patch docker stack", w.patchDockerStack},
		{"ssl", w.setupSSL},
		{"db", w.setupDB},
		{"bot manager", w.setupBotManager},
		{"notification email", w.setupNotificationEmail},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug(ctx, "Setup step: {{_Highlight_}}%s{{|-|}}", s.name)
		if err := s.run(ctx); err != nil {
			return err
		}
	}

	if w.Summary {
		w.printSummary()
	}
	logger.Notice(ctx, "Setup of stack '{{_Stack_}}%s{{|-|}}' complete.", w.stack())
	return nil
}

// Options returns the options of the last run.
func (w *Wizard) Options() options.Options {
	return w.opts
}

func (w *Wizard) stack() string {
	return w.opts.StringOr("stack", constants.DefaultStack)
}
