package cmd

import (
	"AppBuilder/internal/assets"
	"AppBuilder/internal/config"
	"AppBuilder/internal/console"
	"AppBuilder/internal/docker"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/paths"
	"AppBuilder/internal/prompt"
	"AppBuilder/internal/setup"
	"AppBuilder/internal/tasks"
	"AppBuilder/internal/version"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// stackChecker builds the Docker check setup runs before regenerating files.
var stackChecker = func() setup.StackChecker {
	return docker.NewStackChecker()
}

// Execute runs inv and returns the process exit code.
func Execute(ctx context.Context, inv Invocation) int {
	switch {
	case inv.Debug:
		logger.SetLevel(logger.LevelDebug)
	case inv.Verbose:
		logger.SetLevel(logger.LevelInfo)
	}
	defer logger.SetLevel(logger.LevelNotice)

	cmdStr := strings.TrimSpace(version.CommandName + " " + strings.Join(inv.Args, " "))
	logger.Info(ctx, "%s command: '{{_UserCommand_}}%s{{|-|}}'", version.ApplicationName, cmdStr)
	logger.Debug(ctx, "Execution Args -> Command: %s, Options: %v, Yes: %t, Dir: '%s'", inv.Command, inv.Options, inv.Yes, inv.Dir)

	err := run(ctx, inv)
	if err == nil || errors.Is(err, ErrHelp) {
		return 0
	}
	logger.Error(ctx, "%v", err)
	return 1
}

func run(ctx context.Context, inv Invocation) error {
	switch inv.Command {
	case "help":
		PrintHelp(inv.HelpTarget)
		return ErrHelp
	case "version":
		handleVersion()
		return nil
	}

	project, err := newProject(ctx, inv)
	if err != nil {
		return err
	}

	opts := inv.Options
	if opts == nil {
		opts = options.New()
	}

	if inv.Command == DefaultCommand {
		return setup.New(project, stackChecker()).Run(ctx, opts)
	}

	task, ok := taskFor(project, inv.Command)
	if !ok {
		return fmt.Errorf("unknown command '%s'", inv.Command)
	}
	if err := task.Run(ctx, opts); err != nil {
		return err
	}
	logger.Notice(ctx, "{{_RunningCommand_}}%s{{|-|}} configuration complete.", inv.Command)
	return nil
}

func newProject(ctx context.Context, inv Invocation) (tasks.Project, error) {
	dir, err := paths.ProjectDir(inv.Dir)
	if err != nil {
		return tasks.Project{}, fmt.Errorf("project folder: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return tasks.Project{}, fmt.Errorf("project folder: %w", err)
	}
	if !info.IsDir() {
		return tasks.Project{}, fmt.Errorf("project folder '%s' is not a folder", dir)
	}

	if !inv.Yes && !console.IsInteractive() {
		logger.Info(ctx, "Input is not a terminal, answers are read line by line. Use '{{_UserCommand_}}-y{{|-|}}' to take the defaults.")
	}
	conf := config.LoadAppConfig(ctx)
	if conf.TemplatesDir != "" {
		logger.Debug(ctx, "Templates folder: '{{_Folder_}}%s{{|-|}}'", conf.TemplatesDir)
	}
	return tasks.Project{
		Dir:       dir,
		Asker:     prompt.For(inv.Yes),
		Templates: assets.Templates(conf.TemplatesDir),
		Config:    conf,
	}, nil
}

func taskFor(project tasks.Project, command string) (tasks.Runner, bool) {
	set := tasks.NewSet(project)
	switch command {
	case "ssl":
		return set.SSL, true
	case "db":
		return set.DB, true
	case "bot":
		return set.Bot, true
	case "smtp":
		return set.Email, true
	}
	return nil, false
}

func handleVersion() {
	fmt.Fprintln(console.Stdout, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version)))
	fmt.Fprintf(console.Stdout, "commit %s, built %s\n", version.Commit, version.BuildDate)
}
