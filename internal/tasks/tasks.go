// Package tasks holds the configuration steps that setup delegates to and that also run
// as stand-alone commands: ssl, db, bot and smtp.
//
// Every task asks only for the options its caller did not supply and stores the
// results in the project .env file, which the compose files interpolate.
package tasks

import (
	"AppBuilder/internal/appenv"
	"AppBuilder/internal/config"
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"context"
	"io/fs"
	"path/filepath"
)

// Runner is a configuration step.
type Runner interface {
	Run(ctx context.Context, opts options.Options) error
}

// Project is what every task needs to know about the install it configures.
type Project struct {
	// Dir is the absolute project directory.
	Dir string
	// Asker collects missing options.
	Asker prompt.Asker
	// Templates provides the source templates.
	Templates fs.FS
	// Config supplies the defaults offered to the operator.
	Config config.AppConfig
}

// EnvFile returns the path of the project .env file.
func (p Project) EnvFile() string {
	return filepath.Join(p.Dir, constants.EnvFileName)
}

// Path joins elem onto the project directory.
func (p Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Dir}, elem...)...)
}

// stored returns the variables a previous run wrote to the .env file.
// They are offered as defaults so a re-run does not ask for everything again.
func (p Project) stored(ctx context.Context) map[string]string {
	vars, err := appenv.ListVars(p.EnvFile())
	if err != nil {
		logger.Debug(ctx, "Reading '{{_File_}}%s{{|-|}}': %v", p.EnvFile(), err)
		return map[string]string{}
	}
	return vars
}

// Set holds the four delegated steps of setup.
type Set struct {
	SSL   Runner
	DB    Runner
	Bot   Runner
	Email Runner
}

// NewSet returns the standard tasks for project.
func NewSet(project Project) Set {
	return Set{
		SSL:   &SSL{Project: project},
		DB:    &DB{Project: project},
		Bot:   &BotManager{Project: project},
		Email: &Email{Project: project},
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func orDefault(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

// yesNo turns a stored boolean into a Confirm default.
func yesNo(value, def string) string {
	if value == "" {
		return def
	}
	if options.IsTruthy(value) {
		return "y"
	}
	return "n"
}
