package tasks

import (
	"AppBuilder/internal/appenv"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"context"
	"fmt"
)

// DB stores the database credentials.
type DB struct {
	Project
}

func (t *DB) questions(current string) []prompt.Question {
	message := "Enter the password for the DB root user:"
	if current != "" {
		message = "Enter the password for the DB root user (empty keeps the current one):"
	}
	return []prompt.Question{
		{
			Name:     "password",
			Kind:     prompt.Password,
			Message:  message,
			Default:  current,
			Required: true,
		},
	}
}

// Run asks for the root password unless given and writes MYSQL_PASSWORD.
// A password stored by an earlier run is kept when the answer is empty.
func (t *DB) Run(ctx context.Context, opts options.Options) error {
	current, err := appenv.Get("MYSQL_PASSWORD", t.EnvFile())
	if err != nil {
		logger.Debug(ctx, "Reading '{{_File_}}%s{{|-|}}': %v", t.EnvFile(), err)
	}
	if err := prompt.AskAll(ctx, t.Asker, t.questions(current), opts); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := appenv.Set(ctx, "MYSQL_PASSWORD", opts.String("password"), t.EnvFile()); err != nil {
		return fmt.Errorf("db: writing %s: %w", t.EnvFile(), err)
	}
	logger.Notice(ctx, "    DB: password stored in '{{_File_}}%s{{|-|}}'", t.EnvFile())
	return nil
}
