package setup

import (
	"AppBuilder/internal/compose"
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"context"
	"fmt"
	"strconv"
)

func (w *Wizard) questionList() []prompt.Question {
	def := w.Project.Config.Defaults
	return []prompt.Question{
		{
			Name:     "stack",
			Message:  "What Docker Stack reference do you want this install to use:",
			Default:  orString(def.Stack, constants.DefaultStack),
			Validate: compose.ValidateStackName,
		},
		{
			Name:     "port",
			Message:  "What port do you want AppBuilder to listen on:",
			Default:  strconv.Itoa(orInt(def.Port, constants.DefaultPort)),
			Validate: prompt.ValidatePort,
		},
		{
			Name:    "exposeDB",
			Kind:    prompt.Confirm,
			Message: "Do you want to expose the DB:",
			Default: "n",
		},
		{
			Name:     "portDB",
			Message:  "What port do you want the DB to listen on:",
			Default:  strconv.Itoa(orInt(def.PortDB, constants.DefaultPortDB)),
			When:     func(o options.Options) bool { return o.Bool("exposeDB") },
			Validate: prompt.ValidatePort,
		},
		{
			Name:     "tag",
			Message:  "Which Docker Tags to use [master, develop]:",
			Default:  orString(def.Tag, constants.DefaultTag),
			Filter:   prompt.LowerOr(constants.DefaultTag),
			Validate: prompt.OneOf(constants.DockerTags...),
		},
	}
}

// questions asks for the options the caller left out and normalizes the ones given.
func (w *Wizard) questions(ctx context.Context) error {
	if err := prompt.AskAll(ctx, w.Project.Asker, w.questionList(), w.opts); err != nil {
		return err
	}

	// A given tag gets the same treatment as an answered one
	tag := prompt.LowerOr(constants.DefaultTag)(w.opts.String("tag"))
	if err := prompt.OneOf(constants.DockerTags...)(tag); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	w.opts.Set("tag", tag)

	if err := compose.ValidateStackName(w.stack()); err != nil {
		return fmt.Errorf("stack: %w", err)
	}

	if err := prompt.ValidatePort(w.opts.String("port")); err != nil {
		return fmt.Errorf("port: %w", err)
	}

	// The templates always reference portDB
	if !w.opts.Bool("exposeDB") {
		w.opts.Set("portDB", constants.HiddenPortDB)
	} else if err := prompt.ValidatePort(w.opts.String("portDB")); err != nil {
		return fmt.Errorf("portDB: %w", err)
	}

	logger.Info(ctx, "Using stack '{{_Stack_}}%s{{|-|}}', port '{{_Value_}}%s{{|-|}}', tag '{{_Value_}}%s{{|-|}}'.",
		w.stack(), w.opts.String("port"), tag)
	return nil
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
