package tasks

import (
	"AppBuilder/internal/appenv"
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"context"
	"fmt"
	"runtime"
	"strconv"
)

// BotManager configures the bot that watches the stack and reports to Slack.
type BotManager struct {
	Project
	// GOOS overrides runtime.GOOS; the host TCP port is only needed on macOS.
	GOOS string
}

func (t *BotManager) goos() string {
	if t.GOOS != "" {
		return t.GOOS
	}
	return runtime.GOOS
}

func (t *BotManager) questions(stored map[string]string) []prompt.Question {
	enabled := func(o options.Options) bool { return o.Bool("botEnable") }
	def := t.Config.Defaults
	botName := orDefault(stored["BOT_NAME"], orDefault(def.BotName, constants.DefaultBotName))
	slackChannel := orDefault(stored["BOT_SLACK_CHANNEL"], orDefault(def.SlackChannel, constants.DefaultSlackChannel))

	return []prompt.Question{
		{
			Name:    "dhEnable",
			Kind:    prompt.Confirm,
			Message: "Enable the Docker Hub webhook listener?",
			Default: yesNo(stored["BOT_DOCKERHUB_ENABLE"], "n"),
		},
		{
			Name:     "dhPort",
			Message:  "Docker Hub webhook port:",
			Default:  orDefault(stored["BOT_DOCKERHUB_PORT"], strconv.Itoa(constants.DefaultDHPort)),
			When:     func(o options.Options) bool { return o.Bool("dhEnable") },
			Validate: prompt.ValidatePort,
		},
		{
			Name:    "botEnable",
			Kind:    prompt.Confirm,
			Message: "Enable the bot manager?",
			Default: yesNo(stored["BOT_ENABLE"], "n"),
		},
		{
			Name:     "botToken",
			Kind:     prompt.Password,
			Message:  "Slack bot token:",
			Default:  stored["BOT_TOKEN"],
			When:     enabled,
			Required: true,
		},
		{
			Name:    "botName",
			Message: "Bot name:",
			Default: botName,
			When:    enabled,
		},
		{
			Name:    "slackChannel",
			Message: "Slack channel for notifications:",
			Default: slackChannel,
			When:    enabled,
		},
		{
			Name:     "hosttcpport",
			Message:  "Host TCP port for the bot manager:",
			Default:  orDefault(stored["BOT_HOST_TCP_PORT"], strconv.Itoa(constants.DefaultHostTCPPort)),
			When:     func(o options.Options) bool { return enabled(o) && t.goos() == "darwin" },
			Validate: prompt.ValidatePort,
		},
	}
}

// Run asks for the bot settings not given and writes the BOT_* variables.
func (t *BotManager) Run(ctx context.Context, opts options.Options) error {
	if err := prompt.AskAll(ctx, t.Asker, t.questions(t.stored(ctx)), opts); err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	tag := opts.String("dockerTag")
	if tag == "" {
		tag = t.Config.Defaults.Tag
	}
	if tag == "" {
		tag = constants.DefaultTag
	}

	enabled := opts.Bool("botEnable")
	vars := []appenv.Var{
		{Key: "BOT_ENABLE", Value: boolString(enabled)},
		{Key: "BOT_DOCKERHUB_ENABLE", Value: boolString(opts.Bool("dhEnable"))},
		{Key: "BOT_DOCKERHUB_PORT", Value: strconv.Itoa(opts.IntOr("dhPort", constants.DefaultDHPort))},
		{Key: "BOT_DOCKER_TAG", Value: tag},
	}
	if enabled {
		vars = append(vars,
			appenv.Var{Key: "BOT_TOKEN", Value: opts.String("botToken")},
			appenv.Var{Key: "BOT_NAME", Value: opts.StringOr("botName", constants.DefaultBotName)},
			appenv.Var{Key: "BOT_SLACK_CHANNEL", Value: opts.StringOr("slackChannel", constants.DefaultSlackChannel)},
		)
		if t.goos() == "darwin" {
			vars = append(vars, appenv.Var{
				Key:   "BOT_HOST_TCP_PORT",
				Value: strconv.Itoa(opts.IntOr("hosttcpport", constants.DefaultHostTCPPort)),
			})
		}
	}

	if err := appenv.SetAll(ctx, t.EnvFile(), vars); err != nil {
		return fmt.Errorf("bot: writing %s: %w", t.EnvFile(), err)
	}
	if enabled {
		logger.Notice(ctx, "    Bot Manager: enabled as '{{_Value_}}%s{{|-|}}' in '{{_Value_}}%s{{|-|}}'", opts.StringOr("botName", constants.DefaultBotName), opts.StringOr("slackChannel", constants.DefaultSlackChannel))
	} else {
		logger.Notice(ctx, "    Bot Manager: disabled")
	}
	return nil
}
