package tasks

import (
	"AppBuilder/internal/appenv"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SMTP auth methods.
const (
	authPlain = "plain"
	authLogin = "login"
	authNone  = "none"
)

// Email configures the SMTP relay used for notification emails.
type Email struct {
	Project
}

// Run asks for the SMTP settings not given and writes the SMTP_* variables.
func (t *Email) Run(ctx context.Context, opts options.Options) error {
	enabled := func(o options.Options) bool { return o.Bool("smtpEnabled") }
	stored := t.stored(ctx)

	first := []prompt.Question{
		{
			Name:    "smtpEnabled",
			Kind:    prompt.Confirm,
			Message: "Send notification emails through an SMTP server?",
			Default: yesNo(stored["SMTP_ENABLE"], "n"),
		},
		{
			Name:     "smtpHost",
			Message:  "SMTP host:",
			Default:  stored["SMTP_HOST"],
			When:     enabled,
			Required: true,
		},
		{
			Name:    "smtpTLS",
			Kind:    prompt.Confirm,
			Message: "Use TLS?",
			Default: yesNo(stored["SMTP_TLS"], "y"),
			When:    enabled,
		},
	}
	if err := prompt.AskAll(ctx, t.Asker, first, opts); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	// The port default follows the TLS answer unless a port was stored
	defaultPort := "25"
	if opts.Bool("smtpTLS") {
		defaultPort = "465"
	}
	storedAuth := strings.ToLower(orDefault(stored["SMTP_AUTH"], authPlain))
	authNeeded := func(o options.Options) bool {
		return enabled(o) && strings.ToLower(o.StringOr("smtpAuth", authPlain)) != authNone
	}
	second := []prompt.Question{
		{
			Name:     "smtpPort",
			Message:  "SMTP port:",
			Default:  orDefault(stored["SMTP_PORT"], defaultPort),
			When:     enabled,
			Validate: prompt.ValidatePort,
		},
		{
			Name:     "smtpAuth",
			Message:  "Authentication method (plain, login, none):",
			Default:  storedAuth,
			When:     enabled,
			Filter:   prompt.LowerOr(authPlain),
			Validate: prompt.OneOf(authPlain, authLogin, authNone),
		},
		{
			Name:     "smtpAuthUser",
			Message:  "SMTP user:",
			Default:  stored["SMTP_USER"],
			When:     authNeeded,
			Required: true,
		},
		{
			Name:     "smtpAuthPass",
			Kind:     prompt.Password,
			Message:  "SMTP password:",
			Default:  stored["SMTP_PASSWORD"],
			When:     authNeeded,
			Required: true,
		},
	}
	if err := prompt.AskAll(ctx, t.Asker, second, opts); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	vars := []appenv.Var{{Key: "SMTP_ENABLE", Value: boolString(enabled(opts))}}
	if enabled(opts) {
		port, _ := strconv.Atoi(defaultPort)
		auth := strings.ToLower(opts.StringOr("smtpAuth", authPlain))
		if err := prompt.OneOf(authPlain, authLogin, authNone)(auth); err != nil {
			return fmt.Errorf("smtp: smtpAuth: %w", err)
		}
		vars = append(vars,
			appenv.Var{Key: "SMTP_HOST", Value: opts.String("smtpHost")},
			appenv.Var{Key: "SMTP_PORT", Value: strconv.Itoa(opts.IntOr("smtpPort", port))},
			appenv.Var{Key: "SMTP_TLS", Value: boolString(opts.Bool("smtpTLS"))},
			appenv.Var{Key: "SMTP_AUTH", Value: auth},
		)
		if auth != authNone {
			vars = append(vars,
				appenv.Var{Key: "SMTP_USER", Value: opts.String("smtpAuthUser")},
				appenv.Var{Key: "SMTP_PASSWORD", Value: opts.String("smtpAuthPass")},
			)
		}
	}

	if err := appenv.SetAll(ctx, t.EnvFile(), vars); err != nil {
		return fmt.Errorf("smtp: writing %s: %w", t.EnvFile(), err)
	}
	if enabled(opts) {
		logger.Notice(ctx, "    Notification Email: '{{_Value_}}%s:%s{{|-|}}'", opts.String("smtpHost"), opts.String("smtpPort"))
	} else {
		logger.Notice(ctx, "    Notification Email: disabled")
	}
	return nil
}
