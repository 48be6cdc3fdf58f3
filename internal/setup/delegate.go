package setup

import (
	"AppBuilder/internal/constants"
	"AppBuilder/internal/options"
	"AppBuilder/internal/tasks"
	"context"
	"strings"
)

// delegate runs task with opts and keeps what it collected for the summary.
func (w *Wizard) delegate(ctx context.Context, ns string, task tasks.Runner, opts options.Options) error {
	if err := task.Run(ctx, opts); err != nil {
		return err
	}
	w.answers[ns] = opts
	return nil
}

func (w *Wizard) setupSSL(ctx context.Context) error {
	return w.delegate(ctx, constants.NamespaceSSL, w.Tasks.SSL, w.opts.Sub(constants.NamespaceSSL))
}

func (w *Wizard) setupDB(ctx context.Context) error {
	return w.delegate(ctx, constants.NamespaceDB, w.Tasks.DB, w.opts.Sub(constants.NamespaceDB))
}

func (w *Wizard) setupBotManager(ctx context.Context) error {
	botOptions := options.Options{
		"dhEnable":  false,
		"dhPort":    constants.DefaultDHPort,
		"dockerTag": w.opts.String("tag"),
	}
	botOptions.Merge(w.opts.Sub(constants.NamespaceBot))
	if err := w.Tasks.Bot.Run(ctx, botOptions); err != nil {
		return err
	}
	// The tag is already listed as a setup option
	answers := botOptions.Clone()
	answers.Delete("dockerTag")
	w.answers[constants.NamespaceBot] = answers
	return nil
}

// setupNotificationEmail only passes the dotted smtp.* keys.
func (w *Wizard) setupNotificationEmail(ctx context.Context) error {
	emailOptions := options.New()
	prefix := constants.NamespaceSMTP + "."
	for _, k := range w.opts.Keys() {
		if rest, ok := strings.CutPrefix(k, prefix); ok && rest != "" {
			emailOptions.Set(rest, w.opts[k])
		}
	}
	return w.delegate(ctx, constants.NamespaceSMTP, w.Tasks.Email, emailOptions)
}
