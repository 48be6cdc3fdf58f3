package setup

import (
	"AppBuilder/internal/assets"
	"AppBuilder/internal/compose"
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/patch"
	"AppBuilder/internal/render"
	"AppBuilder/internal/system"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docker/go-units"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// removeGeneratedFiles deletes the generated files, remembering their contents for the
// change report. A file that cannot be removed is left for generateFiles to overwrite.
func (w *Wizard) removeGeneratedFiles(ctx context.Context) error {
	w.warnRunningStack(ctx)

	for _, src := range constants.GeneratedFileSources {
		file := w.Project.Path(constants.GeneratedFiles[src])
		if data, err := os.ReadFile(file); err == nil {
			w.previous[file] = data
		}
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Debug(ctx, "Could not remove '{{_File_}}%s{{|-|}}': %v", file, err)
		}
	}
	return nil
}

// warnRunningStack tells the operator that a running stack keeps its old settings until restarted.
func (w *Wizard) warnRunningStack(ctx context.Context) {
	if w.Docker == nil {
		return
	}
	running, err := w.Docker.RunningServices(ctx, w.stack())
	if err != nil {
		logger.Debug(ctx, "Docker engine not reachable: %v", err)
		return
	}
	if len(running) == 0 {
		return
	}
	logger.Warn(ctx, "Stack '{{_Stack_}}%s{{|-|}}' is running (%s).", w.stack(), strings.Join(running, ", "))
	logger.Warn(ctx, "Restart it to apply the new configuration.")
}

// generateFiles renders every source template into its generated file.
func (w *Wizard) generateFiles(ctx context.Context) error {
	templates := assets.Overlay(os.DirFS(w.Project.Dir), w.Project.Templates)
	data := w.opts.Nested()

	for _, src := range constants.GeneratedFileSources {
		if _, err := assets.EnsureFile(ctx, w.Project.Templates, src, w.Project.Path(src)); err != nil {
			logger.Debug(ctx, "Could not extract '{{_File_}}%s{{|-|}}': %v", src, err)
		}

		content, err := render.File(templates, src, data)
		if err != nil {
			return err
		}
		if !w.opts.Bool("exposeDB") {
			content = compose.HideDBPorts(content)
		}

		file := w.Project.Path(constants.GeneratedFiles[src])
		if err := w.validate(ctx, file, content); err != nil {
			return err
		}
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
		system.TakeOwnership(ctx, file)
		w.reportChange(ctx, file, content)
	}
	return nil
}

// validate rejects output that is not YAML; schema problems are only reported.
func (w *Wizard) validate(ctx context.Context, file, content string) error {
	if err := compose.CheckSyntax([]byte(content)); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := compose.ValidateSchema(ctx, file, []byte(content), w.stack()); err != nil {
		logger.Warn(ctx, "'{{_File_}}%s{{|-|}}' does not match the Compose schema: %v", filepath.Base(file), err)
	}
	return nil
}

// reportChange logs whether a generated file changed, with a line diff at debug level.
func (w *Wizard) reportChange(ctx context.Context, file, content string) {
	name := filepath.Base(file)
	size := units.HumanSize(float64(len(content)))

	old, existed := w.previous[file]
	switch {
	case !existed:
		logger.Info(ctx, "Created '{{_File_}}%s{{|-|}}' (%s).", name, size)
		return
	case string(old) == content:
		logger.Info(ctx, "'{{_File_}}%s{{|-|}}' unchanged (%s).", name, size)
		return
	}

	logger.Info(ctx, "Updated '{{_File_}}%s{{|-|}}' (%s).", name, size)
	for _, line := range lineDiff(string(old), content) {
		logger.Debug(ctx, "    %s", line)
	}
}

// lineDiff returns the changed lines prefixed with "-" or "+".
func lineDiff(old, new string) []string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []string
	for _, d := range diffs {
		prefix := ""
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, prefix+" "+line)
		}
	}
	return out
}

// scriptsDir is where the support scripts of this install live.
func (w *Wizard) scriptsDir() string {
	return w.Project.Path(w.opts.String("name"))
}

// copyTemplateFiles refreshes the support scripts from the templates, so patching
// always starts from the default stack name.
func (w *Wizard) copyTemplateFiles(ctx context.Context) error {
	written, err := assets.ExtractFolder(ctx, w.Project.Templates, constants.SetupTemplatesDirName, w.scriptsDir(), assets.CopyOptions{Overwrite: true})
	if err != nil {
		return fmt.Errorf("copying templates: %w", err)
	}
	for _, file := range written {
		system.TakeOwnership(ctx, file)
	}
	return nil
}

// patchDockerStack points the support scripts at this install's Docker stack.
func (w *Wizard) patchDockerStack(ctx context.Context) error {
	stack := w.stack()
	dir := w.scriptsDir()

	spaceTag := regexp.MustCompile(` ab`)
	prefixTag := regexp.MustCompile(`ab_`)
	entry := func(file string, tag *regexp.Regexp, replace string) patch.FilePatch {
		return patch.FilePatch{
			File:    filepath.Join(dir, file),
			Tag:     tag,
			Replace: replace,
			Log:     fmt.Sprintf("    Docker Stack: %s => {{_Stack_}}%s{{|-|}}", file, stack),
		}
	}

	return patch.Apply(ctx, []patch.FilePatch{
		entry("package.json", spaceTag, " "+stack),
		entry("cli.sh", prefixTag, stack+"_"),
		entry("Down.sh", spaceTag, " "+stack),
		entry("logs.js", prefixTag, stack+"_"),
		entry("UP.sh", spaceTag, " "+stack),
	})
}
