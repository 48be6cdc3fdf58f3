// Package patch applies regular expression replacements to files in place.
package patch

import (
	"AppBuilder/internal/logger"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
)

// FilePatch replaces every match of Tag in File with Replace.
type FilePatch struct {
	File    string
	Tag     *regexp.Regexp
	Replace string
	// Log is printed at notice level after the file is written.
	Log string
}

// Apply runs the patches in order. A file that does not exist is skipped with a warning;
// any other read or write failure stops the run.
func Apply(ctx context.Context, patches []FilePatch) error {
	for _, p := range patches {
		changed, err := applyOne(p)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn(ctx, "File '{{_File_}}%s{{|-|}}' does not exist, not patched.", p.File)
			continue
		}
		if err != nil {
			return err
		}
		if !changed {
			logger.Debug(ctx, "No matches in '{{_File_}}%s{{|-|}}'.", p.File)
		}
		if p.Log != "" {
			logger.Notice(ctx, p.Log)
		}
	}
	return nil
}

func applyOne(p FilePatch) (bool, error) {
	info, err := os.Stat(p.File)
	if err != nil {
		return false, err
	}
	content, err := os.ReadFile(p.File)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", p.File, err)
	}
	// Literal replacement: "$" in a stack name must not expand.
	patched := p.Tag.ReplaceAllLiteralString(string(content), p.Replace)
	if patched == string(content) {
		return false, nil
	}
	if err := os.WriteFile(p.File, []byte(patched), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", p.File, err)
	}
	return true, nil
}
