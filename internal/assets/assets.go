// Package assets carries the default project templates and copies them into a project.
package assets

import (
	"AppBuilder/internal/logger"
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var embeddedFS embed.FS

// Embedded returns the built in templates.
func Embedded() fs.FS {
	sub, err := fs.Sub(embeddedFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates returns the template set to use: dir when it is set and exists,
// with files missing from dir falling back to the built in ones.
func Templates(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return Embedded()
	}
	return Overlay(os.DirFS(dir), Embedded())
}

// overlayFS serves a file from the first layer that has it.
type overlayFS struct {
	layers []fs.FS
}

// Overlay stacks file systems; earlier layers win.
func Overlay(layers ...fs.FS) fs.FS {
	return overlayFS{layers: layers}
}

func (o overlayFS) Open(name string) (fs.File, error) {
	var firstErr error
	for _, layer := range o.layers {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return nil, firstErr
}

// CopyOptions controls ExtractFolder.
type CopyOptions struct {
	// Overwrite replaces files that already exist in the destination.
	Overwrite bool
}

// ExtractFolder copies srcDir of fsys into destDir. Shell scripts are made executable.
// It returns the destination paths of the files written.
func ExtractFolder(ctx context.Context, fsys fs.FS, srcDir, destDir string, opts CopyOptions) ([]string, error) {
	var written []string
	err := fs.WalkDir(fsys, srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath := strings.TrimPrefix(strings.TrimPrefix(p, srcDir), "/")
		if relPath == "" {
			return nil
		}

		targetPath := filepath.Join(destDir, filepath.FromSlash(relPath))
		if d.IsDir() {
			return os.MkdirAll(targetPath, 0755)
		}

		if !opts.Overwrite {
			if _, err := os.Stat(targetPath); err == nil {
				return nil
			}
		}

		logger.Info(ctx, "Copying template '{{_File_}}%s{{|-|}}'.", relPath)
		if err := copyFile(fsys, p, targetPath); err != nil {
			return err
		}
		written = append(written, targetPath)
		return nil
	})
	return written, err
}

// EnsureFile writes name from fsys to dest unless dest already exists.
// It reports whether the file was written.
func EnsureFile(ctx context.Context, fsys fs.FS, name, dest string) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	logger.Info(ctx, "Extracting default template '{{_File_}}%s{{|-|}}'.", name)
	if err := copyFile(fsys, name, dest); err != nil {
		return false, err
	}
	return true, nil
}

func copyFile(fsys fs.FS, name, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	srcFile, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	mode := os.FileMode(0644)
	if path.Ext(name) == ".sh" {
		mode = 0755
	}
	destFile, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}
	// OpenFile keeps the mode of an existing file
	return os.Chmod(dest, mode)
}
