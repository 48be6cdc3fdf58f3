package appenv

import (
	"AppBuilder/internal/logger"
	"AppBuilder/internal/system"
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Var is one assignment for SetAll.
type Var struct {
	Key   string
	Value string
}

// Set sets the variable in the file.
// If it exists, it replaces the first occurrence and removes others.
// If it doesn't exist, it appends to the end.
func Set(ctx context.Context, key, value, file string) error {
	return setInFile(ctx, file, []string{key}, []string{quoteLine(key, value)})
}

// SetAll sets every variable with a single rewrite of the file, keeping the order of vars
// for the ones that are appended.
func SetAll(ctx context.Context, file string, vars []Var) error {
	keys := make([]string, 0, len(vars))
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		keys = append(keys, v.Key)
		lines = append(lines, quoteLine(v.Key, v.Value))
	}
	return setInFile(ctx, file, keys, lines)
}

// quoteLine uses single quotes and escapes internal single quotes.
func quoteLine(key, value string) string {
	escapedVal := strings.ReplaceAll(value, "'", `'"'"'`)
	return fmt.Sprintf("%s='%s'", key, escapedVal)
}

func setInFile(ctx context.Context, file string, keys, newLines []string) error {
	var lines []string
	found := make([]bool, len(keys))

	content, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		scanner := bufio.NewScanner(strings.NewReader(string(content)))
	lineLoop:
		for scanner.Scan() {
			line := scanner.Text()
			for i, key := range keys {
				if !keyRegex(key).MatchString(line) {
					continue
				}
				if !found[i] {
					lines = append(lines, newLines[i])
					found[i] = true
				}
				// Skip subsequent occurrences to avoid duplicates
				continue lineLoop
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	for i := range keys {
		if !found[i] {
			lines = append(lines, newLines[i])
		}
	}

	for _, key := range keys {
		logger.Debug(ctx, "Setting '{{_Var_}}%s{{|-|}}' in '{{_File_}}%s{{|-|}}'.", key, file)
	}
	return writeLines(ctx, lines, file)
}

func writeLines(ctx context.Context, lines []string, file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	// Secrets live here; keep the file private to the owner.
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := bufio.NewWriter(f)
	for _, line := range lines {
		writer.WriteString(line + "\n")
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	system.TakeOwnership(ctx, file)
	return nil
}
