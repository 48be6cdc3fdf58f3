package prompt

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// ValidatePort accepts a TCP port number.
func ValidatePort(answer string) error {
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("'%s' is not a valid port (1-65535)", answer)
	}
	return nil
}

// OneOf accepts one of choices, compared case-insensitively.
func OneOf(choices ...string) func(string) error {
	return func(answer string) error {
		if slices.ContainsFunc(choices, func(c string) bool { return strings.EqualFold(c, answer) }) {
			return nil
		}
		return fmt.Errorf("'%s' must be one of: %s", answer, strings.Join(choices, ", "))
	}
}

// FileExists accepts the path of an existing regular file.
func FileExists(answer string) error {
	info, err := os.Stat(answer)
	if err != nil {
		return fmt.Errorf("file '%s' not found", answer)
	}
	if info.IsDir() {
		return fmt.Errorf("'%s' is a folder, not a file", answer)
	}
	return nil
}

// LowerOr lowercases the answer and replaces an empty one with def.
func LowerOr(def string) func(string) string {
	return func(answer string) string {
		if answer == "" {
			return def
		}
		return strings.ToLower(answer)
	}
}
