package envutil

import (
	"bufio"
	"os"
	"strings"
)

// ReadLines reads the variable lines of an env file.
// Returns only lines that contain an assignment (VAR=value).
// Skips empty lines and comments.
func ReadLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.Contains(line, "=") {
			lines = append(lines, line)
		}
	}

	return lines, scanner.Err()
}

// SplitLine returns the trimmed key and the raw value of an assignment line.
func SplitLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	return key, value, key != ""
}
