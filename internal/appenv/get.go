package appenv

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Get returns the value of the variable from the file.
// 1. Reads the file.
// 2. Finds the line definition.
// 3. Parses the value respecting quotes and comments.
// A missing file or variable yields "".
func Get(key, file string) (string, error) {
	literal, err := GetLiteral(key, file)
	if err != nil {
		return "", err
	}
	if literal == "" {
		return "", nil
	}
	return parseValue(literal), nil
}

// parseValue strips quotes and trailing comments from the right hand side of an assignment.
func parseValue(literal string) string {
	val := strings.TrimLeft(literal, " \t")

	// Quoted: everything up to the last matching quote
	if len(val) >= 2 {
		quote := val[0]
		if quote == '"' || quote == '\'' {
			if lastIdx := strings.LastIndexByte(val, quote); lastIdx > 0 {
				return unescape(val[1:lastIdx], quote)
			}
		}
	}

	// Unquoted: a comment starts at " #"; "Value#x" keeps its hash
	if idx := strings.Index(val, " #"); idx != -1 {
		return strings.TrimRight(val[:idx], " \t")
	}
	return strings.TrimRight(val, " \t")
}

// unescape reverses the single quote escaping Set writes.
func unescape(val string, quote byte) string {
	if quote != '\'' {
		return val
	}
	return strings.ReplaceAll(val, `'"'"'`, "'")
}

// GetLine returns the full line containing the variable definition.
func GetLine(key, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	re := keyRegex(key)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if re.MatchString(line) {
			return line, nil
		}
	}
	return "", scanner.Err()
}

// GetLiteral returns the raw value part (RHS) of the variable definition.
func GetLiteral(key, file string) (string, error) {
	line, err := GetLine(key, file)
	if err != nil || line == "" {
		return "", err
	}
	_, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return "", nil
	}
	return rhs, nil
}

// keyRegex matches the definition of key: ^\s*KEY\s*=
func keyRegex(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^\s*%s\s*=`, regexp.QuoteMeta(key)))
}
