package appenv

import (
	"AppBuilder/internal/envutil"
	"os"
)

// ListVars returns every variable of the file with its parsed value.
// A missing file yields an empty map.
func ListVars(file string) (map[string]string, error) {
	vars := make(map[string]string)
	lines, err := envutil.ReadLines(file)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}
	for _, line := range lines {
		key, literal, ok := envutil.SplitLine(line)
		if !ok {
			continue
		}
		vars[key] = parseValue(literal)
	}
	return vars, nil
}
