// Package compose post-processes and validates the generated docker compose files.
package compose

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

var (
	exposedDBPorts = regexp.MustCompile(`image:\s*mariadb\s*\n\s*ports:\s*\n\s*-`)
	hiddenDBPorts  = "image: mariadb\n    # ports:\n    #   -"
)

// HideDBPorts comments out the port mapping of the first mariadb service,
// so the database is only reachable inside the stack network.
func HideDBPorts(content string) string {
	loc := exposedDBPorts.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + hiddenDBPorts + content[loc[1]:]
}

// ErrSyntax marks a file that is not valid YAML.
var ErrSyntax = errors.New("invalid YAML")

// CheckSyntax reports whether content parses as YAML.
func CheckSyntax(content []byte) error {
	var dst map[string]any
	if err := yaml.Unmarshal(content, &dst); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return nil
}

// ValidateSchema loads content with the Compose SDK and checks it against the Compose schema.
// Variables are left uninterpolated because their values live in the project .env file.
func ValidateSchema(ctx context.Context, path string, content []byte, projectName string) error {
	configDetails := types.ConfigDetails{
		WorkingDir: filepath.Dir(path),
		ConfigFiles: []types.ConfigFile{
			{
				Filename: path,
				Content:  content,
			},
		},
		Environment: types.Mapping{},
	}

	_, err := loader.LoadWithContext(ctx, configDetails, func(options *loader.Options) {
		options.SetProjectName(loader.NormalizeProjectName(projectName), true)
		options.SkipInterpolation = true
		options.SkipValidation = false
		options.SkipNormalization = true
		options.SkipConsistencyCheck = true
		options.SkipResolveEnvironment = true
		options.SkipInclude = true
	})
	return err
}

// ValidateStackName accepts a name Docker can use as a stack or project name unchanged.
func ValidateStackName(name string) error {
	if name == "" || loader.NormalizeProjectName(name) != name {
		return fmt.Errorf("'%s' is not a valid stack name (lower case letters, digits, '-' and '_')", name)
	}
	return nil
}
