package config

import (
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/paths"
	"AppBuilder/internal/version"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Version  string         `toml:"version"`
	Defaults DefaultsConfig `toml:"defaults"`
	Paths    PathConfig     `toml:"paths"`
	UI       UIConfig       `toml:"ui"`

	// Runtime only, not saved to TOML
	TemplatesDir string `toml:"-"`
}

// DefaultsConfig holds the answers offered when a question is asked.
type DefaultsConfig struct {
	Stack        string `toml:"stack"`
	Port         int    `toml:"port"`
	Tag          string `toml:"tag"`
	PortDB       int    `toml:"port_db"`
	BotName      string `toml:"bot_name"`
	SlackChannel string `toml:"slack_channel"`
}

// PathConfig holds directory path settings.
type PathConfig struct {
	// TemplatesFolder replaces the embedded templates when set.
	TemplatesFolder string `toml:"templates_folder"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	LineCharacters bool `toml:"line_characters"`
}

// Default returns the built in configuration.
func Default() AppConfig {
	return AppConfig{
		Version: version.Version,
		Defaults: DefaultsConfig{
			Stack:        constants.DefaultStack,
			Port:         constants.DefaultPort,
			Tag:          constants.DefaultTag,
			PortDB:       constants.DefaultPortDB,
			BotName:      constants.DefaultBotName,
			SlackChannel: constants.DefaultSlackChannel,
		},
		UI: UIConfig{
			LineCharacters: true,
		},
	}
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// Anything else is read from the environment.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing file is created with the defaults. A file that cannot be read or
// parsed is left untouched and the defaults are used for this run.
func LoadAppConfig(ctx context.Context) AppConfig {
	conf := Default()
	path := paths.GetConfigFilePath()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := SaveAppConfig(conf); err != nil {
			logger.Debug(ctx, "Could not write '{{_File_}}%s{{|-|}}': %v", path, err)
		}
		return conf
	}
	if err != nil {
		logger.Warn(ctx, "Failed to read '{{_File_}}%s{{|-|}}', using defaults: %v", path, err)
		return conf
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		logger.Warn(ctx, "Failed to parse '{{_File_}}%s{{|-|}}', using defaults: %v", path, err)
		return Default()
	}
	checkVersion(ctx, conf.Version)
	conf.fillDefaults()
	conf.TemplatesDir = ExpandVariables(conf.Paths.TemplatesFolder)
	return conf
}

// fillDefaults restores built in values for keys left empty in the file.
func (c *AppConfig) fillDefaults() {
	def := Default().Defaults
	if c.Defaults.Stack == "" {
		c.Defaults.Stack = def.Stack
	}
	if c.Defaults.Port == 0 {
		c.Defaults.Port = def.Port
	}
	if c.Defaults.Tag == "" {
		c.Defaults.Tag = def.Tag
	}
	if c.Defaults.PortDB == 0 {
		c.Defaults.PortDB = def.PortDB
	}
	if c.Defaults.BotName == "" {
		c.Defaults.BotName = def.BotName
	}
	if c.Defaults.SlackChannel == "" {
		c.Defaults.SlackChannel = def.SlackChannel
	}
}

// checkVersion warns when the file was written by a newer major version.
func checkVersion(ctx context.Context, stamp string) {
	if stamp == "" {
		return
	}
	fileVer, err := semver.NewVersion(stamp)
	if err != nil {
		logger.Debug(ctx, "Ignoring config version '{{_Version_}}%s{{|-|}}': %v", stamp, err)
		return
	}
	currentVer, err := semver.NewVersion(version.Version)
	if err != nil {
		return
	}
	if fileVer.Major() > currentVer.Major() {
		logger.Warn(ctx, "Configuration was written by {{_Version_}}%s{{|-|}}, newer than {{_Version_}}%s{{|-|}}. Some settings may be ignored.", fileVer, currentVer)
	}
}

// SaveAppConfig writes the configuration to appbuilder.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	conf.Version = version.Version
	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
