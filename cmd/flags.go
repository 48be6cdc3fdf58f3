package cmd

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Commands lists the command words in the order usage shows them.
var Commands = []string{"setup", "ssl", "db", "bot", "smtp", "version", "help"}

// DefaultCommand runs when no command word is given.
const DefaultCommand = "setup"

type flagKind int

const (
	boolFlag flagKind = iota
	intFlag
	stringFlag
)

type flagDef struct {
	name  string
	kind  flagKind
	usage string
}

var setupFlags = []flagDef{
	{"port", intFlag, "port to listen on"},
	{"tag", stringFlag, "Docker tag of the containers (master, develop)"},
	{"stack", stringFlag, "Docker Stack reference of this install"},
	{"name", stringFlag, "sub folder of the project receiving the support scripts"},
	{"exposeDB", boolFlag, "publish the DB port on the host"},
	{"portDB", intFlag, "host port of the DB"},
}

// taskNamespaces is the order the delegated commands appear in setup.
var taskNamespaces = []string{"ssl", "db", "bot", "smtp"}

var taskFlags = map[string][]flagDef{
	"ssl": {
		{"self", boolFlag, "generate a self-signed certificate"},
		{"none", boolFlag, "do not use SSL"},
		{"pathKey", stringFlag, "path of an existing SSL key"},
		{"pathCert", stringFlag, "path of an existing SSL certificate"},
	},
	"db": {
		{"password", stringFlag, "password of the DB user"},
	},
	"bot": {
		{"dhEnable", boolFlag, "enable the Docker Hub webhook"},
		{"dhPort", intFlag, "port of the Docker Hub webhook"},
		{"botEnable", boolFlag, "enable the #Slack bot"},
		{"botToken", stringFlag, "#Slack bot API token"},
		{"botName", stringFlag, "name displayed for the #Slack bot"},
		{"slackChannel", stringFlag, "#Slack channel to interact with"},
		{"hosttcpport", intFlag, "(on Mac OS) host port for the command processor"},
	},
	"smtp": {
		{"smtpEnabled", boolFlag, "enable notification emails"},
		{"smtpHost", stringFlag, "SMTP server host"},
		{"smtpTLS", boolFlag, "use TLS"},
		{"smtpPort", intFlag, "SMTP server port"},
		{"smtpAuth", stringFlag, "authentication (plain, login, none)"},
		{"smtpAuthUser", stringFlag, "SMTP user"},
		{"smtpAuthPass", stringFlag, "SMTP password"},
	},
}

func addModifiers(fs *pflag.FlagSet) {
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.BoolP("debug", "x", false, "Debug output")
	fs.BoolP("yes", "y", false, "Assume the default answer")
	fs.BoolP("help", "h", false, "Show help")
	fs.String("dir", "", "Project directory")
}

func addDefs(fs *pflag.FlagSet, prefix string, defs []flagDef) {
	for _, d := range defs {
		switch d.kind {
		case boolFlag:
			fs.Bool(prefix+d.name, false, d.usage)
		case intFlag:
			fs.Int(prefix+d.name, 0, d.usage)
		default:
			fs.String(prefix+d.name, "", d.usage)
		}
	}
}

// NewFlagSet returns the flags accepted by command.
// Delegated commands accept their flags with or without the namespace prefix.
func NewFlagSet(command string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	addModifiers(fs)

	switch command {
	case DefaultCommand:
		addDefs(fs, "", setupFlags)
		for _, ns := range taskNamespaces {
			addDefs(fs, ns+".", taskFlags[ns])
		}
	default:
		if defs, ok := taskFlags[command]; ok {
			addDefs(fs, "", defs)
			addDefs(fs, command+".", defs)
		}
	}
	return fs
}

// knownCommand reports whether word is a command.
func knownCommand(word string) bool {
	for _, c := range Commands {
		if c == word {
			return true
		}
	}
	return false
}

// optionKey maps a flag name onto its options bag key for command.
func optionKey(command, flagName string) string {
	if command == DefaultCommand {
		return flagName
	}
	if key, ok := strings.CutPrefix(flagName, command+"."); ok {
		return key
	}
	return flagName
}

func isModifier(name string) bool {
	switch name {
	case "verbose", "debug", "yes", "help", "dir":
		return true
	}
	return false
}
