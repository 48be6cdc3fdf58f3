package constants

// Folder Names
const (
	SetupTemplatesDirName = "setup"
	SSLDirName            = "data/ssl"
	NginxConfigDirName    = "config/nginx"
)

// File Names
const (
	AppConfigFileName = "appbuilder.toml"
	LogFileName       = "appbuilder.log"
	LockFileName      = ".appbuilder.lock"
	EnvFileName       = ".env"
	SSLKeyFileName    = "ssl.key"
	SSLCertFileName   = "ssl.crt"
	NginxSourceName   = "source.nginx.conf"
	NginxConfigName   = "default.conf"
)

// SourceFilePrefix marks a template that renders into a generated file.
const SourceFilePrefix = "source."

// GeneratedFiles maps a source template to the file it generates.
// The order of GeneratedFileSources is the processing order.
var GeneratedFiles = map[string]string{
	"source.dbinit-compose.yml":     "dbinit-compose.yml",
	"source.docker-compose.yml":     "docker-compose.yml",
	"source.docker-compose.dev.yml": "docker-compose.dev.yml",
}

// GeneratedFileSources lists the keys of GeneratedFiles in a stable order.
var GeneratedFileSources = []string{
	"source.dbinit-compose.yml",
	"source.docker-compose.yml",
	"source.docker-compose.dev.yml",
}

// Defaults
const (
	DefaultStack        = "ab"
	DefaultPort         = 80
	DefaultTag          = "master"
	DefaultPortDB       = 3306
	HiddenPortDB        = "8889"
	DefaultDHPort       = 14000
	DefaultBotName      = "ab_bot"
	DefaultSlackChannel = "ab_notifications"
	DefaultHostTCPPort  = 1338
)

// DockerTags are the image tags a stack can run.
var DockerTags = []string{"master", "develop"}

// Option namespaces handed to the delegated tasks.
const (
	NamespaceSSL  = "ssl"
	NamespaceDB   = "db"
	NamespaceBot  = "bot"
	NamespaceSMTP = "smtp"
)

// DockerStackLabel is the label Docker puts on containers of a deployed stack.
const DockerStackLabel = "com.docker.stack.namespace"
