package console

import "strings"

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"
	CodeReverse   = "\033[7m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeRedBg = "\033[41m"
)

// semanticColors maps a semantic tag (lower case) to its ANSI sequence.
var semanticColors = map[string]string{
	"applicationname":        CodeCyan + CodeBold,
	"version":                CodeCyan,
	"usercommand":            CodeYellow,
	"usercommanderror":       CodeRed,
	"usercommanderrormarker": CodeRed + CodeBold,
	"usagecommand":           CodeYellow + CodeBold,
	"usageoption":            CodeGreen,
	"usagefile":              CodeMagenta,
	"usagevar":               CodeMagenta,
	"file":                   CodeMagenta,
	"folder":                 CodeMagenta,
	"var":                    CodeMagenta,
	"value":                  CodeCyan,
	"option":                 CodeGreen,
	"stack":                  CodeCyan + CodeBold,
	"runningcommand":         CodeBold,
	"failingcommand":         CodeRed,
	"highlight":              CodeYellow,
	"yes":                    CodeGreen,
	"no":                     CodeRed,
	"prompt":                 CodeBold,
	"default":                CodeDim,
	"traceheader":            CodeRed,
	"tracefooter":            CodeRed,
	"traceframenumber":       CodeDim,
	"traceframelines":        CodeDim,
	"tracesourcefile":        CodeMagenta,
	"tracelinenumber":        CodeMagenta + CodeBold,
	"tracefunction":          CodeGreen,
	"fatalfooter":            CodeRed,
}

// RegisterSemanticTag registers (or replaces) a semantic tag.
func RegisterSemanticTag(name, ansiValue string) {
	semanticColors[strings.ToLower(name)] = ansiValue
}
