package console

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

var (
	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct style codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-#]+)\|\}\}`)

	// preferredProfile stores the detected or forced color profile
	preferredProfile termenv.Profile
)

func init() {
	preferredProfile = detectProfile()
}

// GetPreferredProfile returns the detected or forced color profile
func GetPreferredProfile() termenv.Profile {
	return preferredProfile
}

// SetPreferredProfile explicitly sets the color profile (useful for testing)
func SetPreferredProfile(p termenv.Profile) {
	preferredProfile = p
}

func detectProfile() termenv.Profile {
	stat, err := os.Stdout.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) == 0 {
		return termenv.Ascii
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii
	}

	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	switch colorTerm {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	case "1bit", "2color", "mono", "false", "0":
		return termenv.Ascii
	}

	if strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return termenv.Ascii
	}

	return termenv.ColorProfile()
}

// ToANSI converts semantic and direct tags to ANSI escape sequences
// - {{_Tag_}} : Semantic lookup -> ANSI
// - {{|code|}} : Direct style (fg:bg:flags) -> ANSI
func ToANSI(text string) string {
	if preferredProfile == termenv.Ascii {
		return Strip(text)
	}

	text = semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.ToLower(match[3 : len(match)-3])
		if code, ok := semanticColors[content]; ok {
			return code
		}
		// Unknown semantic tag - strip it
		return ""
	})

	text = directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return parseStyleToANSI(strings.ToLower(match[3 : len(match)-3]))
	})

	return text
}

// Strip removes all semantic and direct tags from text, leaving plain text
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	text = directRegex.ReplaceAllString(text, "")
	return text
}

// StripANSI removes tags and any escape sequences already rendered into text.
func StripANSI(text string) string {
	return ansi.Strip(Strip(text))
}

var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// parseStyleToANSI parses fg:bg:flags format and returns ANSI codes
func parseStyleToANSI(content string) string {
	if content == "-" {
		return CodeReset
	}

	parts := strings.Split(content, ":")
	var codes strings.Builder

	colorSeq := func(name string, bg bool) {
		if name == "" || name == "-" {
			return
		}
		if idx, ok := namedColors[name]; ok {
			name = idx
		}
		seq := preferredProfile.Color(name)
		if seq == nil {
			return
		}
		codes.WriteString(wrapSequence(seq.Sequence(bg)))
	}

	if len(parts) > 0 {
		colorSeq(parts[0], false)
	}
	if len(parts) > 1 {
		colorSeq(parts[1], true)
	}
	if len(parts) > 2 {
		for _, flag := range parts[2] {
			switch flag {
			case 'b':
				codes.WriteString(CodeBold)
			case 'd':
				codes.WriteString(CodeDim)
			case 'u':
				codes.WriteString(CodeUnderline)
			case 'r':
				codes.WriteString(CodeReverse)
			}
		}
	}

	return codes.String()
}

// wrapSequence ensures a color sequence part is wrapped in CSI delimiters
func wrapSequence(seq string) string {
	if seq == "" {
		return ""
	}
	if strings.HasPrefix(seq, "\x1b[") {
		return seq
	}
	return "\033[" + seq + "m"
}

// Sprintf formats according to a format specifier and returns the string with ANSI codes
func Sprintf(format string, a ...any) string {
	return ToANSI(fmt.Sprintf(format, a...))
}

// Println prints a line with ANSI color codes parsed
func Println(a ...any) {
	fmt.Fprintln(Stdout, ToANSI(fmt.Sprint(a...)))
}

// Parse is a convenience alias for ToANSI
func Parse(text string) string {
	return ToANSI(text)
}
