package logger

import (
	"AppBuilder/internal/paths"
	"AppBuilder/internal/version"
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

const fatalFooter = "{{_FatalFooter_}}Please let the dev know of this error."

// Fatal logs msg with system information and a stack trace, then panics with FatalError.
func Fatal(ctx context.Context, msg any, args ...any) {
	now := time.Now()
	output := []any{
		"{{_TraceHeader_}}### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		indent(systemInfo()),
		"",
		indent(stackTrace(2)),
		"{{_TraceFooter_}}### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		msg,
		"",
		fatalFooter,
		"{{_FatalFooter_}}It has been written to{{|-|}} '{{_File_}}" + paths.GetLogFilePath() + "{{|-|}}'.",
	}
	logAt(ctx, now, LevelFatal, output, args...)
	panic(FatalError{})
}

func indent(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l != "" {
			out[i] = "  " + l
		}
	}
	return out
}

func systemInfo() []string {
	executable, _ := os.Executable()
	wd, _ := os.Getwd()

	info := []string{
		fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version),
		fmt.Sprintf("Commit: %s  Built: %s", version.Commit, version.BuildDate),
		"",
		fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()),
		"",
		fmt.Sprintf("ARCH:        %s", runtime.GOARCH),
		fmt.Sprintf("OS:          %s", runtime.GOOS),
		fmt.Sprintf("WORKDIR:     %s", wd),
		fmt.Sprintf("CONFIG_FILE: %s", paths.GetConfigFilePath()),
		"",
	}

	u, err := user.Current()
	if err != nil {
		return append(info, fmt.Sprintf("User Info Error: %v", err))
	}
	return append(info,
		fmt.Sprintf("USER:        %s (uid %s, gid %s)", u.Username, u.Uid, u.Gid),
		fmt.Sprintf("HOME:        %s", u.HomeDir),
	)
}

// stackTrace lists the callers outermost first, skipping skip frames.
// Each frame is drawn one level deeper than its caller.
func stackTrace(skip int) []string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	iter := runtime.CallersFrames(pc[:n])

	var frames []runtime.Frame
	for {
		frame, more := iter.Next()
		frames = append(frames, frame)
		if !more {
			break
		}
	}

	wd, _ := os.Getwd()
	width := len(fmt.Sprint(len(frames) - 1))
	lines := make([]string, 0, len(frames))
	depth := 0
	for i := len(frames) - 1; i >= 0; i-- {
		frame := frames[i]
		file := frame.File
		if rel, err := filepath.Rel(wd, file); wd != "" && err == nil && !strings.HasPrefix(rel, "..") {
			file = "./" + filepath.ToSlash(rel)
		}

		arrow := ""
		if depth > 0 {
			arrow = strings.Repeat("  ", depth-1) + "{{_TraceFrameLines_}}└>{{|-|}}"
		}
		lines = append(lines, fmt.Sprintf("{{_TraceFrameNumber_}}%*d{{|-|}}: %s{{_TraceSourceFile_}}%s:{{_TraceLineNumber_}}%d{{|-|}} ({{_TraceFunction_}}%s{{|-|}})",
			width, i, arrow, file, frame.Line, filepath.Base(frame.Function)))
		depth++
	}
	return lines
}
