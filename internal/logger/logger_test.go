package logger

import (
	"AppBuilder/internal/paths"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestFileLogStripsColor(t *testing.T) {
	paths.StateHomeOverride = t.TempDir()
	defer func() { paths.StateHomeOverride = "" }()

	old := slog.Default()
	slog.SetDefault(NewLogger())
	defer func() {
		Cleanup()
		slog.SetDefault(old)
	}()

	ctx := context.Background()
	Info(ctx, "Wrote '{{_File_}}%s{{|-|}}'", "docker-compose.yml")
	Cleanup()

	data, err := os.ReadFile(paths.GetLogFilePath())
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "[INFO  ]") {
		t.Errorf("log file missing level label:\n%s", content)
	}
	if !strings.Contains(content, "Wrote 'docker-compose.yml'") {
		t.Errorf("log file missing plain message:\n%s", content)
	}
	if strings.Contains(content, "\x1b[") {
		t.Errorf("log file contains escape sequences:\n%q", content)
	}
}

func TestFatalPanicsWithFatalError(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(FatalError); !ok {
			t.Errorf("recover() = %v, want FatalError", r)
		}
	}()
	Fatal(context.Background(), "boom")
}

func TestSetLevelKeepsFileAtInfo(t *testing.T) {
	defer SetLevel(LevelNotice)

	SetLevel(LevelWarn)
	if FileLevelVar.Level() != LevelInfo {
		t.Errorf("file level = %v, want %v", FileLevelVar.Level(), LevelInfo)
	}
	SetLevel(LevelDebug)
	if FileLevelVar.Level() != LevelDebug {
		t.Errorf("file level = %v, want %v", FileLevelVar.Level(), LevelDebug)
	}
}

func TestStackTraceEndsAtCaller(t *testing.T) {
	lines := stackTrace(1)
	if len(lines) < 2 {
		t.Fatalf("stackTrace returned %d lines", len(lines))
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "logger.TestStackTraceEndsAtCaller") {
		t.Errorf("innermost frame = %q, want the test function", last)
	}
	if !strings.Contains(last, "└>") {
		t.Errorf("nested frame lacks the arrow: %q", last)
	}
}

func TestFatalLogsTrace(t *testing.T) {
	paths.StateHomeOverride = t.TempDir()
	defer func() { paths.StateHomeOverride = "" }()

	old := slog.Default()
	slog.SetDefault(NewLogger())
	defer func() {
		Cleanup()
		slog.SetDefault(old)
	}()

	func() {
		defer func() {
			if _, ok := recover().(FatalError); !ok {
				t.Error("Fatal did not panic with FatalError")
			}
		}()
		Fatal(context.Background(), "stack %s is broken", "ab")
	}()
	Cleanup()

	data, err := os.ReadFile(paths.GetLogFilePath())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"BEGIN SYSTEM INFORMATION", "CONFIG_FILE:", "stack ab is broken", "[FATAL ]"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file lacks %q:\n%s", want, data)
		}
	}
}
