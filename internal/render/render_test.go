package render

import (
	"AppBuilder/internal/testutils"
	"strings"
	"testing"
	"testing/fstest"
)

func TestString(t *testing.T) {
	data := map[string]any{
		"port":  "8080",
		"stack": "ab",
		"ssl":   map[string]any{"self": true},
		"empty": "",
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"ports:\n  - \"{{.port}}:80\"", "ports:\n  - \"8080:80\""},
		{"${MYSQL_PASSWORD}", "${MYSQL_PASSWORD}"},
		{"{{if .ssl.self}}443{{end}}", "443"},
		{"{{upper .stack}}", "AB"},
		{"{{default \"x\" .empty}}", "x"},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		actual, err := String("test", tt.input, data)
		if err != nil {
			actual = "error: " + err.Error()
		}
		cases = append(cases, testutils.TestCase{
			Input:    tt.input,
			Expected: tt.expected,
			Actual:   actual,
			Pass:     actual == tt.expected,
		})
	}
	testutils.PrintTestTable(t, cases)
}

func TestStringMissingKey(t *testing.T) {
	_, err := String("compose", "{{.nope}}", map[string]any{})
	if err == nil {
		t.Fatal("expected an error for a missing key")
	}
	if !strings.Contains(err.Error(), "compose") {
		t.Errorf("error %q does not name the template", err)
	}
}

func TestFile(t *testing.T) {
	fsys := fstest.MapFS{
		"source.docker-compose.yml": {Data: []byte("tag: {{.tag}}\n")},
	}
	got, err := File(fsys, "source.docker-compose.yml", map[string]any{"tag": "develop"})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != "tag: develop\n" {
		t.Errorf("File = %q", got)
	}
	if _, err := File(fsys, "missing.yml", nil); err == nil {
		t.Error("expected an error for a missing template")
	}
}
