package cmd

import (
	"AppBuilder/internal/testutils"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		args    []string
		command string
		options map[string]any
		target  string
	}{
		{nil, "setup", map[string]any{}, ""},
		{[]string{"--port", "8080", "--tag", "master"}, "setup", map[string]any{"port": 8080, "tag": "master"}, ""},
		{[]string{"setup", "--ssl.self", "--bot.botEnable", "false"}, "setup", map[string]any{"ssl.self": true, "bot.botEnable": false}, ""},
		{[]string{"--exposeDB=false", "--portDB", "3307"}, "setup", map[string]any{"exposeDB": false, "portDB": 3307}, ""},
		{[]string{"ssl", "--self"}, "ssl", map[string]any{"self": true}, ""},
		{[]string{"ssl", "--ssl.pathKey", "k.pem", "--pathCert=c.pem"}, "ssl", map[string]any{"pathKey": "k.pem", "pathCert": "c.pem"}, ""},
		{[]string{"ssl", "--self", "--ssl.self=false"}, "ssl", map[string]any{"self": false}, ""},
		{[]string{"--port", "80", "--port", "81"}, "setup", map[string]any{"port": 81}, ""},
		{[]string{"smtp", "--smtpPort", "25", "--smtp.smtpAuth", "login"}, "smtp", map[string]any{"smtpPort": 25, "smtpAuth": "login"}, ""},
		{[]string{"help", "ssl"}, "help", map[string]any{}, "ssl"},
		{[]string{"bot", "-h"}, "help", map[string]any{}, "bot"},
		{[]string{"-h"}, "help", map[string]any{}, ""},
		{[]string{"version"}, "version", map[string]any{}, ""},
		{[]string{"setup", "--db.password", "-xy", "--port", "80"}, "setup", map[string]any{"db.password": "-xy", "port": 80}, ""},
		{[]string{"db", "--password", "-xy9"}, "db", map[string]any{"password": "-xy9"}, ""},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		input := strings.Join(tt.args, " ")
		inv, err := Parse(tt.args)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", input, err)
			continue
		}
		expected := tt.command + " " + tt.target
		actual := inv.Command + " " + inv.HelpTarget
		cases = append(cases, testutils.TestCase{
			Input:    input,
			Expected: expected,
			Actual:   actual,
			Pass:     expected == actual,
		})
		if diff := cmp.Diff(tt.options, map[string]any(inv.Options)); diff != "" {
			t.Errorf("Parse(%q) options mismatch (-want +got):\n%s", input, diff)
		}
	}
	testutils.PrintTestTable(t, cases)
}

func TestParseModifiers(t *testing.T) {
	inv, err := Parse([]string{"-vxy", "--dir", "/srv/ab", "db", "--password", "secret"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !inv.Verbose || !inv.Debug || !inv.Yes {
		t.Errorf("modifiers = verbose %t debug %t yes %t, want all set", inv.Verbose, inv.Debug, inv.Yes)
	}
	if inv.Dir != "/srv/ab" {
		t.Errorf("Dir = %q", inv.Dir)
	}
	if inv.Command != "db" {
		t.Errorf("Command = %q", inv.Command)
	}
	want := map[string]any{"password": "secret"}
	if diff := cmp.Diff(want, map[string]any(inv.Options)); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	wantArgs := []string{"-v", "-x", "-y", "--dir", "/srv/ab", "db", "--password", "secret"}
	if diff := cmp.Diff(wantArgs, inv.Args); diff != "" {
		t.Errorf("expanded args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValueWithDash(t *testing.T) {
	inv, err := Parse([]string{"-vy", "--db.password", "-xy", "--portDB", "-1"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !inv.Verbose || !inv.Yes || inv.Debug {
		t.Errorf("modifiers = verbose %t debug %t yes %t, want verbose and yes only", inv.Verbose, inv.Debug, inv.Yes)
	}
	want := map[string]any{"db.password": "-xy", "portDB": -1}
	if diff := cmp.Diff(want, map[string]any(inv.Options)); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	wantArgs := []string{"-v", "-y", "--db.password", "-xy", "--portDB", "-1"}
	if diff := cmp.Diff(wantArgs, inv.Args); diff != "" {
		t.Errorf("expanded args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		args    []string
		index   int
		failing string
	}{
		{[]string{"deploy"}, 0, ""},
		{[]string{"setup", "--nope"}, 1, "setup"},
		{[]string{"ssl", "--port", "80"}, 1, "ssl"},
		{[]string{"--port", "abc"}, 0, "setup"},
		{[]string{"--port"}, 0, "setup"},
		{[]string{"setup", "extra"}, 1, "setup"},
		{[]string{"help", "nope"}, 1, "help"},
	}

	var cases []testutils.TestCase
	for _, tt := range tests {
		input := strings.Join(tt.args, " ")
		_, err := Parse(tt.args)
		var pe *ParseError
		actual := "no error"
		if errors.As(err, &pe) {
			actual = fmt.Sprintf("%d %q", pe.Index, pe.FailingCommand)
		} else if err != nil {
			actual = err.Error()
		}
		expected := fmt.Sprintf("%d %q", tt.index, tt.failing)
		cases = append(cases, testutils.TestCase{
			Input:    input,
			Expected: expected,
			Actual:   actual,
			Pass:     expected == actual,
		})
	}
	testutils.PrintTestTable(t, cases)
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse([]string{"setup", "--nope"})
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	for _, want := range []string{
		"Error in command line:",
		"{{_UserCommandError_}}--nope{{|-|}}",
		"{{_UserCommandErrorMarker_}}^{{|-|}}",
		"Invalid option '{{_UserCommand_}}--nope{{|-|}}'",
		"Usage is:",
		"examples:",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message lacks %q:\n%s", want, msg)
		}
	}

	_, err = Parse([]string{"deploy"})
	if err == nil || !strings.Contains(err.Error(), "--help{{|-|}}' for usage.") {
		t.Errorf("unknown command error should point to --help, got: %v", err)
	}
}

func TestGetUsage(t *testing.T) {
	all := GetUsage("")
	for _, c := range Commands {
		if !strings.Contains(all, "{{_UsageCommand_}}"+c) {
			t.Errorf("global usage lacks command %q", c)
		}
	}
	ssl := GetUsage("ssl")
	for _, d := range taskFlags["ssl"] {
		if !strings.Contains(ssl, "--"+d.name) {
			t.Errorf("ssl usage lacks --%s", d.name)
		}
	}
	if strings.Contains(ssl, "smtpHost") {
		t.Error("ssl usage should not list smtp options")
	}
}
