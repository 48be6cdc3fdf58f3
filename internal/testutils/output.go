package testutils

import (
	"bytes"
	"fmt"
	"testing"
	"text/tabwriter"
)

// TestCase represents a single unit test scenario.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

const (
	reset = "\033[0m"
	red   = "\033[31m"
	green = "\033[32m"
)

// PrintTestTable logs a table of input, expected and returned values.
// Failing rows are marked with > < and reported through t.Errorf.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Input\tExpected Value\tReturned Value\t\n")

	for _, tc := range cases {
		input := tc.Input
		if tc.Name != "" {
			input = tc.Name + ": " + input
		}
		if tc.Pass {
			fmt.Fprintf(w, "  %s\t%s\t%s%s%s\t\n", input, tc.Expected, green, tc.Actual, reset)
			continue
		}
		fmt.Fprintf(w, "%s>%s %s%s\t%s\t%s%s\t%s<%s\n", red, reset, red, input, tc.Expected, tc.Actual, reset, red, reset)
	}
	w.Flush()
	t.Log("\n" + buf.String())

	for _, tc := range cases {
		if !tc.Pass {
			t.Errorf("%s: expected %q, got %q", tc.Input, tc.Expected, tc.Actual)
		}
	}
}
