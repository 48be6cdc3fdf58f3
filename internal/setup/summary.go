package setup

import (
	"AppBuilder/internal/console"
	"AppBuilder/internal/options"
	"fmt"
	"strings"
)

// secretWords mark option keys whose values are not printed.
var secretWords = []string{"password", "pass", "token", "secret"}

func isSecret(key string) bool {
	lower := strings.ToLower(key)
	for _, w := range secretWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// summaryRows lists the flat options, one row per key, secrets masked.
func summaryRows(opts map[string]any, keys []string) [][]string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v, ok := opts[k]
		if !ok {
			continue
		}
		switch v.(type) {
		case map[string]any, options.Options:
			continue
		}
		value := fmt.Sprint(v)
		if isSecret(k) && value != "" {
			value = "********"
		}
		rows = append(rows, []string{"{{_Option_}}" + k + "{{|-|}}", value})
	}
	return rows
}

// summaryOptions is the setup options plus every task's answers under its namespace.
func (w *Wizard) summaryOptions() options.Options {
	all := w.opts.Clone()
	for ns, answers := range w.answers {
		for k, v := range answers {
			all.Set(ns+"."+k, v)
		}
	}
	return all
}

func (w *Wizard) printSummary() {
	all := w.summaryOptions()
	rows := summaryRows(all, all.Keys())
	console.PrintTable([]string{"Option", "Value"}, rows, w.Project.Config.UI.LineCharacters)
}
