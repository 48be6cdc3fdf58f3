// Package render expands the {{ }} placeholders of the project templates.
package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// funcs are available to every template.
var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"default": func(def, val any) any {
		if val == nil || val == "" || val == false {
			return def
		}
		return val
	},
}

// String renders content with data. A placeholder with no value is an error.
func String(name, content string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(content)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

// File renders the template stored at name in fsys.
func File(fsys fs.FS, name string, data any) (string, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", err
	}
	return String(name, string(content), data)
}
