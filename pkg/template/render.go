// Package template is the rendering boundary of the pipeline.
//
// Managed file contents pass through Render on their way to a planned
// write. No variables are bound by the pipeline today, so plain text
// renders to itself; the boundary exists so variables can be wired in
// later without touching the transformer.
package template

import (
	"fmt"
	"strings"
	"text/template"
)

// Render substitutes vars into content. Callers attach the error code
// and the offending path; this package only reports what failed.
func Render(content string, vars map[string]string) (string, error) {
	t, err := template.New("content").Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var out strings.Builder
	if err := t.Execute(&out, vars); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return out.String(), nil
}
