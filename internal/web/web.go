// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template together with the shared layout.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inc":     func(i int) int { return i + 1 },
		"percent": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}).ParseFS(templateFS, "templates/*.html")
}
