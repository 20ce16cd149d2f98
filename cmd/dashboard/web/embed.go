// Package web embeds the dashboard page template.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Templates parses the embedded templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templates, "templates/*.tmpl"))
}
