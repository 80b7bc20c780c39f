package handler

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// uploadPage is the data rendered into upload.html.
type uploadPage struct {
	Label      string
	Defective  bool
	Confidence float64
	Error      string
}

// streamPage is the data rendered into stream_ui.html.
type streamPage struct {
	Running      bool
	PollInterval int // ms
}
