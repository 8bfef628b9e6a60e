package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"steam-cycle-viewer/internal/cycle"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageData is everything the form page needs.
type PageData struct {
	Inputs  cycle.RawInputs
	Kinds   []cycle.Kind
	Regions Regions
}

// RenderPage writes the full form page.
func RenderPage(w io.Writer, data PageData) error {
	return templates.ExecuteTemplate(w, "page", data)
}

// RenderRegions writes only the diagram and results regions.
func RenderRegions(w io.Writer, r Regions) error {
	return templates.ExecuteTemplate(w, "regions", r)
}

// fragment executes one of the static fragment templates. The fragments
// only fail on writer errors, which a bytes.Buffer never returns.
func fragment(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

func diagramSource(imageData string) template.URL {
	return template.URL("data:image/png;base64," + imageData)
}
