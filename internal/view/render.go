package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Fragment sets pushed to the browser, keyed by element ID
var (
	TableFragments = []string{IDPlayerSelect, IDTableHead, IDTableBody}
	ModalFragments = []string{IDPlayerModalLabel, IDPlayerDetails}
	AllFragments   = append(append([]string(nil), TableFragments...), ModalFragments...)
)

// PageData is the input of the full page template
type PageData struct {
	Title         string
	WebSocketPath string
	Doc           Document
}

// Renderer turns a Document into HTML
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the complete roster page
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// Fragment renders the inner HTML of the element with the given ID
func (r *Renderer) Fragment(id string, doc Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, id, doc); err != nil {
		return "", fmt.Errorf("rendering %s: %w", id, err)
	}
	return buf.String(), nil
}

// Fragments renders each of ids
func (r *Renderer) Fragments(doc Document, ids ...string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		html, err := r.Fragment(id, doc)
		if err != nil {
			return nil, err
		}
		out[id] = html
	}
	return out, nil
}
