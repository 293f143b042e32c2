package ui

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Name   string
	URL    string
	Active bool
}

// Page is the data the surrounding layout needs.
type Page struct {
	Title string
	Nav   []NavLink
}

// RenderHeader writes the document head and navigation, leaving the screen container open.
func RenderHeader(w io.Writer, page Page) error {
	return templates.ExecuteTemplate(w, "header", page)
}

// RenderFooter closes the screen container and the document.
func RenderFooter(w io.Writer) error {
	return templates.ExecuteTemplate(w, "footer", nil)
}
