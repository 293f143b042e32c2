package ui

import "io"

// HomeScreen is the static landing screen.
type HomeScreen struct {
	VehiclesURL string
}

// Render writes the landing content with its link to the vehicles screen.
func (h HomeScreen) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "home", h)
}
