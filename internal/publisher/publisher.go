// Package publisher assembles the final portfolio markdown out of the
// agent's outputs: a consolidated overview, a project gallery table, and
// one section per analyzed project.
package publisher

import (
	"fmt"
	"strings"

	"popolo/internal/models"
)

// GalleryTable renders the project gallery as a markdown table with one row
// per analyzed project.
func GalleryTable(metas []models.ProjectMeta) string {
	var b strings.Builder
	b.WriteString("| Project | Stack | Summary |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, m := range metas {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(m.Name), cell(m.Stack), cell(m.Summary))
	}
	return b.String()
}

// Assemble stitches the overview, gallery table, and per-project sections
// into the complete portfolio document.
func Assemble(overview, galleryTable string, projectSections []string) string {
	var b strings.Builder
	b.WriteString("# Portfolio\n\n")

	b.WriteString("## Technical Overview\n\n")
	b.WriteString(strings.TrimSpace(overview))
	b.WriteString("\n\n")

	b.WriteString("## Project Gallery\n\n")
	b.WriteString(strings.TrimSpace(galleryTable))
	b.WriteString("\n\n")

	b.WriteString("## Projects\n\n")
	for i, section := range projectSections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.TrimSpace(section))
	}
	b.WriteString("\n")

	return b.String()
}

// cell makes a value safe to embed in a markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	if s == "" {
		return "N/A"
	}
	return s
}
