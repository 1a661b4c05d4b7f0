// Package renderer turns compiled templates into markdown documents.
package renderer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// maxHeadingLevel caps section headings at markdown's deepest level
const maxHeadingLevel = 6

// Renderer emits a compiled template as document text
type Renderer struct {
	compiled *models.CompiledTemplate
}

// NewRenderer creates a renderer for a compiled template
func NewRenderer(compiled *models.CompiledTemplate) *Renderer {
	return &Renderer{compiled: compiled}
}

// RenderMarkdown emits the template name as the top-level heading, then the
// section tree depth-first. Each section title becomes a heading one level
// deeper than its parent; content follows only when non-blank after
// trimming, but blank sections still emit their heading.
func (r *Renderer) RenderMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# " + r.compiled.Name + "\n")
	renderSections(&sb, r.compiled.Sections, 2)
	return sb.String()
}

// RenderJSON emits the compiled template as indented JSON for programmatic
// consumers
func (r *Renderer) RenderJSON() (string, error) {
	data, err := json.MarshalIndent(r.compiled, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal compiled template: %w", err)
	}
	return string(data), nil
}

func renderSections(sb *strings.Builder, sections []models.CompiledSection, level int) {
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	for _, section := range sections {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" " + section.Title + "\n")

		if content := strings.TrimSpace(section.Content); content != "" {
			sb.WriteString("\n" + content + "\n")
		}

		renderSections(sb, section.Sections, level+1)
	}
}
