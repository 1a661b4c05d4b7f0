package engine

import (
	"sort"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// Resolve flattens a template's extends chain. A template with no parent is
// returned unchanged. Otherwise the parent is resolved first (chains of any
// depth), then the child's metadata, variables, sections and prompts are
// merged over it. Cyclic chains are rejected with an inheritance-cycle
// error rather than recursing forever.
func (e *Engine) Resolve(t *models.CustomTemplate) (*models.CustomTemplate, error) {
	return e.resolve(t, map[string]bool{t.Meta.ID: true})
}

func (e *Engine) resolve(t *models.CustomTemplate, seen map[string]bool) (*models.CustomTemplate, error) {
	if t.Extends == "" {
		return t, nil
	}

	parent, ok := e.Get(t.Extends)
	if !ok {
		return nil, errors.ParentNotFoundError(t.Meta.ID, t.Extends)
	}
	if seen[parent.Meta.ID] {
		return nil, errors.InheritanceCycleError(parent.Meta.ID)
	}
	seen[parent.Meta.ID] = true

	flatParent, err := e.resolve(parent, seen)
	if err != nil {
		return nil, err
	}

	merged := &models.CustomTemplate{
		Meta:      mergeMeta(flatParent.Meta, t.Meta),
		Variables: mergeVariables(flatParent.Variables, t.Variables),
		Sections:  mergeSections(flatParent.Sections, t.Sections),
		Prompts:   append(append([]models.PromptDirective{}, flatParent.Prompts...), t.Prompts...),
		FilePath:  t.FilePath,
	}
	return merged, nil
}

// mergeMeta shallow-merges child metadata over parent metadata: every child
// field that is set wins, everything else is inherited.
func mergeMeta(parent, child models.TemplateMeta) models.TemplateMeta {
	out := parent
	if child.ID != "" {
		out.ID = child.ID
	}
	if child.Name != "" {
		out.Name = child.Name
	}
	if child.Description != "" {
		out.Description = child.Description
	}
	if child.Version != "" {
		out.Version = child.Version
	}
	if child.Category != "" {
		out.Category = child.Category
	}
	if child.Scope != "" {
		out.Scope = child.Scope
	}
	if child.Author != "" {
		out.Author = child.Author
	}
	if child.Audience != "" {
		out.Audience = child.Audience
	}
	if len(child.Tags) > 0 {
		out.Tags = child.Tags
	}
	if child.License != "" {
		out.License = child.License
	}
	return out
}

// mergeVariables merges variable schemas keyed by name. Parent variables
// seed the result in their declared order; a child variable with the same
// name merges field by field so it can override just a default while
// inheriting label and type. New child variables append in order.
func mergeVariables(parent, child []models.TemplateVariable) []models.TemplateVariable {
	merged := make([]models.TemplateVariable, len(parent))
	index := make(map[string]int, len(parent))
	for i, v := range parent {
		merged[i] = v
		index[v.Name] = i
	}

	for _, cv := range child {
		if i, exists := index[cv.Name]; exists {
			merged[i] = mergeVariable(merged[i], cv)
		} else {
			index[cv.Name] = len(merged)
			merged = append(merged, cv)
		}
	}
	return merged
}

func mergeVariable(parent, child models.TemplateVariable) models.TemplateVariable {
	out := parent
	if child.Label != "" {
		out.Label = child.Label
	}
	if child.Type != "" {
		out.Type = child.Type
	}
	if child.Default != nil {
		out.Default = child.Default
	}
	if child.Required {
		out.Required = true
	}
	if child.Description != "" {
		out.Description = child.Description
	}
	if len(child.Options) > 0 {
		out.Options = child.Options
	}
	if child.Pattern != "" {
		out.Pattern = child.Pattern
	}
	if child.Min != nil {
		out.Min = child.Min
	}
	if child.Max != nil {
		out.Max = child.Max
	}
	return out
}

// mergeSections merges section lists keyed by ID. Parent sections seed the
// result; child sections with a matching ID merge field by field, with
// nested lists on both sides merged recursively by the same rule. The final
// list is sorted ascending by order weight (missing order counts as 0),
// keeping merge-insertion order for ties.
func mergeSections(parent, child []models.TemplateSection) []models.TemplateSection {
	merged := make([]models.TemplateSection, len(parent))
	index := make(map[string]int, len(parent))
	for i, s := range parent {
		merged[i] = s
		index[s.ID] = i
	}

	for _, cs := range child {
		if i, exists := index[cs.ID]; exists {
			merged[i] = mergeSection(merged[i], cs)
		} else {
			index[cs.ID] = len(merged)
			merged = append(merged, cs)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].OrderWeight() < merged[j].OrderWeight()
	})
	return merged
}

func mergeSection(parent, child models.TemplateSection) models.TemplateSection {
	out := parent
	if child.Title != "" {
		out.Title = child.Title
	}
	if child.Content != "" {
		out.Content = child.Content
	}
	if child.Order != nil {
		out.Order = child.Order
	}
	if child.Collapsible {
		out.Collapsible = true
	}
	if child.Condition != nil {
		out.Condition = child.Condition
	}
	if child.Prompt != "" {
		out.Prompt = child.Prompt
	}
	if len(child.Sections) > 0 {
		if len(parent.Sections) > 0 {
			out.Sections = mergeSections(parent.Sections, child.Sections)
		} else {
			out.Sections = child.Sections
		}
	}
	return out
}
