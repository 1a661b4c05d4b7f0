package engine

import (
	"reflect"
	"strings"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/interp"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// compileSections walks a section tree in declared order. A section whose
// condition evaluates false is omitted along with its entire subtree; no
// partial pruning. Surviving titles and content pass through interpolation.
func (e *Engine) compileSections(sections []models.TemplateSection, vars map[string]interface{}) []models.CompiledSection {
	compiled := make([]models.CompiledSection, 0, len(sections))
	for _, section := range sections {
		if section.Condition != nil && !EvaluateCondition(section.Condition, vars) {
			continue
		}
		compiled = append(compiled, models.CompiledSection{
			ID:          section.ID,
			Title:       e.interp.Interpolate(section.Title, vars),
			Content:     e.interp.Interpolate(section.Content, vars),
			Collapsible: section.Collapsible,
			Prompt:      section.Prompt,
			Sections:    e.compileSections(section.Sections, vars),
		})
	}
	return compiled
}

// EvaluateCondition applies a section condition against resolved variables.
// Unknown operators fail open: the section stays visible.
func EvaluateCondition(cond *models.SectionCondition, vars map[string]interface{}) bool {
	value, present := vars[cond.Variable]

	switch cond.Operator {
	case models.OpEquals:
		return valuesEqual(value, cond.Value)
	case models.OpNotEquals:
		return !valuesEqual(value, cond.Value)
	case models.OpContains:
		return containsValue(value, cond.Value)
	case models.OpNotContains:
		return !containsValue(value, cond.Value)
	case models.OpGreaterThan:
		a, aok := interp.ToFloatStrict(value)
		b, bok := interp.ToFloatStrict(cond.Value)
		return aok && bok && a > b
	case models.OpLessThan:
		a, aok := interp.ToFloatStrict(value)
		b, bok := interp.ToFloatStrict(cond.Value)
		return aok && bok && a < b
	case models.OpExists:
		return existsValue(value, present)
	case models.OpNotExists:
		return !existsValue(value, present)
	default:
		return true
	}
}

// existsValue is true when the variable is defined, non-nil and not an
// empty string
func existsValue(value interface{}, present bool) bool {
	if !present || value == nil {
		return false
	}
	s, isString := value.(string)
	return !isString || s != ""
}

// valuesEqual is strict equality with numeric widening, so 2 declared in
// YAML matches a caller-provided float64(2)
func valuesEqual(a, b interface{}) bool {
	if af, aok := interp.ToFloatStrict(a); aok {
		bf, bok := interp.ToFloatStrict(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

// containsValue checks array membership for array-typed variables and
// substring containment for strings; anything else does not contain.
func containsValue(value, needle interface{}) bool {
	if items, ok := interp.ToSlice(value); ok {
		for _, item := range items {
			if valuesEqual(item, needle) {
				return true
			}
		}
		return false
	}
	if s, ok := value.(string); ok {
		return strings.Contains(s, interp.FormatValue(needle))
	}
	return false
}
