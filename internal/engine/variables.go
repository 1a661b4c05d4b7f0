package engine

import (
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// ResolveVariables merges a declared variable schema with caller-supplied
// values. For each declaration the provided value wins, then the declared
// default; a required variable with neither fails the compile. Caller keys
// that were never declared pass through unchanged, so templates may
// reference ad hoc variables.
func ResolveVariables(defs []models.TemplateVariable, provided map[string]interface{}) (map[string]interface{}, error) {
	resolved := make(map[string]interface{}, len(defs)+len(provided))

	for _, def := range defs {
		if value, ok := provided[def.Name]; ok {
			resolved[def.Name] = value
			continue
		}
		if def.Default != nil {
			resolved[def.Name] = def.Default
			continue
		}
		if def.Required {
			return nil, errors.MissingVariableError(def.Name)
		}
	}

	for key, value := range provided {
		if _, ok := resolved[key]; !ok {
			resolved[key] = value
		}
	}
	return resolved, nil
}
