// Package validation checks loaded template definitions for structural
// integrity before they reach the registry.
//
// Validation runs at load time and collects every problem in a template
// document rather than stopping at the first: a template with three missing
// fields reports all three. A template that fails validation is rejected
// whole; nothing is partially registered.
package validation

import (
	"fmt"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// ValidationError represents a single field-level problem
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult collects the problems found in one template definition
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r *ValidationResult) addMissing(field string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Code:    string(errors.ErrCodeMissingField),
		Message: fmt.Sprintf("required field '%s' is missing", field),
	})
}

func (r *ValidationResult) addInvalid(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Code:    string(errors.ErrCodeInvalidInput),
		Message: message,
	})
}

// ToAppError converts a failed result into a single AppError carrying the
// first problem as its message and the full list as context
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	appErr := errors.NewAppError(errors.ErrorCode(r.Errors[0].Code), r.Errors[0].Message)
	appErr.WithContext("field", r.Errors[0].Field)
	if len(r.Errors) > 1 {
		appErr.WithContext("additional_errors", len(r.Errors)-1)
		details := make([]string, len(r.Errors))
		for i, e := range r.Errors {
			details[i] = e.Message
		}
		appErr.WithContext("errors", details)
	}
	return appErr
}

// ValidateTemplate checks a template definition against the structural
// invariants of the data model: mandatory metadata, named variables with
// known types and no duplicates, and sections with an id and a title at
// every nesting level.
func ValidateTemplate(t *models.CustomTemplate) *ValidationResult {
	result := &ValidationResult{Valid: true}

	validateMeta(&t.Meta, result)
	validateVariables(t.Variables, result)
	validateSections(t.Sections, "sections", result)

	return result
}

func validateMeta(meta *models.TemplateMeta, result *ValidationResult) {
	if meta.ID == "" {
		result.addMissing("meta.id")
	}
	if meta.Name == "" {
		result.addMissing("meta.name")
	}
	if meta.Description == "" {
		result.addMissing("meta.description")
	}
	if meta.Version == "" {
		result.addMissing("meta.version")
	}
	if meta.Category == "" {
		result.addMissing("meta.category")
	}
	if meta.Scope == "" {
		result.addMissing("meta.scope")
	} else if !validScope(meta.Scope) {
		result.addInvalid("meta.scope",
			fmt.Sprintf("scope '%s' is not one of mvp, standard, comprehensive, enterprise", meta.Scope))
	}
}

func validateVariables(variables []models.TemplateVariable, result *ValidationResult) {
	seen := make(map[string]bool, len(variables))
	for i, v := range variables {
		field := fmt.Sprintf("variables[%d]", i)
		if v.Name == "" {
			result.addMissing(field + ".name")
			continue
		}
		if seen[v.Name] {
			result.addInvalid(field+".name", fmt.Sprintf("duplicate variable name '%s'", v.Name))
		}
		seen[v.Name] = true

		if v.Type != "" && !validVariableType(v.Type) {
			result.addInvalid(field+".type", fmt.Sprintf("unknown variable type '%s'", v.Type))
		}
		if (v.Type == models.VariableSelect || v.Type == models.VariableMultiSelect) && len(v.Options) == 0 {
			result.addInvalid(field+".options", fmt.Sprintf("variable '%s' of type %s needs options", v.Name, v.Type))
		}
	}
}

func validateSections(sections []models.TemplateSection, path string, result *ValidationResult) {
	for i, s := range sections {
		field := fmt.Sprintf("%s[%d]", path, i)
		if s.ID == "" {
			result.addMissing(field + ".id")
		}
		if s.Title == "" {
			result.addMissing(field + ".title")
		}
		if len(s.Sections) > 0 {
			validateSections(s.Sections, field+".sections", result)
		}
	}
}

func validScope(scope models.TemplateScope) bool {
	for _, s := range models.ValidScopes {
		if s == scope {
			return true
		}
	}
	return false
}

func validVariableType(t models.VariableType) bool {
	for _, vt := range models.ValidVariableTypes {
		if vt == t {
			return true
		}
	}
	return false
}
