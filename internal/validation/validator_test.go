package validation

import (
	"strings"
	"testing"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

func validTemplate() *models.CustomTemplate {
	return &models.CustomTemplate{
		Meta: models.TemplateMeta{
			ID:          "prd",
			Name:        "Product Requirements",
			Description: "A product requirements document",
			Version:     "1.0.0",
			Category:    "product",
			Scope:       models.ScopeStandard,
		},
		Variables: []models.TemplateVariable{
			{Name: "projectName", Label: "Project Name", Type: models.VariableString, Required: true},
		},
		Sections: []models.TemplateSection{
			{ID: "overview", Title: "Overview", Content: "{{projectName}}"},
		},
	}
}

func TestValidateTemplateAccepts(t *testing.T) {
	result := ValidateTemplate(validTemplate())
	if !result.Valid {
		t.Errorf("valid template rejected: %+v", result.Errors)
	}
	if result.ToAppError() != nil {
		t.Error("ToAppError should be nil for a valid result")
	}
}

func TestValidateTemplateMissingMetaFields(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Meta.Description = ""
	tmpl.Meta.Category = ""
	tmpl.Meta.Scope = ""

	result := ValidateTemplate(tmpl)
	if result.Valid {
		t.Fatal("template with missing meta fields accepted")
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %+v", len(result.Errors), result.Errors)
	}

	fields := make(map[string]bool)
	for _, e := range result.Errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"meta.description", "meta.category", "meta.scope"} {
		if !fields[want] {
			t.Errorf("missing error for %s", want)
		}
	}
}

func TestValidateTemplateInvalidScope(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Meta.Scope = "galactic"

	result := ValidateTemplate(tmpl)
	if result.Valid {
		t.Fatal("template with unknown scope accepted")
	}
	if !strings.Contains(result.Errors[0].Message, "galactic") {
		t.Errorf("error should name the bad scope: %+v", result.Errors[0])
	}
}

func TestValidateTemplateVariables(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CustomTemplate)
		wantField string
	}{
		{
			"unnamed variable",
			func(tm *models.CustomTemplate) {
				tm.Variables = append(tm.Variables, models.TemplateVariable{Label: "No Name"})
			},
			"variables[1].name",
		},
		{
			"duplicate variable name",
			func(tm *models.CustomTemplate) {
				tm.Variables = append(tm.Variables, models.TemplateVariable{Name: "projectName", Label: "Again"})
			},
			"variables[1].name",
		},
		{
			"unknown variable type",
			func(tm *models.CustomTemplate) {
				tm.Variables[0].Type = "tuple"
			},
			"variables[0].type",
		},
		{
			"select without options",
			func(tm *models.CustomTemplate) {
				tm.Variables[0].Type = models.VariableSelect
			},
			"variables[0].options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := validTemplate()
			tt.mutate(tmpl)
			result := ValidateTemplate(tmpl)
			if result.Valid {
				t.Fatal("invalid template accepted")
			}
			found := false
			for _, e := range result.Errors {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %+v", tt.wantField, result.Errors)
			}
		})
	}
}

func TestValidateTemplateNestedSections(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Sections[0].Sections = []models.TemplateSection{
		{ID: "", Title: "Untitled child"},
		{ID: "ok", Title: ""},
	}

	result := ValidateTemplate(tmpl)
	if result.Valid {
		t.Fatal("template with invalid nested sections accepted")
	}

	fields := make(map[string]bool)
	for _, e := range result.Errors {
		fields[e.Field] = true
	}
	if !fields["sections[0].sections[0].id"] {
		t.Errorf("missing nested id error: %+v", result.Errors)
	}
	if !fields["sections[0].sections[1].title"] {
		t.Errorf("missing nested title error: %+v", result.Errors)
	}
}

func TestToAppErrorCarriesAllProblems(t *testing.T) {
	tmpl := validTemplate()
	tmpl.Meta.ID = ""
	tmpl.Meta.Version = ""

	appErr := ValidateTemplate(tmpl).ToAppError()
	if appErr == nil {
		t.Fatal("expected an AppError")
	}
	if appErr.Context["additional_errors"] != 1 {
		t.Errorf("expected additional_errors context, got %+v", appErr.Context)
	}
}
