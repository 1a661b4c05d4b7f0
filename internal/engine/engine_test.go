package engine

import (
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

func newTemplate(id string) *models.CustomTemplate {
	return &models.CustomTemplate{
		Meta: models.TemplateMeta{
			ID:          id,
			Name:        id + " template",
			Description: "test template",
			Version:     "1.0.0",
			Category:    "testing",
			Scope:       models.ScopeStandard,
		},
	}
}

func TestRegisterOverwritesByID(t *testing.T) {
	e := New()
	first := newTemplate("doc")
	first.Meta.Version = "1.0.0"
	second := newTemplate("doc")
	second.Meta.Version = "2.0.0"

	e.Register(first)
	e.Register(second)

	got, ok := e.Get("doc")
	if !ok {
		t.Fatal("template not found after registration")
	}
	if got.Meta.Version != "2.0.0" {
		t.Errorf("expected overwrite, got version %s", got.Meta.Version)
	}
	if len(e.List()) != 1 {
		t.Errorf("expected 1 registered template, got %d", len(e.List()))
	}
}

func TestCompileRequiredVariableMissing(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Variables = []models.TemplateVariable{
		{Name: "name", Label: "Name", Type: models.VariableString, Required: true},
	}

	_, err := e.Compile(tmpl, map[string]interface{}{})
	if err == nil {
		t.Fatal("expected error for missing required variable")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeMissingVariable) {
		t.Errorf("expected MISSING_REQUIRED_VARIABLE, got %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestCompileAllDefaultsNeverFails(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Variables = []models.TemplateVariable{
		{Name: "a", Label: "A", Type: models.VariableString, Required: true, Default: "x"},
		{Name: "b", Label: "B", Type: models.VariableNumber, Default: 2},
	}
	tmpl.Sections = []models.TemplateSection{
		{ID: "s", Title: "S", Content: "{{a}}/{{b}}"},
	}

	compiled, err := e.Compile(tmpl, map[string]interface{}{})
	if err != nil {
		t.Fatalf("compile with defaults failed: %v", err)
	}
	if compiled.Sections[0].Content != "x/2" {
		t.Errorf("content = %q", compiled.Sections[0].Content)
	}
}

func TestCompileInterpolatesSections(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Meta.Name = "{{projectName}} Blueprint"
	tmpl.Sections = []models.TemplateSection{
		{ID: "x", Title: "Greeting", Content: "Hello {{name}}"},
	}

	compiled, err := e.Compile(tmpl, map[string]interface{}{
		"name":        "Ada",
		"projectName": "Atlas",
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if compiled.Name != "Atlas Blueprint" {
		t.Errorf("compiled name = %q", compiled.Name)
	}
	if compiled.Sections[0].Content != "Hello Ada" {
		t.Errorf("compiled content = %q", compiled.Sections[0].Content)
	}
}

func TestCompileUnknownReferencePassesThrough(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Sections = []models.TemplateSection{
		{ID: "x", Title: "T", Content: "{{unknownVar}}"},
	}

	compiled, err := e.Compile(tmpl, nil)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if compiled.Sections[0].Content != "{{unknownVar}}" {
		t.Errorf("unresolved reference was altered: %q", compiled.Sections[0].Content)
	}
}

func TestCompilePrunesConditionalSubtree(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Sections = []models.TemplateSection{
		{
			ID:    "x",
			Title: "Auth",
			Condition: &models.SectionCondition{
				Variable: "hasAuth",
				Operator: models.OpEquals,
				Value:    true,
			},
			Sections: []models.TemplateSection{
				{ID: "child", Title: "Child"},
			},
		},
		{ID: "y", Title: "Kept"},
	}

	compiled, err := e.Compile(tmpl, map[string]interface{}{"hasAuth": false})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(compiled.Sections) != 1 || compiled.Sections[0].ID != "y" {
		t.Errorf("expected pruned tree with only 'y', got %+v", compiled.Sections)
	}
}

func TestCompileIdempotent(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Variables = []models.TemplateVariable{
		{Name: "env", Label: "Env", Type: models.VariableSelect, Default: "dev", Options: []string{"dev", "prod"}},
	}
	tmpl.Sections = []models.TemplateSection{
		{ID: "a", Title: "{{uppercase env}}", Content: "{{#each tags}}{{this}} {{/each}}"},
	}
	context := map[string]interface{}{"tags": []interface{}{"go", "docs"}}

	first, err := e.Compile(tmpl, context)
	if err != nil {
		t.Fatalf("first compile failed: %v", err)
	}
	second, err := e.Compile(tmpl, context)
	if err != nil {
		t.Fatalf("second compile failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recompilation differs:\n%+v\n%+v", first, second)
	}
}

func TestCompileByIDUnknownTemplate(t *testing.T) {
	e := New()
	_, err := e.CompileByID("ghost", nil)
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestFullSubstitutionLeavesNoMarkers(t *testing.T) {
	e := New()
	tmpl := newTemplate("doc")
	tmpl.Sections = []models.TemplateSection{
		{ID: "a", Title: "{{title}}", Content: "{{body}} by {{author}}"},
	}

	compiled, err := e.Compile(tmpl, map[string]interface{}{
		"title":  "Overview",
		"body":   "Text",
		"author": "Ada",
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	for _, s := range compiled.Sections {
		if strings.Contains(s.Title, "{{") || strings.Contains(s.Content, "{{") {
			t.Errorf("unresolved marker survived full substitution: %+v", s)
		}
	}
}
