package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewServiceWithStorage(store)
}

func testTemplate(id string) *models.CustomTemplate {
	return &models.CustomTemplate{
		Meta: models.TemplateMeta{
			ID:          id,
			Name:        id + " blueprint",
			Description: "test template",
			Version:     "1.0.0",
			Category:    "product",
			Scope:       models.ScopeStandard,
			Tags:        []string{"docs"},
		},
		Sections: []models.TemplateSection{
			{ID: "body", Title: "Body", Content: "Hello {{name}}"},
		},
	}
}

func TestRegisterAndGetTemplate(t *testing.T) {
	svc := newTestService(t)
	svc.RegisterTemplate(testTemplate("prd"))

	got, err := svc.GetTemplate("prd")
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got.Meta.ID != "prd" {
		t.Errorf("meta.id = %q", got.Meta.ID)
	}

	_, err = svc.GetTemplate("ghost")
	if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestSearchTemplates(t *testing.T) {
	svc := newTestService(t)
	svc.RegisterTemplate(testTemplate("product-requirements"))
	svc.RegisterTemplate(testTemplate("architecture-review"))

	results := svc.SearchTemplates("arch")
	if len(results) == 0 || results[0].Meta.ID != "architecture-review" {
		t.Errorf("search results: %+v", results)
	}

	all := svc.SearchTemplates("")
	if len(all) != 2 {
		t.Errorf("empty query should return everything, got %d", len(all))
	}
}

func TestRenderEndToEnd(t *testing.T) {
	svc := newTestService(t)
	svc.RegisterTemplate(testTemplate("prd"))

	out, err := svc.Render("prd", map[string]interface{}{"name": "Ada"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "# prd blueprint") {
		t.Errorf("missing document heading:\n%s", out)
	}
	if !strings.Contains(out, "Hello Ada") {
		t.Errorf("missing interpolated content:\n%s", out)
	}
}

func TestPromptPlanFollowsInheritance(t *testing.T) {
	svc := newTestService(t)
	parent := testTemplate("base")
	parent.Prompts = []models.PromptDirective{{Section: "body", User: "draft the body"}}
	svc.RegisterTemplate(parent)

	child := testTemplate("child")
	child.Extends = "base"
	child.Prompts = []models.PromptDirective{{Section: "extra", User: "draft the extra"}}
	svc.RegisterTemplate(child)

	plan, err := svc.PromptPlan("child")
	if err != nil {
		t.Fatalf("PromptPlan failed: %v", err)
	}
	if len(plan) != 2 || plan[0].Section != "body" || plan[1].Section != "extra" {
		t.Errorf("prompt plan: %+v", plan)
	}
}

func TestInjectGeneratedContent(t *testing.T) {
	svc := newTestService(t)
	tmpl := testTemplate("prd")
	tmpl.Sections[0].Sections = []models.TemplateSection{
		{ID: "nested", Title: "Nested", Prompt: "gen-nested"},
	}
	svc.RegisterTemplate(tmpl)

	compiled, err := svc.Compile("prd", map[string]interface{}{"name": "Ada"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !InjectGeneratedContent(compiled, "nested", "generated text") {
		t.Fatal("target section not found")
	}
	if compiled.Sections[0].Sections[0].Content != "generated text" {
		t.Errorf("content not injected: %+v", compiled.Sections[0].Sections[0])
	}

	if InjectGeneratedContent(compiled, "ghost", "x") {
		t.Error("injection into unknown section should report false")
	}
}

func TestImportDirectoryRegistersBatch(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()

	doc := `meta:
  id: imported
  name: Imported
  description: from disk
  version: 1.0.0
  category: ops
  scope: mvp
sections:
  - id: s
    title: S
`
	if err := os.WriteFile(filepath.Join(dir, "imported.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	templates, err := svc.ImportDirectory(dir)
	if err != nil {
		t.Fatalf("ImportDirectory failed: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
	if _, err := svc.GetTemplate("imported"); err != nil {
		t.Errorf("imported template not registered: %v", err)
	}
}

func TestTemplateVariablesAfterInheritance(t *testing.T) {
	svc := newTestService(t)
	parent := testTemplate("base")
	parent.Variables = []models.TemplateVariable{
		{Name: "env", Label: "Environment", Type: models.VariableSelect, Options: []string{"dev", "prod"}},
	}
	svc.RegisterTemplate(parent)

	child := testTemplate("child")
	child.Extends = "base"
	child.Variables = []models.TemplateVariable{{Name: "env", Default: "prod"}}
	svc.RegisterTemplate(child)

	vars, err := svc.TemplateVariables("child")
	if err != nil {
		t.Fatalf("TemplateVariables failed: %v", err)
	}
	if len(vars) != 1 || vars[0].Label != "Environment" || vars[0].Default != "prod" {
		t.Errorf("effective schema: %+v", vars)
	}
}
