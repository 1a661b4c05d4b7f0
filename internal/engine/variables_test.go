package engine

import (
	"testing"

	apperrors "github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

func TestResolveVariables(t *testing.T) {
	defs := []models.TemplateVariable{
		{Name: "name", Label: "Name", Type: models.VariableString, Required: true},
		{Name: "env", Label: "Env", Type: models.VariableSelect, Default: "dev"},
		{Name: "note", Label: "Note", Type: models.VariableText},
	}

	resolved, err := ResolveVariables(defs, map[string]interface{}{
		"name":  "Atlas",
		"extra": 42,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if resolved["name"] != "Atlas" {
		t.Errorf("provided value not used: %v", resolved["name"])
	}
	if resolved["env"] != "dev" {
		t.Errorf("default not applied: %v", resolved["env"])
	}
	if _, ok := resolved["note"]; ok {
		t.Error("optional variable without value or default should stay unset")
	}
	if resolved["extra"] != 42 {
		t.Errorf("undeclared caller key should pass through: %v", resolved["extra"])
	}
}

func TestResolveVariablesProvidedBeatsDefault(t *testing.T) {
	defs := []models.TemplateVariable{
		{Name: "env", Label: "Env", Type: models.VariableSelect, Default: "dev"},
	}
	resolved, err := ResolveVariables(defs, map[string]interface{}{"env": "prod"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved["env"] != "prod" {
		t.Errorf("provided value should beat default, got %v", resolved["env"])
	}
}

func TestResolveVariablesRequiredMissing(t *testing.T) {
	defs := []models.TemplateVariable{
		{Name: "name", Label: "Name", Type: models.VariableString, Required: true},
	}
	_, err := ResolveVariables(defs, nil)
	if err == nil {
		t.Fatal("expected missing-variable error")
	}
	appErr := apperrors.GetAppError(err)
	if appErr.Code != apperrors.ErrCodeMissingVariable {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Context["variable"] != "name" {
		t.Errorf("error should carry the variable name, got %v", appErr.Context)
	}
}

func TestResolveVariablesRequiredWithDefault(t *testing.T) {
	defs := []models.TemplateVariable{
		{Name: "name", Label: "Name", Type: models.VariableString, Required: true, Default: "anon"},
	}
	resolved, err := ResolveVariables(defs, nil)
	if err != nil {
		t.Fatalf("required variable with default should not fail: %v", err)
	}
	if resolved["name"] != "anon" {
		t.Errorf("default not applied: %v", resolved["name"])
	}
}

func TestResolveVariablesFalsyProvidedValueCounts(t *testing.T) {
	defs := []models.TemplateVariable{
		{Name: "enabled", Label: "Enabled", Type: models.VariableBoolean, Required: true},
	}
	resolved, err := ResolveVariables(defs, map[string]interface{}{"enabled": false})
	if err != nil {
		t.Fatalf("explicitly provided false should satisfy required: %v", err)
	}
	if resolved["enabled"] != false {
		t.Errorf("resolved value = %v", resolved["enabled"])
	}
}
