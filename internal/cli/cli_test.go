package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/service"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/storage"
)

func TestParseVarFlag(t *testing.T) {
	tests := []struct {
		name    string
		pair    string
		wantKey string
		wantVal interface{}
		wantErr bool
	}{
		{"string value", "name=Ada", "name", "Ada", false},
		{"boolean value", "hasAuth=true", "hasAuth", true, false},
		{"number value", "count=3", "count", 3.0, false},
		{"value with equals", "query=a=b", "query", "a=b", false},
		{"empty value", "name=", "name", "", false},
		{"missing equals", "name", "", nil, true},
		{"missing key", "=value", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, val, err := parseVarFlag(tt.pair)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseVarFlag(%q) expected error", tt.pair)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVarFlag(%q) failed: %v", tt.pair, err)
			}
			if key != tt.wantKey || !reflect.DeepEqual(val, tt.wantVal) {
				t.Errorf("parseVarFlag(%q) = %q, %v", tt.pair, key, val)
			}
		})
	}
}

func TestFlagHelpers(t *testing.T) {
	args := []string{"--var", "a=1", "--pretty", "--var", "b=2", "--context", "ctx.yaml"}

	if got := flagValue(args, "--context", "-c"); got != "ctx.yaml" {
		t.Errorf("flagValue = %q", got)
	}
	if got := flagValues(args, "--var", "-v"); !reflect.DeepEqual(got, []string{"a=1", "b=2"}) {
		t.Errorf("flagValues = %v", got)
	}
	if !hasFlag(args, "--pretty", "-p") {
		t.Error("hasFlag missed --pretty")
	}
	if hasFlag(args, "--out", "-o") {
		t.Error("hasFlag reported absent flag")
	}
}

func TestCollectContextPrecedence(t *testing.T) {
	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewCLI(service.NewServiceWithStorage(store))

	dir := t.TempDir()
	contextFile := filepath.Join(dir, "ctx.yaml")
	if err := os.WriteFile(contextFile, []byte("name: FromFile\nenv: dev\n"), 0644); err != nil {
		t.Fatal(err)
	}

	args := []string{"--context", contextFile, "--var", "name=FromFlag"}
	context, err := c.collectContext("any", args)
	if err != nil {
		t.Fatalf("collectContext failed: %v", err)
	}

	if context["name"] != "FromFlag" {
		t.Errorf("--var should override --context, got %v", context["name"])
	}
	if context["env"] != "dev" {
		t.Errorf("context file value missing: %v", context["env"])
	}
}

func TestCollectContextMissingFile(t *testing.T) {
	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewCLI(service.NewServiceWithStorage(store))

	if _, err := c.collectContext("any", []string{"--context", "/does/not/exist.yaml"}); err == nil {
		t.Error("expected error for missing context file")
	}
}

func TestExecuteCommandUnknown(t *testing.T) {
	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewCLI(service.NewServiceWithStorage(store))

	if err := c.ExecuteCommand([]string{"frobnicate"}); err == nil {
		t.Error("expected error for unknown command")
	}
}
