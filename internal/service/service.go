// Package service wires storage, the compilation engine and the renderer
// into one facade used by every interface (CLI, interactive form, API
// callers). It owns the registry for the session: templates loaded from
// disk or registered programmatically live here, and compile/render calls
// go through it.
package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/engine"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/renderer"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/storage"
)

// Service provides business logic for template management and compilation
type Service struct {
	storage *storage.Storage
	engine  *engine.Engine
}

// NewService creates a service rooted at BLUEPRINT_DIR (or ~/.blueprints)
func NewService() (*Service, error) {
	rootPath := os.Getenv("BLUEPRINT_DIR")
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return &Service{
		storage: store,
		engine:  engine.New(),
	}, nil
}

// NewServiceWithStorage creates a service over an explicit storage root
func NewServiceWithStorage(store *storage.Storage) *Service {
	return &Service{
		storage: store,
		engine:  engine.New(),
	}
}

// InitLibrary creates the on-disk library structure
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// Engine exposes the compilation engine, e.g. for helper registration
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// RegisterTemplate validates nothing extra: loaded templates are already
// validated, programmatic ones are the caller's responsibility. The
// registry overwrites on re-registration of the same ID.
func (s *Service) RegisterTemplate(t *models.CustomTemplate) {
	s.engine.Register(t)
}

// LoadTemplateFile loads, validates and registers a single template document
func (s *Service) LoadTemplateFile(path string) (*models.CustomTemplate, error) {
	template, err := storage.LoadTemplateFile(path)
	if err != nil {
		return nil, err
	}
	s.engine.Register(template)
	return template, nil
}

// LoadLibrary resolves a manifest and registers every member template
func (s *Service) LoadLibrary(manifestPath string) (*models.Library, error) {
	library, templates, err := storage.LoadLibrary(manifestPath)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		s.engine.Register(t)
	}
	return library, nil
}

// ImportDirectory loads every template document under dir and registers
// the batch. A single bad file fails the whole import.
func (s *Service) ImportDirectory(dir string) ([]*models.CustomTemplate, error) {
	templates, err := storage.ImportDirectory(dir)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		s.engine.Register(t)
	}
	return templates, nil
}

// LoadDefaultLibrary imports the templates directory under the storage root
func (s *Service) LoadDefaultLibrary() ([]*models.CustomTemplate, error) {
	return s.ImportDirectory(s.storage.GetBaseDir())
}

// ListTemplates returns registered templates in registration order
func (s *Service) ListTemplates() []*models.CustomTemplate {
	return s.engine.List()
}

// SearchTemplates fuzzy-matches the query against template ids, names,
// categories and tags
func (s *Service) SearchTemplates(query string) []*models.CustomTemplate {
	templates := s.engine.List()
	if query == "" {
		return templates
	}

	var searchStrings []string
	for _, t := range templates {
		searchStr := fmt.Sprintf("%s %s %s %s",
			t.Meta.ID,
			t.Meta.Name,
			t.Meta.Category,
			strings.Join(t.Meta.Tags, " "))
		searchStrings = append(searchStrings, searchStr)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.CustomTemplate
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results
}

// GetTemplate returns a registered template by ID
func (s *Service) GetTemplate(id string) (*models.CustomTemplate, error) {
	t, ok := s.engine.Get(id)
	if !ok {
		return nil, errors.NotFoundError(fmt.Sprintf("template '%s'", id))
	}
	return t, nil
}

// ResolveTemplate flattens a registered template's inheritance chain
func (s *Service) ResolveTemplate(id string) (*models.CustomTemplate, error) {
	t, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	return s.engine.Resolve(t)
}

// TemplateVariables returns the effective variable schema of a template
// after inheritance resolution, for variable intake flows
func (s *Service) TemplateVariables(id string) ([]models.TemplateVariable, error) {
	flat, err := s.ResolveTemplate(id)
	if err != nil {
		return nil, err
	}
	return flat.Variables, nil
}

// Compile compiles a registered template against a caller context
func (s *Service) Compile(id string, context map[string]interface{}) (*models.CompiledTemplate, error) {
	return s.engine.CompileByID(id, context)
}

// Render compiles a registered template and renders it to markdown
func (s *Service) Render(id string, context map[string]interface{}) (string, error) {
	compiled, err := s.Compile(id, context)
	if err != nil {
		return "", err
	}
	return renderer.NewRenderer(compiled).RenderMarkdown(), nil
}

// PromptPlan returns the template's AI-generation directives after
// inheritance resolution (parent prompts first). The engine never executes
// these; the surrounding system feeds them to a text-completion provider
// and injects the results back.
func (s *Service) PromptPlan(id string) ([]models.PromptDirective, error) {
	flat, err := s.ResolveTemplate(id)
	if err != nil {
		return nil, err
	}
	return flat.Prompts, nil
}

// InjectGeneratedContent overwrites a compiled section's content with
// externally generated text, returning false when no section carries the
// given ID. This is the post-compilation substitution seam for prompt
// directives.
func InjectGeneratedContent(compiled *models.CompiledTemplate, sectionID, content string) bool {
	return injectContent(compiled.Sections, sectionID, content)
}

func injectContent(sections []models.CompiledSection, sectionID, content string) bool {
	for i := range sections {
		if sections[i].ID == sectionID {
			sections[i].Content = content
			return true
		}
		if injectContent(sections[i].Sections, sectionID, content) {
			return true
		}
	}
	return false
}

// SaveTemplate persists a template under the storage root
func (s *Service) SaveTemplate(t *models.CustomTemplate) error {
	return s.storage.SaveTemplate(t)
}
