// Package engine compiles registered templates into renderable documents.
//
// A compile call runs three stages: inheritance resolution flattens an
// extends chain into a single template, variable resolution merges the
// declared schema with caller-supplied values, and section compilation
// prunes conditional sections and interpolates titles and content. The
// result is a fresh CompiledTemplate every call; nothing is cached.
//
// The engine owns its template registry as plain constructor-injected
// state. Compile and render perform no I/O and keep no hidden mutable
// state, so repeated compiles of the same inputs yield identical output.
// Concurrent registration must be serialized by the caller.
package engine

import (
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/interp"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// Engine holds the template registry and the interpolation engine
type Engine struct {
	templates map[string]*models.CustomTemplate
	order     []string // registration order for stable listing
	interp    *interp.Engine
}

// New creates an empty engine with the built-in interpolation helpers
func New() *Engine {
	return &Engine{
		templates: make(map[string]*models.CustomTemplate),
		interp:    interp.New(),
	}
}

// Interp exposes the interpolation engine so callers can register helpers
func (e *Engine) Interp() *interp.Engine {
	return e.interp
}

// Register adds a template to the registry, keyed by meta ID.
// Re-registration of the same ID overwrites the previous definition.
func (e *Engine) Register(t *models.CustomTemplate) {
	if _, exists := e.templates[t.Meta.ID]; !exists {
		e.order = append(e.order, t.Meta.ID)
	}
	e.templates[t.Meta.ID] = t
}

// Get looks up a registered template by ID
func (e *Engine) Get(id string) (*models.CustomTemplate, bool) {
	t, ok := e.templates[id]
	return t, ok
}

// List returns registered templates in registration order
func (e *Engine) List() []*models.CustomTemplate {
	out := make([]*models.CustomTemplate, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.templates[id])
	}
	return out
}

// Compile flattens the template's inheritance chain, resolves its variable
// schema against the caller context, and compiles the section tree.
func (e *Engine) Compile(t *models.CustomTemplate, context map[string]interface{}) (*models.CompiledTemplate, error) {
	flat, err := e.Resolve(t)
	if err != nil {
		return nil, err
	}

	vars, err := ResolveVariables(flat.Variables, context)
	if err != nil {
		return nil, err
	}

	return &models.CompiledTemplate{
		ID:        flat.Meta.ID,
		Name:      e.interp.Interpolate(flat.Meta.Name, vars),
		Meta:      flat.Meta,
		Sections:  e.compileSections(flat.Sections, vars),
		Variables: vars,
	}, nil
}

// CompileByID compiles a registered template
func (e *Engine) CompileByID(id string, context map[string]interface{}) (*models.CompiledTemplate, error) {
	t, ok := e.Get(id)
	if !ok {
		return nil, errors.NotFoundError("template '" + id + "'")
	}
	return e.Compile(t, context)
}
