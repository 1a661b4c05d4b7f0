// Package storage loads and saves template definitions on disk.
//
// Templates are YAML documents, one template per file. A library manifest
// is a YAML descriptor carrying a name, a version and a list of member
// template paths relative to the manifest. Loading validates every
// definition before it is returned; a file that parses but fails structural
// validation is rejected whole, naming each missing field.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/validation"
)

// Storage handles file system operations for template libraries
type Storage struct {
	rootPath string
}

// NewStorage creates a storage instance rooted at rootPath, defaulting to
// ~/.blueprints when rootPath is empty
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".blueprints")
	}
	return &Storage{rootPath: rootPath}, nil
}

// InitLibrary creates the directory structure for a template library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, "libraries"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// LoadTemplate reads and validates a template document relative to the
// storage root
func (s *Storage) LoadTemplate(path string) (*models.CustomTemplate, error) {
	return LoadTemplateFile(filepath.Join(s.rootPath, path))
}

// LoadTemplateFile reads and validates a template document at an arbitrary
// path. It fails with a parse error for malformed YAML and a validation
// error naming every missing mandatory field.
func LoadTemplateFile(path string) (*models.CustomTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, fmt.Sprintf("Template file %s does not exist", path))
		}
		return nil, errors.StorageError("read template "+path, err)
	}

	template, err := ParseTemplate(data)
	if err != nil {
		appErr := errors.GetAppError(err)
		return nil, appErr.WithContext("path", path)
	}

	template.FilePath = path
	return template, nil
}

// ParseTemplate unmarshals and validates a serialized template document
func ParseTemplate(data []byte) (*models.CustomTemplate, error) {
	var template models.CustomTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, errors.ParseError("document", err)
	}

	if result := validation.ValidateTemplate(&template); !result.Valid {
		return nil, result.ToAppError()
	}
	return &template, nil
}

// SaveTemplate serializes a template to its FilePath under the storage root
func (s *Storage) SaveTemplate(template *models.CustomTemplate) error {
	if template.FilePath == "" {
		template.FilePath = filepath.Join("templates", template.Meta.ID+".yaml")
	}
	fullPath := template.FilePath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(s.rootPath, fullPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.StorageError("create directory", err)
	}

	data, err := yaml.Marshal(template)
	if err != nil {
		return errors.StorageError("serialize template "+template.Meta.ID, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return errors.StorageError("write template "+template.Meta.ID, err)
	}
	return nil
}

// LoadLibrary resolves a library manifest into its member templates.
// Any member failure aborts the whole batch.
func LoadLibrary(manifestPath string) (*models.Library, []*models.CustomTemplate, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(err, errors.ErrCodeFileNotFound, fmt.Sprintf("Library manifest %s does not exist", manifestPath))
		}
		return nil, nil, errors.StorageError("read manifest "+manifestPath, err)
	}

	var library models.Library
	if err := yaml.Unmarshal(data, &library); err != nil {
		return nil, nil, errors.ParseError(manifestPath, err)
	}
	if library.Name == "" {
		return nil, nil, errors.MissingFieldError("library manifest "+manifestPath, "name")
	}
	if library.Version == "" {
		return nil, nil, errors.MissingFieldError("library manifest "+manifestPath, "version")
	}
	if len(library.Templates) == 0 {
		return nil, nil, errors.MissingFieldError("library manifest "+manifestPath, "templates")
	}
	library.FilePath = manifestPath

	baseDir := filepath.Dir(manifestPath)
	templates := make([]*models.CustomTemplate, 0, len(library.Templates))
	for _, member := range library.Templates {
		memberPath := member
		if !filepath.IsAbs(memberPath) {
			memberPath = filepath.Join(baseDir, member)
		}
		template, err := LoadTemplateFile(memberPath)
		if err != nil {
			return nil, nil, errors.GetAppError(err).WithContext("library", library.Name)
		}
		templates = append(templates, template)
	}
	return &library, templates, nil
}

// ImportDirectory walks dir recursively and loads every .yaml/.yml template
// document it finds. Library manifests (recognized by a top-level templates
// list without a meta block) are expanded into their members. The first bad
// file aborts the import; nothing is silently skipped.
func ImportDirectory(dir string) ([]*models.CustomTemplate, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, fmt.Sprintf("Directory %s does not exist", dir))
	}
	if !info.IsDir() {
		return nil, errors.ValidationError(fmt.Sprintf("%s is not a directory", dir))
	}

	var templates []*models.CustomTemplate
	seenMembers := make(map[string]bool)

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isYAMLFile(path) {
			return nil
		}
		if seenMembers[path] {
			return nil
		}

		if isManifest(path) {
			_, members, err := LoadLibrary(path)
			if err != nil {
				return err
			}
			for _, member := range members {
				seenMembers[member.FilePath] = true
				templates = append(templates, member)
			}
			return nil
		}

		template, err := LoadTemplateFile(path)
		if err != nil {
			return err
		}
		templates = append(templates, template)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Walk order can list a manifest after a member it already covers;
	// drop the duplicates the direct loads produced.
	deduped := templates[:0]
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if seen[t.Meta.ID] {
			continue
		}
		seen[t.Meta.ID] = true
		deduped = append(deduped, t)
	}
	return deduped, nil
}

// isManifest sniffs whether a YAML file is a library manifest rather than a
// template document
func isManifest(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var probe struct {
		Meta      *models.TemplateMeta `yaml:"meta"`
		Templates []string             `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Meta == nil && len(probe.Templates) > 0
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
