package models

// CompiledSection is the fully interpolated, condition-pruned form of a
// template section. Nested sections that failed their visibility condition
// are absent entirely; no partial subtrees survive.
type CompiledSection struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content,omitempty"`
	Collapsible bool              `json:"collapsible,omitempty"`
	Prompt      string            `json:"prompt,omitempty"`
	Sections    []CompiledSection `json:"sections,omitempty"`
}

// CompiledTemplate is the output of a compile call: interpolated name and
// section tree plus the final resolved variable mapping that produced it.
// It is rebuilt from scratch on every compile and never cached.
type CompiledTemplate struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Meta      TemplateMeta           `json:"meta"`
	Sections  []CompiledSection      `json:"sections"`
	Variables map[string]interface{} `json:"variables"`
}

// Library is a manifest grouping template files under a shared name and
// version. Member paths are relative to the manifest file.
type Library struct {
	Name        string   `yaml:"name" json:"name"`
	Version     string   `yaml:"version" json:"version"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Templates   []string `yaml:"templates" json:"templates"`

	FilePath string `yaml:"-" json:"-"`
}
