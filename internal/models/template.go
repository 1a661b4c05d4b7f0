package models

// TemplateScope classifies how much ground a template covers
type TemplateScope string

const (
	ScopeMVP           TemplateScope = "mvp"
	ScopeStandard      TemplateScope = "standard"
	ScopeComprehensive TemplateScope = "comprehensive"
	ScopeEnterprise    TemplateScope = "enterprise"
)

// ValidScopes lists the accepted values for TemplateMeta.Scope
var ValidScopes = []TemplateScope{ScopeMVP, ScopeStandard, ScopeComprehensive, ScopeEnterprise}

// VariableType describes how a template variable should be collected and coerced
type VariableType string

const (
	VariableString      VariableType = "string"
	VariableNumber      VariableType = "number"
	VariableBoolean     VariableType = "boolean"
	VariableSelect      VariableType = "select"
	VariableMultiSelect VariableType = "multiselect"
	VariableText        VariableType = "text"
	VariableDate        VariableType = "date"
)

// ValidVariableTypes lists the accepted values for TemplateVariable.Type
var ValidVariableTypes = []VariableType{
	VariableString, VariableNumber, VariableBoolean,
	VariableSelect, VariableMultiSelect, VariableText, VariableDate,
}

// TemplateMeta holds the identifying metadata of a template.
// ID, Name, Description, Version, Category and Scope are mandatory;
// a template missing any of them fails validation at load time.
type TemplateMeta struct {
	ID          string        `yaml:"id" json:"id"`
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	Version     string        `yaml:"version" json:"version"`
	Category    string        `yaml:"category" json:"category"`
	Scope       TemplateScope `yaml:"scope" json:"scope"`
	Author      string        `yaml:"author,omitempty" json:"author,omitempty"`
	Audience    string        `yaml:"audience,omitempty" json:"audience,omitempty"`
	Tags        []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
	License     string        `yaml:"license,omitempty" json:"license,omitempty"`
}

// TemplateVariable declares a named value that a template interpolates.
// Name is the interpolation key and must be unique within a template.
// A required variable with no default must be supplied by the caller at
// compile time.
type TemplateVariable struct {
	Name        string       `yaml:"name" json:"name"`
	Label       string       `yaml:"label" json:"label"`
	Type        VariableType `yaml:"type" json:"type"`
	Default     interface{}  `yaml:"default,omitempty" json:"default,omitempty"`
	Required    bool         `yaml:"required,omitempty" json:"required,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Options     []string     `yaml:"options,omitempty" json:"options,omitempty"`
	Pattern     string       `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Min         *float64     `yaml:"min,omitempty" json:"min,omitempty"`
	Max         *float64     `yaml:"max,omitempty" json:"max,omitempty"`
}

// ConditionOperator is the comparison applied by a SectionCondition
type ConditionOperator string

const (
	OpEquals      ConditionOperator = "equals"
	OpNotEquals   ConditionOperator = "not_equals"
	OpContains    ConditionOperator = "contains"
	OpNotContains ConditionOperator = "not_contains"
	OpGreaterThan ConditionOperator = "greater_than"
	OpLessThan    ConditionOperator = "less_than"
	OpExists      ConditionOperator = "exists"
	OpNotExists   ConditionOperator = "not_exists"
)

// SectionCondition gates a section's visibility on a resolved variable.
// Value is only meaningful for the value-comparing operators.
type SectionCondition struct {
	Variable string            `yaml:"variable" json:"variable"`
	Operator ConditionOperator `yaml:"operator" json:"operator"`
	Value    interface{}       `yaml:"value,omitempty" json:"value,omitempty"`
}

// TemplateSection is a titled content node in a template's section tree.
// ID must be unique among siblings. Order is a sort weight applied after
// inheritance merging; ties keep their merge-insertion order. Prompt names
// an AI-generation directive fulfilled by the surrounding system, never by
// the engine.
type TemplateSection struct {
	ID          string            `yaml:"id" json:"id"`
	Title       string            `yaml:"title" json:"title"`
	Content     string            `yaml:"content,omitempty" json:"content,omitempty"`
	Order       *int              `yaml:"order,omitempty" json:"order,omitempty"`
	Collapsible bool              `yaml:"collapsible,omitempty" json:"collapsible,omitempty"`
	Sections    []TemplateSection `yaml:"sections,omitempty" json:"sections,omitempty"`
	Condition   *SectionCondition `yaml:"condition,omitempty" json:"condition,omitempty"`
	Prompt      string            `yaml:"prompt,omitempty" json:"prompt,omitempty"`
}

// PromptDirective asks the surrounding system to generate content for a
// section via an external text-completion provider. The engine only carries
// these; it never executes them.
type PromptDirective struct {
	Section string `yaml:"section" json:"section"`
	System  string `yaml:"system,omitempty" json:"system,omitempty"`
	User    string `yaml:"user" json:"user"`
	Model   string `yaml:"model,omitempty" json:"model,omitempty"`
}

// CustomTemplate is a full template definition: metadata, a variable
// schema, a section tree, and optionally a parent to inherit from.
// Templates are never mutated after registration; compilation produces a
// fresh CompiledTemplate each call.
type CustomTemplate struct {
	Meta      TemplateMeta       `yaml:"meta" json:"meta"`
	Variables []TemplateVariable `yaml:"variables,omitempty" json:"variables,omitempty"`
	Sections  []TemplateSection  `yaml:"sections" json:"sections"`
	Extends   string             `yaml:"extends,omitempty" json:"extends,omitempty"`
	Prompts   []PromptDirective  `yaml:"prompts,omitempty" json:"prompts,omitempty"`

	// FilePath is where the template was loaded from, if it came from disk
	FilePath string `yaml:"-" json:"-"`
}

// OrderWeight returns the section's sort weight, treating a missing order as 0
func (s *TemplateSection) OrderWeight() int {
	if s.Order == nil {
		return 0
	}
	return *s.Order
}
