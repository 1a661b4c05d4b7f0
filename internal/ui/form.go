package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/interp"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// VariableForm collects values for a template's variable schema, one text
// input per variable. Defaults are prefilled; select variables show their
// options as suggestions.
type VariableForm struct {
	variables []models.TemplateVariable
	inputs    []textinput.Model
	focused   int
	submitted bool
	cancelled bool
}

// NewVariableForm builds a form over the effective variable schema of a
// resolved template
func NewVariableForm(variables []models.TemplateVariable) *VariableForm {
	inputs := make([]textinput.Model, len(variables))

	for i, v := range variables {
		input := textinput.New()
		input.CharLimit = 500
		input.Width = 60
		input.Placeholder = placeholderFor(v)

		if v.Default != nil {
			input.SetValue(interp.FormatValue(v.Default))
		}

		if len(v.Options) > 0 {
			input.SetSuggestions(v.Options)
			input.ShowSuggestions = true
		}

		inputs[i] = input
	}

	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return &VariableForm{
		variables: variables,
		inputs:    inputs,
	}
}

// placeholderFor builds hint text from the variable declaration
func placeholderFor(v models.TemplateVariable) string {
	switch v.Type {
	case models.VariableBoolean:
		return "true / false"
	case models.VariableNumber:
		return "number"
	case models.VariableSelect:
		return strings.Join(v.Options, " | ")
	case models.VariableMultiSelect:
		return strings.Join(v.Options, ", ") + " (comma-separated)"
	case models.VariableDate:
		return "2006-01-02"
	default:
		if v.Description != "" {
			return v.Description
		}
		return v.Label
	}
}

// Update handles form key events
func (f *VariableForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "enter":
			f.nextField()
			return nil
		case "shift+tab", "up":
			f.prevField()
			return nil
		case "ctrl+s":
			f.submitted = true
			return nil
		case "esc":
			f.cancelled = true
			return nil
		}
	}

	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f *VariableForm) nextField() {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focused].Blur()
	f.focused++
	if f.focused >= len(f.inputs) {
		f.focused = 0
	}
	f.inputs[f.focused].Focus()
}

func (f *VariableForm) prevField() {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focused].Blur()
	f.focused--
	if f.focused < 0 {
		f.focused = len(f.inputs) - 1
	}
	f.inputs[f.focused].Focus()
}

// View renders the form fields with labels and help text
func (f *VariableForm) View() string {
	var b strings.Builder

	for i, v := range f.variables {
		label := v.Label
		if label == "" {
			label = v.Name
		}
		if v.Required {
			label += StyleRequired.Render(" *")
		}

		if i == f.focused {
			b.WriteString(StyleFocused.Render("▶ " + label))
		} else {
			b.WriteString(StyleFormLabel.Render("  " + label))
		}
		b.WriteString("\n")
		b.WriteString("  " + f.inputs[i].View())
		b.WriteString("\n")

		if v.Description != "" && i == f.focused {
			b.WriteString(StyleFormHelp.Render(v.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsSubmitted reports whether the form was confirmed with ctrl+s
func (f *VariableForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled reports whether the form was dismissed with esc
func (f *VariableForm) IsCancelled() bool {
	return f.cancelled
}

// Values coerces the entered text into typed variable values. Blank inputs
// are omitted so compilation can fall back to declared defaults.
func (f *VariableForm) Values() map[string]interface{} {
	values := make(map[string]interface{})

	for i, v := range f.variables {
		raw := strings.TrimSpace(f.inputs[i].Value())
		if raw == "" {
			continue
		}
		values[v.Name] = coerceValue(v.Type, raw)
	}

	return values
}

// coerceValue converts form text into the variable's declared type, falling
// back to the raw string when the text does not parse
func coerceValue(varType models.VariableType, raw string) interface{} {
	switch varType {
	case models.VariableNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	case models.VariableBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case models.VariableMultiSelect:
		var items []interface{}
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		return items
	}
	return raw
}

// Reset clears all inputs and focus state
func (f *VariableForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focused = 0
	f.submitted = false
	f.cancelled = false
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}
