package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
)

// NewMarkdownRenderer creates a glamour renderer with contrast handling that
// matches the terminal's background and color depth
func NewMarkdownRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Environment variable override wins over detection
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("dark")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	} else {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("light")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// RenderPretty renders markdown for terminal display, falling back to the
// plain text when the renderer cannot be constructed
func RenderPretty(markdown string, wordWrap int) string {
	renderer, err := NewMarkdownRenderer(wordWrap)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// formModel is the bubbletea program that drives a VariableForm
type formModel struct {
	templateName string
	form         *VariableForm
	width        int
	height       int
	done         bool
}

func newFormModel(templateName string, variables []models.TemplateVariable) formModel {
	return formModel{
		templateName: templateName,
		form:         NewVariableForm(variables),
	}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.form.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	cmd := m.form.Update(msg)
	if m.form.IsSubmitted() || m.form.IsCancelled() {
		m.done = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m formModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Variables for %s", m.templateName)))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString(CreateHelp("tab/enter: next field • shift+tab: previous • ctrl+s: compile • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// ErrFormCancelled reports that the user dismissed the variable form
var ErrFormCancelled = fmt.Errorf("variable form cancelled")

// RunVariableForm collects variable values interactively and returns the
// coerced map, or ErrFormCancelled when the user backs out
func RunVariableForm(templateName string, variables []models.TemplateVariable) (map[string]interface{}, error) {
	program := tea.NewProgram(newFormModel(templateName, variables))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run variable form: %w", err)
	}

	m, ok := final.(formModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from variable form")
	}
	if m.form.IsCancelled() {
		return nil, ErrFormCancelled
	}
	return m.form.Values(), nil
}
