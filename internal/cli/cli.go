// Package cli implements the headless command surface: template listing,
// inspection, validation and compilation without the interactive form.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/clipboard"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/models"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/service"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/storage"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/ui"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "list", "ls":
		return c.listTemplates(commandArgs)
	case "search":
		return c.searchTemplates(commandArgs)
	case "show", "get":
		return c.showTemplate(commandArgs)
	case "validate":
		return c.validateFile(commandArgs)
	case "vars":
		return c.showVariables(commandArgs)
	case "compile":
		return c.compileTemplate(commandArgs)
	case "render":
		return c.renderTemplate(commandArgs)
	case "import":
		return c.importTemplates(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// listTemplates lists all registered templates
func (c *CLI) listTemplates(args []string) error {
	format := flagValue(args, "--format", "-f")

	templates := c.service.ListTemplates()
	return c.formatOutput(templates, format)
}

// searchTemplates fuzzy-searches registered templates
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}
	query := args[0]
	format := flagValue(args[1:], "--format", "-f")

	templates := c.service.SearchTemplates(query)
	return c.formatOutput(templates, format)
}

// showTemplate prints a single template's metadata, variables and sections
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template ID")
	}
	id := args[0]
	format := flagValue(args[1:], "--format", "-f")

	template, err := c.service.GetTemplate(id)
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	if hasFlag(args[1:], "--resolved", "-r") {
		template, err = c.service.ResolveTemplate(id)
		if err != nil {
			return fmt.Errorf("failed to resolve template: %w", err)
		}
	}

	return c.formatSingleTemplate(template, format)
}

// validateFile loads a template document and reports validation problems
func (c *CLI) validateFile(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("validate requires a file path")
	}
	path := args[0]

	if _, err := storage.LoadTemplateFile(path); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("%s is valid\n", path)
	return nil
}

// showVariables prints the effective variable schema after inheritance
func (c *CLI) showVariables(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("vars requires a template ID")
	}
	id := args[0]
	format := flagValue(args[1:], "--format", "-f")

	variables, err := c.service.TemplateVariables(id)
	if err != nil {
		return fmt.Errorf("failed to resolve variables: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(variables)
	}

	if len(variables) == 0 {
		fmt.Println("No variables declared")
		return nil
	}

	for _, v := range variables {
		fmt.Printf("%s (%s)", v.Name, v.Type)
		if v.Required {
			fmt.Print(" [required]")
		}
		if v.Default != nil {
			fmt.Printf(" [default: %v]", v.Default)
		}
		if len(v.Options) > 0 {
			fmt.Printf(" [options: %s]", strings.Join(v.Options, ", "))
		}
		if v.Description != "" {
			fmt.Printf(" - %s", v.Description)
		}
		fmt.Println()
	}
	return nil
}

// compileTemplate compiles a template and prints the compiled tree as JSON
func (c *CLI) compileTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("compile requires a template ID")
	}
	id := args[0]

	context, err := c.collectContext(id, args[1:])
	if err != nil {
		return err
	}

	compiled, err := c.service.Compile(id, context)
	if err != nil {
		return fmt.Errorf("failed to compile template: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(compiled)
}

// renderTemplate compiles a template and prints the markdown document
func (c *CLI) renderTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("render requires a template ID")
	}
	id := args[0]

	context, err := c.collectContext(id, args[1:])
	if err != nil {
		return err
	}

	markdown, err := c.service.Render(id, context)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	if hasFlag(args[1:], "--copy", "-C") {
		if err := clipboard.Copy(markdown); err != nil {
			return err
		}
		fmt.Println("Copied to clipboard")
		return nil
	}

	if outFile := flagValue(args[1:], "--out", "-o"); outFile != "" {
		if err := os.WriteFile(outFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Rendered to %s\n", outFile)
		return nil
	}

	if hasFlag(args[1:], "--pretty", "-p") {
		fmt.Print(ui.RenderPretty(markdown, 100))
		return nil
	}

	fmt.Print(markdown)
	return nil
}

// importTemplates loads every template document under a directory
func (c *CLI) importTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires a directory path")
	}
	dir := args[0]

	templates, err := c.service.ImportDirectory(dir)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d template(s) from %s\n", len(templates), dir)
	for _, t := range templates {
		fmt.Printf("  %s - %s\n", t.Meta.ID, t.Meta.Name)
	}
	return nil
}

// collectContext assembles the variable context for compile/render from a
// --context file, repeated --var flags and optionally the interactive form.
// Precedence: --var beats --context beats form input for the same key.
func (c *CLI) collectContext(id string, args []string) (map[string]interface{}, error) {
	context := make(map[string]interface{})

	if hasFlag(args, "--interactive", "-i") {
		variables, err := c.service.TemplateVariables(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve variables: %w", err)
		}
		values, err := ui.RunVariableForm(id, variables)
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			context[k] = v
		}
	}

	if contextFile := flagValue(args, "--context", "-c"); contextFile != "" {
		data, err := os.ReadFile(contextFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read context file: %w", err)
		}
		var fileContext map[string]interface{}
		if err := yaml.Unmarshal(data, &fileContext); err != nil {
			return nil, fmt.Errorf("failed to parse context file: %w", err)
		}
		for k, v := range fileContext {
			context[k] = v
		}
	}

	for _, pair := range flagValues(args, "--var", "-v") {
		key, value, err := parseVarFlag(pair)
		if err != nil {
			return nil, err
		}
		context[key] = value
	}

	return context, nil
}

// parseVarFlag splits a key=value pair, coercing bare booleans and numbers
func parseVarFlag(pair string) (string, interface{}, error) {
	idx := strings.Index(pair, "=")
	if idx <= 0 {
		return "", nil, fmt.Errorf("invalid --var %q, expected key=value", pair)
	}
	key := pair[:idx]
	raw := pair[idx+1:]

	if b, err := strconv.ParseBool(raw); err == nil {
		return key, b, nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return key, n, nil
	}
	return key, raw, nil
}

// formatOutput prints a template list in the requested format
func (c *CLI) formatOutput(templates []*models.CustomTemplate, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(templates)
	case "ids":
		for _, t := range templates {
			fmt.Println(t.Meta.ID)
		}
	case "table":
		fmt.Printf("%-24s %-32s %-12s %s\n", "ID", "Name", "Version", "Category")
		fmt.Println(strings.Repeat("-", 80))
		for _, t := range templates {
			name := t.Meta.Name
			if len(name) > 32 {
				name = name[:29] + "..."
			}
			fmt.Printf("%-24s %-32s %-12s %s\n",
				t.Meta.ID, name, t.Meta.Version, t.Meta.Category)
		}
	default:
		for _, t := range templates {
			fmt.Printf("%s - %s\n", t.Meta.ID, t.Meta.Name)
			if t.Meta.Description != "" {
				fmt.Printf("  %s\n", t.Meta.Description)
			}
			if len(t.Meta.Tags) > 0 {
				fmt.Printf("  Tags: %s\n", strings.Join(t.Meta.Tags, ", "))
			}
			fmt.Println()
		}
	}
	return nil
}

// formatSingleTemplate prints one template's full declaration
func (c *CLI) formatSingleTemplate(template *models.CustomTemplate, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(template)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(template)
	default:
		fmt.Printf("ID: %s\n", template.Meta.ID)
		fmt.Printf("Name: %s\n", template.Meta.Name)
		fmt.Printf("Version: %s\n", template.Meta.Version)
		fmt.Printf("Category: %s\n", template.Meta.Category)
		fmt.Printf("Scope: %s\n", template.Meta.Scope)
		if template.Meta.Description != "" {
			fmt.Printf("Description: %s\n", template.Meta.Description)
		}
		if len(template.Meta.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(template.Meta.Tags, ", "))
		}
		if template.Extends != "" {
			fmt.Printf("Extends: %s\n", template.Extends)
		}

		if len(template.Variables) > 0 {
			fmt.Println("\nVariables:")
			for _, v := range template.Variables {
				fmt.Printf("  %s (%s)", v.Name, v.Type)
				if v.Required {
					fmt.Print(" [required]")
				}
				if v.Default != nil {
					fmt.Printf(" [default: %v]", v.Default)
				}
				fmt.Println()
			}
		}

		if len(template.Sections) > 0 {
			fmt.Println("\nSections:")
			printSectionOutline(template.Sections, 1)
		}
	}
	return nil
}

// printSectionOutline prints the section tree as an indented outline
func printSectionOutline(sections []models.TemplateSection, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, s := range sections {
		fmt.Printf("%s%s - %s", indent, s.ID, s.Title)
		if s.Condition != nil {
			fmt.Printf(" [if %s %s]", s.Condition.Variable, s.Condition.Operator)
		}
		if s.Prompt != "" {
			fmt.Print(" [generated]")
		}
		fmt.Println()
		printSectionOutline(s.Sections, depth+1)
	}
}

// flagValue returns the value following the first occurrence of a flag
func flagValue(args []string, long, short string) string {
	for i, arg := range args {
		if (arg == long || arg == short) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// flagValues returns the values of every occurrence of a repeatable flag
func flagValues(args []string, long, short string) []string {
	var values []string
	for i, arg := range args {
		if (arg == long || arg == short) && i+1 < len(args) {
			values = append(values, args[i+1])
		}
	}
	return values
}

// hasFlag reports whether a bare flag is present
func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || arg == short {
			return true
		}
	}
	return false
}

func (c *CLI) printUsage() error {
	fmt.Println(`Blueprint template compiler

Usage:
  blueprint <command> [arguments]

Commands:
  list, ls                      List registered templates
  search <query>                Fuzzy-search templates by id, name, category, tags
  show <id> [--resolved]        Show a template (--resolved flattens inheritance)
  validate <path>               Validate a template document
  vars <id>                     Show a template's effective variable schema
  compile <id>                  Compile to the structured JSON tree
  render <id>                   Compile and render to markdown
  import <dir>                  Import every template document under a directory
  help                          Show this help

Flags for compile/render:
  --var, -v key=value           Set a variable (repeatable)
  --context, -c file.yaml       Load variables from a YAML mapping
  --interactive, -i             Collect variables with the interactive form
  --pretty, -p                  Render markdown for the terminal (render only)
  --copy, -C                    Copy the rendered markdown to the clipboard
  --out, -o file.md             Write output to a file (render only)

Flags for list/search/show/vars:
  --format, -f <format>         Output format: json, ids, table (list/search)
                                json, yaml (show), json (vars)`)
	return nil
}
