// Package interp implements the interpolation sub-language applied to
// template titles and content: plain {{variable}} substitution, conditional
// blocks, loop blocks, and helper-function calls.
//
// Interpolation is a pure string transform with no knowledge of templates or
// sections. It runs four passes in a fixed order; later passes operate on
// the output of earlier ones, so a helper result is never re-scanned:
//
//  1. plain substitution  {{name}}
//  2. conditionals        {{#if v}}...{{else}}...{{/if}}, {{#unless v}}...{{/unless}}
//  3. loops               {{#each items}}...{{/each}}
//  4. helper calls        {{join items ", "}}
//
// Missing data never fails: references to unknown variables and calls to
// unknown helpers are left literally in the output as visible markers.
package interp

import (
	"strconv"
	"strings"
)

// Engine applies the interpolation sub-language using a helper registry
type Engine struct {
	helpers *HelperRegistry
}

// New creates an Engine with the built-in helpers registered
func New() *Engine {
	return &Engine{helpers: NewHelperRegistry()}
}

// Helpers exposes the registry so callers can add custom helpers
func (e *Engine) Helpers() *HelperRegistry {
	return e.helpers
}

// Interpolate runs the four passes over input against the resolved variables
func (e *Engine) Interpolate(input string, vars map[string]interface{}) string {
	if !strings.Contains(input, "{{") {
		return input
	}
	out := substituteVariables(input, vars)
	out = expandConditionals(out, vars)
	out = expandLoops(out, vars)
	out = e.applyHelpers(out, vars)
	return out
}

// bareReference reports whether a span's content is a plain variable
// reference: a single word with no arguments and no block syntax.
func bareReference(content string) bool {
	if content == "" || strings.ContainsAny(content, " \t\n'\"") {
		return false
	}
	return content[0] != '#' && content[0] != '/'
}

// substituteVariables is pass 1: every bare reference whose name is present
// in vars is replaced by the variable's string form. Unknown names keep
// their original literal text.
func substituteVariables(input string, vars map[string]interface{}) string {
	var sb strings.Builder
	pos := 0
	for {
		sp, ok := nextSpan(input, pos)
		if !ok {
			sb.WriteString(input[pos:])
			return sb.String()
		}
		sb.WriteString(input[pos:sp.start])
		if value, present := lookupBare(sp.content, vars); present {
			sb.WriteString(FormatValue(value))
		} else {
			sb.WriteString(input[sp.start:sp.end])
		}
		pos = sp.end
	}
}

func lookupBare(content string, vars map[string]interface{}) (interface{}, bool) {
	if !bareReference(content) {
		return nil, false
	}
	value, present := vars[content]
	return value, present
}

// expandConditionals is pass 2: if/else blocks resolve before bare if
// blocks (the matcher pairs each opening tag with its own closing tag, so a
// partial match can never split an if/else). unless renders its body when
// the variable is falsy.
func expandConditionals(input string, vars map[string]interface{}) string {
	for {
		b, ok := findBlock(input, "if", 0, true)
		if !ok {
			break
		}
		chosen := b.elseBody
		if Truthy(vars[b.arg]) {
			chosen = b.body
		}
		input = input[:b.start] + chosen + input[b.end:]
	}
	for {
		b, ok := findBlock(input, "unless", 0, false)
		if !ok {
			break
		}
		chosen := ""
		if !Truthy(vars[b.arg]) {
			chosen = b.body
		}
		input = input[:b.start] + chosen + input[b.end:]
	}
	return input
}

// expandLoops is pass 3: each blocks render their body once per element of
// the named array variable, or to nothing when the variable is not an
// array. Inside a body, {{this}}, {{@index}}, {{@first}} and {{@last}} are
// bound per iteration, and the fields of a keyed record element are
// substitutable by name within that iteration only.
func expandLoops(input string, vars map[string]interface{}) string {
	for {
		b, ok := findBlock(input, "each", 0, false)
		if !ok {
			return input
		}
		var rendered string
		if items, isArray := ToSlice(vars[b.arg]); isArray {
			var sb strings.Builder
			for i, item := range items {
				sb.WriteString(renderIteration(b.body, item, i, len(items)))
			}
			rendered = sb.String()
		}
		input = input[:b.start] + rendered + input[b.end:]
	}
}

func renderIteration(body string, item interface{}, index, total int) string {
	scope := map[string]interface{}{
		"this":   FormatValue(item),
		"@index": index,
		"@first": index == 0,
		"@last":  index == total-1,
	}
	if record, ok := ToRecord(item); ok {
		for field, value := range record {
			if _, taken := scope[field]; !taken {
				scope[field] = value
			}
		}
	}
	return substituteVariables(body, scope)
}

// applyHelpers is pass 4: any remaining expression containing whitespace is
// treated as a helper call. Plain substitution never matches these, so the
// two passes cannot collide. Unknown helpers and failed calls leave the
// expression untouched.
func (e *Engine) applyHelpers(input string, vars map[string]interface{}) string {
	var sb strings.Builder
	pos := 0
	for {
		sp, ok := nextSpan(input, pos)
		if !ok {
			sb.WriteString(input[pos:])
			return sb.String()
		}
		sb.WriteString(input[pos:sp.start])
		if result, ok := e.callHelper(sp.content, vars); ok {
			sb.WriteString(result)
		} else {
			sb.WriteString(input[sp.start:sp.end])
		}
		pos = sp.end
	}
}

func (e *Engine) callHelper(content string, vars map[string]interface{}) (string, bool) {
	tokens := lexArgs(content)
	if len(tokens) < 2 {
		return "", false
	}
	name := tokens[0]
	if name.quoted || name.text == "" || name.text[0] == '#' || name.text[0] == '/' {
		return "", false
	}
	helper, ok := e.helpers.Lookup(name.text)
	if !ok {
		return "", false
	}

	args := make([]interface{}, len(tokens)-1)
	for i, tok := range tokens[1:] {
		args[i] = resolveArg(tok, vars)
	}

	result, err := helper(args...)
	if err != nil {
		return "", false
	}
	return FormatValue(result), true
}

// resolveArg resolves a helper argument token: a resolved variable name
// first, then a quoted literal, then a number, then the raw token text.
func resolveArg(tok argToken, vars map[string]interface{}) interface{} {
	if tok.quoted {
		return tok.text
	}
	if value, present := vars[tok.text]; present {
		return value
	}
	if f, err := strconv.ParseFloat(tok.text, 64); err == nil {
		return f
	}
	return tok.text
}

// argToken is one whitespace-delimited token of a helper expression
type argToken struct {
	text   string
	quoted bool
}

// lexArgs splits a helper expression on whitespace, keeping single- or
// double-quoted regions (which may contain spaces and braces) as single
// unquoted-literal tokens.
func lexArgs(s string) []argToken {
	var tokens []argToken
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(s) && s[j] != quote {
				j++
			}
			tokens = append(tokens, argToken{text: s[i+1 : j], quoted: true})
			if j < len(s) {
				j++
			}
			i = j
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '\n' {
				j++
			}
			tokens = append(tokens, argToken{text: s[i:j]})
			i = j
		}
	}
	return tokens
}
