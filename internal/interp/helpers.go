package interp

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Helper is a function invocable from interpolated text via
// {{name arg1 arg2 ...}}. Arguments arrive already resolved (variable
// values, unquoted literals, or numbers). The returned value is stringified
// with FormatValue before substitution.
type Helper func(args ...interface{}) (interface{}, error)

// HelperRegistry manages the helper functions available to an Engine
type HelperRegistry struct {
	mu      sync.RWMutex
	helpers map[string]Helper
}

// NewHelperRegistry creates a registry pre-populated with the built-in helpers
func NewHelperRegistry() *HelperRegistry {
	r := &HelperRegistry{helpers: make(map[string]Helper)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces a helper by name
func (r *HelperRegistry) Register(name string, fn Helper) error {
	if name == "" {
		return fmt.Errorf("helper name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[name] = fn
	return nil
}

// Lookup retrieves a helper by name
func (r *HelperRegistry) Lookup(name string) (Helper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.helpers[name]
	return fn, ok
}

// Names returns all registered helper names, sorted
func (r *HelperRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerBuiltins(r *HelperRegistry) {
	r.Register("uppercase", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("uppercase requires an argument")
		}
		return strings.ToUpper(FormatValue(args[0])), nil
	})

	r.Register("lowercase", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("lowercase requires an argument")
		}
		return strings.ToLower(FormatValue(args[0])), nil
	})

	r.Register("capitalize", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("capitalize requires an argument")
		}
		s := FormatValue(args[0])
		if s == "" {
			return "", nil
		}
		runes := []rune(s)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes), nil
	})

	r.Register("join", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("join requires an array argument")
		}
		separator := ", "
		if len(args) > 1 {
			separator = FormatValue(args[1])
		}
		items, ok := ToSlice(args[0])
		if !ok {
			return FormatValue(args[0]), nil
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, separator), nil
	})

	r.Register("default", func(args ...interface{}) (interface{}, error) {
		for _, arg := range args {
			if Truthy(arg) {
				return arg, nil
			}
		}
		return "", nil
	})

	r.Register("length", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return 0, nil
		}
		if items, ok := ToSlice(args[0]); ok {
			return len(items), nil
		}
		if s, ok := args[0].(string); ok {
			return len([]rune(s)), nil
		}
		return 0, nil
	})

	r.Register("truncate", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("truncate requires an argument")
		}
		limit := 100
		if len(args) > 1 {
			if f, ok := ToFloat(args[1]); ok {
				limit = int(f)
			}
		}
		runes := []rune(FormatValue(args[0]))
		if limit < 0 || len(runes) <= limit {
			return string(runes), nil
		}
		return string(runes[:limit]) + "...", nil
	})

	r.Register("slug", func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("slug requires an argument")
		}
		return Slugify(FormatValue(args[0])), nil
	})

	r.Register("date", dateHelper)
}

// Slugify lowercases its input, collapses non-alphanumeric runs to single
// hyphens, and strips leading/trailing hyphens.
func Slugify(s string) string {
	var sb strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

const defaultDatePattern = "YYYY-MM-DD"

// dateHelper formats a date against a token pattern. Accepted forms:
//
//	{{date}}                   now, default pattern
//	{{date "YYYY/MM/DD"}}      now, explicit pattern
//	{{date someDate}}          parsed value, default pattern
//	{{date someDate "HH:mm"}}  parsed value, explicit pattern
func dateHelper(args ...interface{}) (interface{}, error) {
	switch len(args) {
	case 0:
		return formatDatePattern(time.Now(), defaultDatePattern), nil
	case 1:
		if t, ok := parseDateValue(args[0]); ok {
			return formatDatePattern(t, defaultDatePattern), nil
		}
		return formatDatePattern(time.Now(), FormatValue(args[0])), nil
	default:
		t, ok := parseDateValue(args[0])
		if !ok {
			return nil, fmt.Errorf("date: cannot parse %q as a date", FormatValue(args[0]))
		}
		return formatDatePattern(t, FormatValue(args[1])), nil
	}
}

func parseDateValue(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// formatDatePattern renders t against a pattern of zero-padded tokens:
// YYYY, MM, DD, HH, mm, ss.
func formatDatePattern(t time.Time, pattern string) string {
	replacer := strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"DD", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	)
	return replacer.Replace(pattern)
}
