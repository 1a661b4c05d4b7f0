package interp

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// FormatValue converts a resolved variable value to its interpolated string
// form. Arrays join their stringified elements with ", "; maps render their
// entries in key order so output stays deterministic across compiles.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]string, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := FormatValue(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = FormatValue(rv.MapIndex(k).Interface())
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + byKey[k]
		}
		return strings.Join(parts, ", ")
	}

	return fmt.Sprintf("%v", v)
}

// Truthy reports whether a variable value enables an interpolation
// conditional: present, non-nil, not false, and not the empty string.
// Numeric zero is truthy.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}
	return true
}

// ToFloat coerces numeric values (and numeric strings) to float64
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

// ToFloatStrict coerces only genuinely numeric values to float64,
// rejecting numeric strings
func ToFloatStrict(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	}
	return 0, false
}

// ToSlice normalizes any slice or array value to []interface{}
func ToSlice(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if items, ok := v.([]interface{}); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// ToRecord normalizes a keyed record element to a map with string keys
func ToRecord(v interface{}) (map[string]interface{}, bool) {
	if m, ok := v.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	record := make(map[string]interface{}, rv.Len())
	for _, k := range rv.MapKeys() {
		record[FormatValue(k.Interface())] = rv.MapIndex(k).Interface()
	}
	return record, true
}
