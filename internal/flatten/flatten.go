// Package flatten derives display text from decoded JSON values of unknown
// shape. CASE producers are inconsistent about whether a field holds a
// string, a list, or a labeled object, so every place the converter needs
// text from a source field goes through String to keep the output
// reproducible across call sites.
package flatten

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// labelKeys are tried first when a mapping must be reduced to text.
var labelKeys = []string{"title", "name", "label", "value", "text", "displayName", "shortName"}

// identifierKeys are tried when no label key carries a usable value.
var identifierKeys = []string{"uri", "CFItemURI", "CFDocumentURI", "identifier", "CFItemGUID"}

// kind is the closed set of value shapes String dispatches over.
type kind int

const (
	kindNil kind = iota
	kindScalar
	kindSequence
	kindMapping
	kindOther
)

func kindOf(v any) kind {
	switch v.(type) {
	case nil:
		return kindNil
	case string, bool, float64, int, int64, json.Number:
		return kindScalar
	case []any:
		return kindSequence
	case map[string]any:
		return kindMapping
	default:
		return kindOther
	}
}

// String converts an arbitrary decoded JSON value into display text.
// Scalars stringify directly. Sequences join their non-empty members with
// "; ". Mappings are reduced through the label keys, then the identifier
// keys, in priority order. Anything left over is re-encoded as compact JSON.
func String(v any) string {
	switch kindOf(v) {
	case kindNil:
		return ""
	case kindScalar:
		return scalar(v)
	case kindSequence:
		return sequence(v.([]any))
	case kindMapping:
		return mapping(v.(map[string]any))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func scalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	}
	return ""
}

func sequence(items []any) string {
	var parts []string
	for _, item := range items {
		if s := String(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}

func mapping(m map[string]any) string {
	for _, k := range labelKeys {
		if truthy(m[k]) {
			return String(m[k])
		}
	}
	for _, k := range identifierKeys {
		if truthy(m[k]) {
			return String(m[k])
		}
	}
	// No recognizable key: fall back to a compact encoding of the whole value.
	encoded, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("%v", m)
	}
	return string(encoded)
}

// truthy reports whether a decoded JSON value carries usable content,
// mirroring the loose presence checks CASE consumers apply.
func truthy(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return s != ""
	case bool:
		return s
	case float64:
		return s != 0
	case []any:
		return len(s) > 0
	case map[string]any:
		return len(s) > 0
	}
	return true
}
