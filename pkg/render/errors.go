package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[model.Field][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises error payloads returned by submission endpoints
// (JSON pointers such as "/body/email", dotted paths such as "data.name")
// into form fields. Unknown paths are treated as form-level errors so
// messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[model.Field][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		field, ok := mapErrorPath(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[field] = normalizeMessages(append(mapping.Fields[field], normalized...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string) (model.Field, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}

	segments := stripNumericSegments(dropWrapperSegments(parsePathSegments(trimmed)))
	if len(segments) != 1 {
		return "", false
	}
	field, err := model.ParseField(segments[0])
	if err != nil {
		return "", false
	}
	return field, true
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
	"values":     {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}

	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
