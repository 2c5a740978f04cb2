package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key is
// looked up without a configured Translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a localized message for key. Implementations return an
// error (or an empty string) when the key is unknown.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// CatalogTranslator is an in-memory Translator keyed by locale then message
// key. Lookups fall back from "es-MX" to "es".
type CatalogTranslator map[string]map[string]string

func (c CatalogTranslator) Translate(locale, key string, _ ...any) (string, error) {
	for _, candidate := range localeFallbacks(locale) {
		if msgs, ok := c[candidate]; ok {
			if msg, ok := msgs[key]; ok && strings.TrimSpace(msg) != "" {
				return msg, nil
			}
		}
	}
	return "", errors.New("render: missing translation for " + key)
}

func localeFallbacks(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	out := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		out = append(out, locale[:idx])
	}
	return out
}

// MissingTranslationHandler decides the string used when a lookup fails. The
// params slice may carry a map with a "default" entry holding the fallback.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

func missingTranslationDefault(_ string, key string, params []any, _ error) string {
	for _, param := range params {
		if m, ok := param.(map[string]any); ok {
			if def, ok := m["default"].(string); ok && strings.TrimSpace(def) != "" {
				return def
			}
		}
	}
	return key
}

// Translate resolves key through t, falling back to fallback (or onMissing
// when provided).
func Translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}
