// Package validation implements the sign-up field rules.
//
// Validate is pure: it reads a model.FormValues and returns an Errors map
// keyed by field. A missing key means the field is acceptable. Validation
// failures are data, never Go errors, so callers can evaluate the rules on
// every keystroke without error handling.
//
// Rules:
//
//   - name: required when blank after trimming, too_short when the trimmed
//     value is a single character.
//   - email: required when blank after trimming, invalid_format unless the
//     raw value looks like local@domain.tld with a TLD of two or more
//     characters.
//   - password: required when empty, weak unless it has at least 8
//     characters including one ASCII letter and one digit.
//
// Messages default to English and can be replaced with WithMessages or
// resolved per locale through WithTranslator.
package validation
