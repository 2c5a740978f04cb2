package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-signup/pkg/model"
)

// Code identifies the rule a field violated.
type Code string

const (
	CodeRequired      Code = "required"
	CodeTooShort      Code = "too_short"
	CodeInvalidFormat Code = "invalid_format"
	CodeWeak          Code = "weak"
)

const (
	minNameLength     = 2
	minPasswordLength = 8
)

// emailSpace is every whitespace rune an email part may not contain: ASCII
// whitespace, \v, the Unicode separators and the byte order mark.
const emailSpace = `\s\v\p{Z}\x{FEFF}`

var (
	emailPattern       = regexp.MustCompile(`(?i)^[^` + emailSpace + `@]+@[^` + emailSpace + `@]+\.[^` + emailSpace + `]{2,}$`)
	passwordLetterExpr = regexp.MustCompile(`[A-Za-z]`)
	passwordDigitExpr  = regexp.MustCompile(`[0-9]`)
)

func checkName(value string) (Code, bool) {
	trimmed := strings.TrimSpace(value)
	switch n := utf8.RuneCountInString(trimmed); {
	case n == 0:
		return CodeRequired, false
	case n < minNameLength:
		return CodeTooShort, false
	default:
		return "", true
	}
}

func checkEmail(value string) (Code, bool) {
	if strings.TrimSpace(value) == "" {
		return CodeRequired, false
	}
	if !emailPattern.MatchString(value) {
		return CodeInvalidFormat, false
	}
	return "", true
}

func checkPassword(value string) (Code, bool) {
	if value == "" {
		return CodeRequired, false
	}
	if utf8.RuneCountInString(value) < minPasswordLength ||
		!passwordLetterExpr.MatchString(value) ||
		!passwordDigitExpr.MatchString(value) {
		return CodeWeak, false
	}
	return "", true
}

func check(field model.Field, values model.FormValues) (Code, bool) {
	switch field {
	case model.FieldName:
		return checkName(values.Name)
	case model.FieldEmail:
		return checkEmail(values.Email)
	case model.FieldPassword:
		return checkPassword(values.Password)
	default:
		return "", true
	}
}
