package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// PasswordHint is the helper line rendered under the password input.
const PasswordHint = "Min 8 chars, with at least 1 letter & 1 number."

// Messages maps a message key ("<field>.<code>", see MessageKey) to the text
// shown to the user.
type Messages map[string]string

// MessageKey builds the lookup key for a field and rule code.
func MessageKey(field model.Field, code Code) string {
	return fmt.Sprintf("%s.%s", field, code)
}

// DefaultMessages returns a fresh copy of the built-in English messages.
func DefaultMessages() Messages {
	return Messages{
		MessageKey(model.FieldName, CodeRequired):       "Full name is required",
		MessageKey(model.FieldName, CodeTooShort):       "Please enter at least 2 characters",
		MessageKey(model.FieldEmail, CodeRequired):      "Email is required",
		MessageKey(model.FieldEmail, CodeInvalidFormat): "Please enter a valid email",
		MessageKey(model.FieldPassword, CodeRequired):   "Password is required",
		MessageKey(model.FieldPassword, CodeWeak):       "Min 8 chars, with at least 1 letter & 1 number",
	}
}

// Merge returns a copy of m with overrides applied. Blank overrides are
// ignored so partial catalogs keep the defaults.
func (m Messages) Merge(overrides Messages) Messages {
	out := make(Messages, len(m)+len(overrides))
	for key, msg := range m {
		out[key] = msg
	}
	for key, msg := range overrides {
		key = strings.TrimSpace(key)
		if key == "" || strings.TrimSpace(msg) == "" {
			continue
		}
		out[key] = msg
	}
	return out
}

func (m Messages) lookup(field model.Field, code Code) string {
	if msg, ok := m[MessageKey(field, code)]; ok && msg != "" {
		return msg
	}
	return string(code)
}
