package validation

import (
	"sort"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// Issue describes why a field value is not acceptable.
type Issue struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Errors holds at most one Issue per field. A missing key means the field
// passed validation.
type Errors map[model.Field]Issue

// Valid reports whether no field carries an issue.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Get returns the issue recorded for field, if any.
func (e Errors) Get(field model.Field) (Issue, bool) {
	if e == nil {
		return Issue{}, false
	}
	issue, ok := e[field]
	return issue, ok
}

// Message returns the message for field or an empty string when the field
// is acceptable.
func (e Errors) Message(field model.Field) string {
	issue, _ := e.Get(field)
	return issue.Message
}

// Fields lists the fields carrying an issue in display order.
func (e Errors) Fields() []model.Field {
	var out []model.Field
	for _, field := range model.Fields() {
		if _, ok := e[field]; ok {
			out = append(out, field)
		}
	}
	return out
}

// Messages converts the issues into the field -> messages payload used by
// JSON error responses. Returns nil when there are no issues.
func (e Errors) Messages() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for field, issue := range e {
		out[field.String()] = []string{issue.Message}
	}
	return out
}

// Codes returns "<field>.<code>" identifiers sorted for stable logging.
func (e Errors) Codes() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for field, issue := range e {
		out = append(out, MessageKey(field, issue.Code))
	}
	sort.Strings(out)
	return out
}

// Translator resolves localized messages. It matches the render.Translator
// contract so the same catalog can serve templates and validation.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides individual messages; keys not present keep the
// defaults.
func WithMessages(messages Messages) Option {
	return func(v *Validator) {
		v.messages = v.messages.Merge(messages)
	}
}

// WithTranslator resolves messages through t using keys of the form
// "<prefix><field>.<code>". Failed lookups fall back to the configured
// messages.
func WithTranslator(t Translator, locale string) Option {
	return func(v *Validator) {
		v.translator = t
		v.locale = strings.TrimSpace(locale)
	}
}

// WithKeyPrefix changes the translation key prefix (default "validation.").
func WithKeyPrefix(prefix string) Option {
	return func(v *Validator) {
		v.keyPrefix = prefix
	}
}

// Validator evaluates the field rules and attaches messages to failures. The
// zero value is not usable; construct with New.
type Validator struct {
	messages   Messages
	translator Translator
	locale     string
	keyPrefix  string
}

// New constructs a Validator with the default English messages.
func New(options ...Option) *Validator {
	v := &Validator{
		messages:  DefaultMessages(),
		keyPrefix: "validation.",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate checks values with the default messages.
func Validate(values model.FormValues) Errors {
	return defaultValidator.Validate(values)
}

// Validate checks every field of values and returns the issues found.
func (v *Validator) Validate(values model.FormValues) Errors {
	var errs Errors
	for _, field := range model.Fields() {
		code, ok := check(field, values)
		if ok {
			continue
		}
		if errs == nil {
			errs = make(Errors, 3)
		}
		errs[field] = Issue{Code: code, Message: v.message(field, code)}
	}
	return errs
}

// ValidateField checks a single field. The boolean is false when the field
// carries an issue.
func (v *Validator) ValidateField(field model.Field, values model.FormValues) (Issue, bool) {
	code, ok := check(field, values)
	if ok {
		return Issue{}, true
	}
	return Issue{Code: code, Message: v.message(field, code)}, false
}

func (v *Validator) message(field model.Field, code Code) string {
	fallback := v.messages.lookup(field, code)
	if v.translator == nil {
		return fallback
	}
	msg, err := v.translator.Translate(v.locale, v.keyPrefix+MessageKey(field, code))
	if err != nil || strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
