package form

import (
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

// FieldView is the render surface for a single input.
type FieldView struct {
	Field        model.Field `json:"field"`
	Label        string      `json:"label"`
	Value        string      `json:"value"`
	Error        string      `json:"error,omitempty"`
	ShowError    bool        `json:"showError"`
	InputType    string      `json:"inputType"`
	Placeholder  string      `json:"placeholder"`
	AutoComplete string      `json:"autoComplete"`
	Help         string      `json:"help,omitempty"`
}

// View is everything a renderer needs to draw the form. It is derived from a
// State and never stored.
type View struct {
	Fields         []FieldView `json:"fields"`
	CanSubmit      bool        `json:"canSubmit"`
	PasswordMasked bool        `json:"passwordMasked"`
	ShowSuccess    bool        `json:"showSuccess"`
	ToggleLabel    string      `json:"toggleLabel"`
}

// Field returns the view of a single input.
func (v View) Field(field model.Field) (FieldView, bool) {
	for _, fv := range v.Fields {
		if fv.Field == field {
			return fv, true
		}
	}
	return FieldView{}, false
}

// VisibleErrors returns the messages currently shown, keyed by field.
func (v View) VisibleErrors() map[model.Field]string {
	out := make(map[model.Field]string)
	for _, fv := range v.Fields {
		if fv.ShowError {
			out[fv.Field] = fv.Error
		}
	}
	return out
}

type fieldChrome struct {
	label        string
	inputType    string
	placeholder  string
	autoComplete string
	help         string
}

var chrome = map[model.Field]fieldChrome{
	model.FieldName: {
		label:        "Full Name",
		inputType:    "text",
		placeholder:  "Jane Doe",
		autoComplete: "name",
	},
	model.FieldEmail: {
		label:        "Email Address",
		inputType:    "email",
		placeholder:  "jane@example.com",
		autoComplete: "email",
	},
	model.FieldPassword: {
		label:        "Password",
		inputType:    "password",
		placeholder:  "••••••••",
		autoComplete: "new-password",
		help:         validation.PasswordHint,
	},
}

// ViewOption customises Render.
type ViewOption func(*viewConfig)

type viewConfig struct {
	validator *validation.Validator
	labels    map[model.Field]string
}

// WithValidator renders error messages produced by v instead of the default
// English messages.
func WithValidator(v *validation.Validator) ViewOption {
	return func(cfg *viewConfig) {
		if v != nil {
			cfg.validator = v
		}
	}
}

// WithLabels overrides field labels.
func WithLabels(labels map[model.Field]string) ViewOption {
	return func(cfg *viewConfig) {
		cfg.labels = labels
	}
}

// Render derives the view for state. An error is shown for a field only when
// the field is touched and invalid; submit availability ignores touched.
func Render(state State, options ...ViewOption) View {
	cfg := viewConfig{validator: validation.New()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	errs := cfg.validator.Validate(state.Values)
	view := View{
		Fields:         make([]FieldView, 0, len(model.Fields())),
		CanSubmit:      errs.Valid(),
		PasswordMasked: !state.ShowPassword,
		ShowSuccess:    state.Submitted,
		ToggleLabel:    "Show password",
	}
	if state.ShowPassword {
		view.ToggleLabel = "Hide password"
	}

	for _, field := range model.Fields() {
		c := chrome[field]
		label := c.label
		if custom, ok := cfg.labels[field]; ok && custom != "" {
			label = custom
		}
		inputType := c.inputType
		if field == model.FieldPassword && state.ShowPassword {
			inputType = "text"
		}
		message := errs.Message(field)
		view.Fields = append(view.Fields, FieldView{
			Field:        field,
			Label:        label,
			Value:        state.Values.Get(field),
			Error:        message,
			ShowError:    state.Touched.Get(field) && message != "",
			InputType:    inputType,
			Placeholder:  c.placeholder,
			AutoComplete: c.autoComplete,
			Help:         c.help,
		})
	}
	return view
}
