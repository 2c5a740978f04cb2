package form

import "github.com/goliatone/go-signup/pkg/model"

// State is the complete sign-up form state. Validation errors are not
// stored; they are derived from Values whenever needed.
type State struct {
	Values  model.FormValues   `json:"values"`
	Touched model.TouchedState `json:"touched"`
	model.UIFlags
}

// NewState returns the initial state: empty values, nothing touched and both
// flags cleared.
func NewState() State {
	return State{}
}

// WithValues returns a copy of s holding values. Used to prefill forms.
func (s State) WithValues(values model.FormValues) State {
	s.Values = values
	return s
}
