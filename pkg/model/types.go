package model

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies one of the sign-up form inputs.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// ErrUnknownField is returned when a field identifier does not match any of
// the form inputs.
var ErrUnknownField = errors.New("model: unknown field")

// Fields returns the form inputs in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldPassword}
}

// ParseField resolves a wire name into a Field. Matching ignores case and
// surrounding whitespace.
func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldName:
		return FieldName, nil
	case FieldEmail:
		return FieldEmail, nil
	case FieldPassword:
		return FieldPassword, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
}

// Valid reports whether f is one of the form inputs.
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldPassword:
		return true
	default:
		return false
	}
}

func (f Field) String() string {
	return string(f)
}

// FormValues holds the raw text of each input as typed by the user.
type FormValues struct {
	Name     string `json:"name" yaml:"name" form:"name"`
	Email    string `json:"email" yaml:"email" form:"email"`
	Password string `json:"password" yaml:"password" form:"password"`
}

// Get returns the value held for field. Unknown fields read as empty.
func (v FormValues) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPassword:
		return v.Password
	default:
		return ""
	}
}

// With returns a copy of v with field set to value. Unknown fields leave the
// copy unchanged.
func (v FormValues) With(field Field, value string) FormValues {
	switch field {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPassword:
		v.Password = value
	}
	return v
}

// IsZero reports whether every field is empty.
func (v FormValues) IsZero() bool {
	return v == FormValues{}
}

// TouchedState tracks which inputs lost focus at least once.
type TouchedState struct {
	Name     bool `json:"name"`
	Email    bool `json:"email"`
	Password bool `json:"password"`
}

// AllTouched returns a TouchedState with every field marked.
func AllTouched() TouchedState {
	return TouchedState{Name: true, Email: true, Password: true}
}

func (t TouchedState) Get(field Field) bool {
	switch field {
	case FieldName:
		return t.Name
	case FieldEmail:
		return t.Email
	case FieldPassword:
		return t.Password
	default:
		return false
	}
}

func (t TouchedState) With(field Field, touched bool) TouchedState {
	switch field {
	case FieldName:
		t.Name = touched
	case FieldEmail:
		t.Email = touched
	case FieldPassword:
		t.Password = touched
	}
	return t
}

// Any reports whether at least one field is touched.
func (t TouchedState) Any() bool {
	return t.Name || t.Email || t.Password
}

// UIFlags are toggled by user actions and never by validation.
type UIFlags struct {
	ShowPassword bool `json:"showPassword"`
	Submitted    bool `json:"submitted"`
}

// UserInfo is the record displayed by the user card.
type UserInfo struct {
	Name  string `json:"name" yaml:"name" form:"name"`
	Email string `json:"email" yaml:"email" form:"email"`
}
