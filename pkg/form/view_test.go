package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

func TestRender_InitialState(t *testing.T) {
	view := Render(NewState())

	if view.CanSubmit {
		t.Fatalf("empty form must not be submittable")
	}
	if !view.PasswordMasked || view.ShowSuccess {
		t.Fatalf("unexpected flags %+v", view)
	}
	if len(view.VisibleErrors()) != 0 {
		t.Fatalf("untouched fields must not show errors: %v", view.VisibleErrors())
	}

	name, ok := view.Field(model.FieldName)
	if !ok {
		t.Fatalf("name field missing")
	}
	want := FieldView{
		Field:        model.FieldName,
		Label:        "Full Name",
		Error:        "Full name is required",
		InputType:    "text",
		Placeholder:  "Jane Doe",
		AutoComplete: "name",
	}
	if diff := cmp.Diff(want, name); diff != "" {
		t.Fatalf("name view mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ErrorNeedsTouchAndIssue(t *testing.T) {
	state := NewState().WithValues(model.FormValues{Name: "J", Email: "jane@example.com"})
	state.Touched = model.TouchedState{Name: true, Email: true}

	got := Render(state).VisibleErrors()
	want := map[model.Field]string{model.FieldName: "Please enter at least 2 characters"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_CanSubmitIgnoresTouched(t *testing.T) {
	view := Render(NewState().WithValues(validValues()))
	if !view.CanSubmit {
		t.Fatalf("valid values must be submittable even when untouched")
	}
}

func TestRender_PasswordVisibility(t *testing.T) {
	state := NewState()
	state.ShowPassword = true

	view := Render(state)
	password, _ := view.Field(model.FieldPassword)
	if password.InputType != "text" || view.PasswordMasked || view.ToggleLabel != "Hide password" {
		t.Fatalf("unexpected visible password view %+v / %+v", view, password)
	}
	if password.Help != validation.PasswordHint {
		t.Fatalf("expected password hint, got %q", password.Help)
	}

	masked, _ := Render(NewState()).Field(model.FieldPassword)
	if masked.InputType != "password" {
		t.Fatalf("expected masked input, got %q", masked.InputType)
	}
}

func TestRender_Options(t *testing.T) {
	v := validation.New(validation.WithMessages(validation.Messages{
		validation.MessageKey(model.FieldEmail, validation.CodeRequired): "Correo obligatorio",
	}))
	state := NewState()
	state.Touched = model.AllTouched()

	view := Render(state,
		WithValidator(v),
		WithLabels(map[model.Field]string{model.FieldEmail: "Correo"}),
	)
	email, _ := view.Field(model.FieldEmail)
	if email.Label != "Correo" || email.Error != "Correo obligatorio" || !email.ShowError {
		t.Fatalf("unexpected email view %+v", email)
	}
	name, _ := view.Field(model.FieldName)
	if name.Label != "Full Name" || name.Error != "Full name is required" {
		t.Fatalf("defaults must survive partial overrides: %+v", name)
	}
}

func TestRender_SuccessBanner(t *testing.T) {
	state, _ := Apply(NewState().WithValues(validValues()), Submit{})
	if !Render(state).ShowSuccess {
		t.Fatalf("expected success banner after accepted submit")
	}
}
