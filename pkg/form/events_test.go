package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/model"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Event
	}{
		{"change", `{"type":"change","field":"email","value":"a@b.co"}`, Change{Field: model.FieldEmail, Value: "a@b.co"}},
		{"blur uppercase field", `{"type":"blur","field":"NAME"}`, Blur{Field: model.FieldName}},
		{"toggle", `{"type":"toggle_visibility"}`, ToggleVisibility{}},
		{"submit", `{"type":"Submit"}`, Submit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent([]byte(tt.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEvent_Errors(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"type":"focus"}`)); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if _, err := ParseEvent([]byte(`{"type":"change","field":"age"}`)); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := ParseEvent([]byte(`{`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMarshalEventRoundTrip(t *testing.T) {
	for _, event := range []Event{
		Change{Field: model.FieldPassword, Value: "abcd1234"},
		Blur{Field: model.FieldEmail},
		ToggleVisibility{},
		Submit{},
	} {
		raw, err := MarshalEvent(event)
		if err != nil {
			t.Fatalf("marshal %T: %v", event, err)
		}
		got, err := ParseEvent(raw)
		if err != nil {
			t.Fatalf("parse %s: %v", raw, err)
		}
		if diff := cmp.Diff(event, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}
