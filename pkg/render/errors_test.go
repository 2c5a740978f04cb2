package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
)

func TestMapErrorPayload_MapsLoosePathsToFields(t *testing.T) {
	payload := map[string][]string{
		"/body/name":                 {"Name is required"},
		"data.attributes.email":      {"Email already registered", " Email already registered "},
		"$.values.password":          {"Password too common"},
		"EMAIL":                      {"Email blocked"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"body/email/domain":          {"Nested paths fall back"},
		"":                           {"Unscoped form error"},
		"name":                       {"   "},
	}

	mapped := render.MapErrorPayload(payload)

	wantFields := map[model.Field][]string{
		model.FieldName:     {"Name is required"},
		model.FieldEmail:    {"Email already registered", "Email blocked"},
		model.FieldPassword: {"Password too common"},
	}
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(wantFields, mapped.Fields, sortStrings); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Nested paths fall back", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, sortStrings); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(nil)
	if !mapped.Empty() {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
