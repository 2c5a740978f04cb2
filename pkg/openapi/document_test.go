package openapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_IsValid(t *testing.T) {
	doc := Build(WithTitle("Test API"), WithServer("http://localhost:8080"))

	require.NoError(t, Validate(context.Background(), doc))
	assert.Equal(t, "Test API", doc.Info.Title)
	require.Len(t, doc.Servers, 1)

	for _, path := range []string{"/api/signup", "/api/validate", "/api/form/events", "/api/card"} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	signup := doc.Paths.Value("/api/signup").Post
	require.NotNil(t, signup)
	assert.NotNil(t, signup.Responses.Status(201))
	assert.NotNil(t, signup.Responses.Status(422))
}

func TestMarshalAndLoadRoundTrip(t *testing.T) {
	raw, err := Marshal(Build())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"$ref": "#/components/schemas/SignupRequest"`)

	loaded, err := Load(context.Background(), raw)
	require.NoError(t, err)

	request := loaded.Components.Schemas["SignupRequest"].Value
	require.NotNil(t, request)
	assert.ElementsMatch(t, []string{"name", "email", "password"}, request.Required)
}

func TestLoad_RejectsEmptyAndInvalid(t *testing.T) {
	_, err := Load(context.Background(), nil)
	assert.Error(t, err)

	_, err = Load(context.Background(), []byte(`{"openapi":"3.0.3","info":{"title":"x"},"paths":{}}`))
	assert.Error(t, err)
}
