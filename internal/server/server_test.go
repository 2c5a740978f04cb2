package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-signup/internal/server"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/sink"
	"github.com/goliatone/go-signup/pkg/testsupport"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	handler  http.Handler
	recorder *sink.Recorder
}

func newFixture(t *testing.T, options ...server.Option) fixture {
	t.Helper()

	logger, _ := test.NewNullLogger()
	recorder := sink.NewRecorder()

	base := []server.Option{
		server.WithLogger(logger),
		server.WithSink(recorder),
		server.WithRegistry(prometheus.NewRegistry()),
		server.WithControllerOptions(form.WithIDGenerator(func() string { return "sub-1" })),
	}
	srv, err := server.New(append(base, options...)...)
	require.NoError(t, err)

	return fixture{handler: srv.Handler(), recorder: recorder}
}

func (f fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSignupPage(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/signup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	testsupport.AssertContains(t, body,
		`<form method="post" action="/signup"`,
		`name="_request_id"`,
		`type="password"`,
		`data-disabled="true"`,
	)
	testsupport.AssertNotContains(t, body, `class="signup-error"`, `class="signup-success"`)
}

func TestSignupFormSuccess(t *testing.T) {
	f := newFixture(t)
	values := testsupport.ValidValues()

	w := f.do(t, formRequest(url.Values{
		"name":     {values.Name},
		"email":    {values.Email},
		"password": {values.Password},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	testsupport.AssertContains(t, w.Body.String(), `class="signup-success"`, "Signed up successfully!")
	testsupport.AssertNotContains(t, w.Body.String(), `value="Jane Doe"`)

	require.Equal(t, 1, f.recorder.Len())
	assert.Equal(t, values, f.recorder.Submissions()[0].Values)
}

func TestSignupFormInvalid(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, formRequest(url.Values{
		"name":     {"J"},
		"email":    {"bad"},
		"password": {""},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	testsupport.AssertContains(t, w.Body.String(),
		"Please enter at least 2 characters",
		"Please enter a valid email",
		"Password is required",
		`value="J"`,
	)
	assert.Zero(t, f.recorder.Len())
}

func TestSignupFormToggle(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, formRequest(url.Values{
		"name":     {"J"},
		"password": {"abc"},
		"_toggle":  {"1"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	testsupport.AssertContains(t, body,
		`name="password" type="text"`,
		`name="_show_password" value="1"`,
		"Hide password",
	)
	testsupport.AssertNotContains(t, body, `class="signup-error"`)
	assert.Zero(t, f.recorder.Len())
}

func TestSignupFormSinkRejected(t *testing.T) {
	f := newFixture(t)
	f.recorder.FailWith(&sink.RejectedError{
		StatusCode: http.StatusConflict,
		Fields:     map[model.Field][]string{model.FieldEmail: {"Email already registered"}},
	})
	values := testsupport.ValidValues()

	w := f.do(t, formRequest(url.Values{
		"name":     {values.Name},
		"email":    {values.Email},
		"password": {values.Password},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	testsupport.AssertContains(t, w.Body.String(), "Email already registered", `value="Jane Doe"`)
	testsupport.AssertNotContains(t, w.Body.String(), `class="signup-success"`)
}

func TestSignupAPI(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", testsupport.ValidValues()))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sub-1", body["id"])
	assert.Equal(t, 1, f.recorder.Len())
}

func TestSignupAPIInvalid(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", model.FormValues{
		Name:     "J",
		Email:    "a@b.co",
		Password: "abcd123",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Success bool                `json:"success"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, map[string][]string{
		"name":     {"Please enter at least 2 characters"},
		"password": {"Min 8 chars, with at least 1 letter & 1 number"},
	}, body.Errors)
	assert.Zero(t, f.recorder.Len())
}

func TestSignupAPIMalformed(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	w := f.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decode(t, w)["error"])
}

func TestSignupAPISinkFailure(t *testing.T) {
	f := newFixture(t)
	f.recorder.FailWith(errors.New("connection refused"))

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", testsupport.ValidValues()))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestSignupAPISinkRejectedFields(t *testing.T) {
	f := newFixture(t)
	f.recorder.FailWith(&sink.RejectedError{
		StatusCode: http.StatusUnprocessableEntity,
		Fields:     map[model.Field][]string{model.FieldName: {"Name blocked"}},
	})

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", testsupport.ValidValues()))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Submission was rejected", body.Error)
	assert.Equal(t, map[string][]string{"name": {"Name blocked"}}, body.Errors)
}

func TestValidateAPI(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/validate", model.FormValues{Email: "a@b.c"}))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Valid  bool                `json:"valid"`
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Valid)
	assert.Equal(t, []string{"Please enter a valid email"}, body.Errors["email"])
	assert.Equal(t, []string{"Full name is required"}, body.Errors["name"])

	w = f.do(t, jsonRequest(t, http.MethodPost, "/api/validate", testsupport.ValidValues()))
	assert.Equal(t, map[string]any{"valid": true}, decode(t, w))
	assert.Zero(t, f.recorder.Len())
}

func TestEventsAPI(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/form/events", map[string]any{
		"events": []map[string]string{
			{"type": "change", "field": "name", "value": "Jane Doe"},
			{"type": "blur", "field": "name"},
			{"type": "change", "field": "email", "value": "jane@example.com"},
			{"type": "change", "field": "password", "value": "abcd1234"},
			{"type": "submit"},
		},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		State        form.State `json:"state"`
		View         form.View  `json:"view"`
		SubmissionID string     `json:"submissionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sub-1", body.SubmissionID)
	assert.True(t, body.State.Submitted)
	assert.True(t, body.View.ShowSuccess)
	assert.True(t, body.State.Values.IsZero())
	assert.Equal(t, 1, f.recorder.Len())
}

func TestEventsAPIKeepsClientState(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/form/events", map[string]any{
		"state": map[string]any{
			"values":       map[string]string{"name": "J"},
			"touched":      map[string]bool{"name": true},
			"showPassword": true,
		},
		"events": []map[string]string{{"type": "toggle_visibility"}},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		State form.State `json:"state"`
		View  form.View  `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.State.ShowPassword)
	assert.True(t, body.View.PasswordMasked)

	name, ok := body.View.Field(model.FieldName)
	require.True(t, ok)
	assert.True(t, name.ShowError)
	assert.Equal(t, "Please enter at least 2 characters", name.Error)
}

func TestEventsAPIUnknownEvent(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/form/events", map[string]any{
		"events": []map[string]string{{"type": "explode"}},
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCardEndpoints(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/api/card?name=ada&email=ada%40example.com", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"initial": "A",
		"name":    "ada",
		"email":   "ada@example.com",
	}, decode(t, w))

	w = f.do(t, httptest.NewRequest(http.MethodGet, "/card?name=ada&email=ada%40example.com", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	testsupport.AssertContains(t, w.Body.String(), ">A<", "ada@example.com")
}

func TestOpenAPIDocument(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "3.0.3", body["openapi"])
	paths, ok := body["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/signup")
}

func TestMetricsCountOutcomes(t *testing.T) {
	f := newFixture(t)

	f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", testsupport.ValidValues()))
	f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", testsupport.InvalidValues()))
	f.do(t, jsonRequest(t, http.MethodPost, "/api/signup", testsupport.InvalidValues()))

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	raw, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	testsupport.AssertContains(t, string(raw),
		`signup_submissions_total{status="success"} 1`,
		`signup_submissions_total{status="validation_failed"} 2`,
	)
}

func TestMetricsAlreadyRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := server.NewMetrics(registry)
	require.NoError(t, err)

	_, err = server.New(server.WithRegistry(registry))
	assert.Error(t, err)
}
