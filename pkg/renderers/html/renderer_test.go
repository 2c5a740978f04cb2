package html_test

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-signup/pkg/card"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/html"
	"github.com/goliatone/go-signup/pkg/testsupport"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
}

func newRenderer(t *testing.T, options ...html.Option) *html.Renderer {
	t.Helper()
	options = append([]html.Option{html.WithClock(fixedClock)}, options...)
	renderer, err := html.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderSignup(t *testing.T, renderer *html.Renderer, state form.State, opts render.RenderOptions) string {
	t.Helper()
	output, err := renderer.RenderSignup(testsupport.Context(), form.Render(state), opts)
	if err != nil {
		t.Fatalf("render signup: %v", err)
	}
	return string(output)
}

func TestRenderer_InitialPage(t *testing.T) {
	output := renderSignup(t, newRenderer(t), form.NewState(), render.RenderOptions{})

	testsupport.AssertContains(t, output,
		`<html lang="en">`,
		`<h1>Create your account</h1>`,
		`<form method="post" action="/signup" novalidate>`,
		`<label for="name">Full Name</label>`,
		`<label for="email">Email Address</label>`,
		`id="password" name="password" type="password" autocomplete="new-password"`,
		`Min 8 chars, with at least 1 letter &amp; 1 number.`,
		`aria-label="Show password"`,
		`data-disabled="true"`,
		`By signing up, you agree to our <a href="/terms">Terms</a> &amp; <a href="/privacy">Privacy</a>.`,
		`&copy; 2026 Your Company`,
	)
	testsupport.AssertNotContains(t, output,
		`signup-success`,
		`signup-error"`,
		`aria-invalid`,
		`_show_password`,
	)
}

func TestRenderer_ShowsErrorsForTouchedFieldsOnly(t *testing.T) {
	state := form.NewState().WithValues(model.FormValues{Name: "J", Email: "bad"})
	state.Touched = model.TouchedState{Name: true}

	output := renderSignup(t, newRenderer(t), state, render.RenderOptions{})

	testsupport.AssertContains(t, output,
		`<p class="signup-error" id="name-error">Please enter at least 2 characters</p>`,
		`value="J"`,
		`value="bad"`,
	)
	testsupport.AssertNotContains(t, output, `Please enter a valid email`)
}

func TestRenderer_SuccessBannerAndVisiblePassword(t *testing.T) {
	state := form.State{UIFlags: model.UIFlags{ShowPassword: true, Submitted: true}}

	output := renderSignup(t, newRenderer(t), state, render.RenderOptions{})

	testsupport.AssertContains(t, output,
		`<div class="signup-success" role="status">Signed up successfully!</div>`,
		`id="password" name="password" type="text"`,
		`aria-label="Hide password"`,
		`<input type="hidden" name="_show_password" value="1">`,
	)
}

func TestRenderer_EnabledSubmitForValidValues(t *testing.T) {
	output := renderSignup(t, newRenderer(t), form.NewState().WithValues(testsupport.ValidValues()), render.RenderOptions{})
	testsupport.AssertNotContains(t, output, `data-disabled`)
}

func TestRenderer_EscapesValues(t *testing.T) {
	state := form.NewState().WithValues(model.FormValues{Name: `"><script>alert(1)</script>`})

	output := renderSignup(t, newRenderer(t), state, render.RenderOptions{})

	testsupport.AssertNotContains(t, output, `<script>alert(1)</script>`)
	testsupport.AssertContains(t, output, `&lt;script&gt;`)
}

func TestRenderer_OptionsAndTranslations(t *testing.T) {
	translator := render.CatalogTranslator{
		"es": {
			"signup.title":      "Crea tu cuenta",
			"signup.field.name": "Nombre completo",
			"signup.submit":     "Crear cuenta",
		},
	}
	renderer := newRenderer(t,
		html.WithCompany("Acme"),
		html.WithTerms(`Read the <a href="https://example.com/terms" onclick="steal()">terms</a><script>x()</script>`),
	)

	output := renderSignup(t, renderer, form.NewState(), render.RenderOptions{
		Action:       "/join",
		Locale:       "es-MX",
		Translator:   translator,
		FormErrors:   []string{"Signups are paused", " Signups are paused "},
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok-123")),
	})

	testsupport.AssertContains(t, output,
		`<html lang="es-MX">`,
		`<h1>Crea tu cuenta</h1>`,
		`<label for="name">Nombre completo</label>`,
		`<label for="email">Email Address</label>`,
		`>Crear cuenta</button>`,
		`action="/join"`,
		`<input type="hidden" name="_csrf" value="tok-123">`,
		`<a href="https://example.com/terms">terms</a>`,
		`&copy; 2026 Acme`,
	)
	testsupport.AssertNotContains(t, output, `onclick`, `<script>`, `x()`)
	if got := strings.Count(output, "<li>Signups are paused</li>"); got != 1 {
		t.Fatalf("expected deduplicated form error, got %d", got)
	}
}

func TestRenderer_EmptyTermsHidesLine(t *testing.T) {
	output := renderSignup(t, newRenderer(t, html.WithTerms("")), form.NewState(), render.RenderOptions{})
	testsupport.AssertNotContains(t, output, `signup-terms`)
}

func TestRenderer_RenderCardGolden(t *testing.T) {
	output, err := newRenderer(t).RenderCard(testsupport.Context(), card.Build(model.UserInfo{
		Name:  "ada lovelace",
		Email: "ada@example.com",
	}))
	if err != nil {
		t.Fatalf("render card: %v", err)
	}

	goldenPath := filepath.Join("testdata", "card.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), string(output)); diff != "" {
		t.Fatalf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_WithTemplatesFS(t *testing.T) {
	files := fstest.MapFS{
		"templates/signup.tmpl": {Data: []byte(`{{ page.title }}|{{ fields|length }}|{{ shout(page.company) }}`)},
		"templates/card.tmpl":   {Data: []byte(`{{ card.initial }}`)},
	}
	renderer := newRenderer(t,
		html.WithTemplatesFS(files),
		html.WithTemplateFuncs(map[string]any{"shout": strings.ToUpper}),
	)

	output := renderSignup(t, renderer, form.NewState(), render.RenderOptions{})
	if output != "Create your account|3|YOUR COMPANY" {
		t.Fatalf("unexpected custom output %q", output)
	}
}

func TestRenderer_WithTranslator(t *testing.T) {
	files := fstest.MapFS{
		"templates/signup.tmpl": {Data: []byte(`{{ page.title }}|{{ translate(page.lang, "signup.tagline") }}|{{ current_locale(page.lang) }}`)},
		"templates/card.tmpl":   {Data: []byte(`{{ card.initial }}`)},
	}
	renderer := newRenderer(t,
		html.WithTemplatesFS(files),
		html.WithTranslator(render.CatalogTranslator{
			"es": {
				"signup.title":   "Crea tu cuenta",
				"signup.tagline": "Rápido y gratis",
			},
		}),
	)

	output := renderSignup(t, renderer, form.NewState(), render.RenderOptions{Locale: "es"})
	if output != "Crea tu cuenta|Rápido y gratis|es" {
		t.Fatalf("unexpected translated output %q", output)
	}
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, _ any, _ ...io.Writer) (string, error) {
			return "stub:" + name, nil
		},
	}
	renderer := newRenderer(t, html.WithTemplateRenderer(stub))

	output, err := renderer.RenderCard(testsupport.Context(), card.Card{})
	if err != nil {
		t.Fatalf("render card: %v", err)
	}
	if string(output) != "stub:templates/card.tmpl" {
		t.Fatalf("unexpected output %q", output)
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestSanitizeTerms(t *testing.T) {
	got := html.SanitizeTerms(`<strong>Hi</strong> <img src=x onerror=alert(1)><a href="javascript:alert(1)">bad</a>`)
	if !strings.Contains(got, "<strong>Hi</strong>") {
		t.Fatalf("expected inline markup to survive, got %q", got)
	}
	for _, banned := range []string{"<img", "onerror", "javascript:"} {
		if strings.Contains(got, banned) {
			t.Fatalf("expected %q to be stripped, got %q", banned, got)
		}
	}
}

type stubTemplateRenderer struct {
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	return s.renderTemplateFunc(name, data, out...)
}

func (s *stubTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return s.renderTemplateFunc(templateContent, data, out...)
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}
