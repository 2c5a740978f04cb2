// Package html renders the sign-up form and the user card as server-side
// HTML through the pongo2 template engine.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-signup/pkg/card"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/render"
	rendertemplate "github.com/goliatone/go-signup/pkg/render/template"
	gotemplate "github.com/goliatone/go-signup/pkg/render/template/gotemplate"
)

// DefaultCompany is printed in the footer when WithCompany is not used.
const DefaultCompany = "Your Company"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateFuncs    map[string]any
	translator       render.Translator
	terms            string
	company          string
	now              func() time.Time
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/signup.tmpl and templates/card.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTemplateFuncs registers extra helpers on the default engine.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFuncs == nil {
			cfg.templateFuncs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFuncs[name] = fn
		}
	}
}

// WithTranslator sets the translator used when RenderOptions carries none and
// exposes translate/current_locale helpers to templates.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		if t == nil {
			return
		}
		cfg.translator = t
		WithTemplateFuncs(render.TemplateI18nFuncs(t, render.TemplateI18nConfig{}))(cfg)
	}
}

// WithTerms replaces the consent line. The markup is sanitized; an empty
// string hides the line.
func WithTerms(markup string) Option {
	return func(cfg *config) {
		cfg.terms = SanitizeTerms(markup)
	}
}

// WithCompany sets the footer company name.
func WithCompany(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.company = trimmed
		}
	}
}

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	translator render.Translator
	terms      string
	company    string
	now        func() time.Time
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		terms:      SanitizeTerms(DefaultTerms),
		company:    DefaultCompany,
		now:        time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(cfg.templateFuncs),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		translator: cfg.translator,
		terms:      cfg.terms,
		company:    cfg.company,
		now:        cfg.now,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderSignup renders the full sign-up page for view.
func (r *Renderer) RenderSignup(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(signupTemplate, r.signupData(view, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render signup: %w", err)
	}
	return []byte(result), nil
}

// RenderCard renders the user card fragment.
func (r *Renderer) RenderCard(ctx context.Context, c card.Card) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(cardTemplate, map[string]any{
		"card": map[string]any{
			"initial": c.Initial,
			"name":    c.Name,
			"email":   c.Email,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render card: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) signupData(view form.View, opts render.RenderOptions) map[string]any {
	translator := opts.Translator
	if translator == nil {
		translator = r.translator
	}
	tr := func(key, fallback string) string {
		return render.Translate(opts.Locale, key, fallback, translator, opts.OnMissing)
	}

	lang := strings.TrimSpace(opts.Locale)
	if lang == "" {
		lang = "en"
	}

	toggleKey := "signup.toggle.show"
	if !view.PasswordMasked {
		toggleKey = "signup.toggle.hide"
	}

	fields := make([]map[string]any, 0, len(view.Fields))
	for _, fv := range view.Fields {
		name := fv.Field.String()
		fields = append(fields, map[string]any{
			"name":         name,
			"label":        tr("signup.field."+name, fv.Label),
			"value":        fv.Value,
			"error":        fv.Error,
			"show_error":   fv.ShowError,
			"input_type":   fv.InputType,
			"placeholder":  fv.Placeholder,
			"autocomplete": fv.AutoComplete,
			"help":         fv.Help,
		})
	}

	hidden := make([]map[string]any, 0, len(opts.HiddenFields))
	for _, field := range render.SortedHiddenFields(opts.HiddenFields) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	formErrors := make([]any, 0, len(opts.FormErrors))
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		formErrors = append(formErrors, message)
	}

	return map[string]any{
		"page": map[string]any{
			"lang":         lang,
			"title":        tr("signup.title", "Create your account"),
			"subtitle":     tr("signup.subtitle", "It only takes a minute."),
			"success":      tr("signup.success", "Signed up successfully!"),
			"submit":       tr("signup.submit", "Create account"),
			"toggle_label": tr(toggleKey, view.ToggleLabel),
			"action":       opts.ActionOrDefault(),
			"terms":        r.terms,
			"company":      r.company,
			"year":         strconv.Itoa(r.now().Year()),
		},
		"fields":          fields,
		"hidden_fields":   hidden,
		"form_errors":     formErrors,
		"can_submit":      view.CanSubmit,
		"password_masked": view.PasswordMasked,
		"show_success":    view.ShowSuccess,
	}
}
