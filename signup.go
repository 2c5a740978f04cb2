// Package signup is the convenience entry point: validate values, render the
// sign-up page or the user card without wiring the individual packages.
package signup

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-signup/pkg/card"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/html"
	"github.com/goliatone/go-signup/pkg/validation"
)

// FormValues aliases model.FormValues.
type FormValues = model.FormValues

// UserInfo aliases model.UserInfo.
type UserInfo = model.UserInfo

// RenderOptions describes per-request overrides such as the form action,
// locale and form-level errors.
type RenderOptions = render.RenderOptions

// Validate checks values with the default messages.
func Validate(values FormValues) validation.Errors {
	return validation.Validate(values)
}

// NewController exposes the form controller constructor from the top-level
// module.
func NewController(options ...form.ControllerOption) *form.Controller {
	return form.NewController(options...)
}

// GenerateHTML renders the sign-up page for state with the embedded
// templates. It is the simplest entry point for callers that just want HTML.
func GenerateHTML(ctx context.Context, state form.State, opts RenderOptions, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.RenderSignup(ctx, form.Render(state), opts)
}

// GenerateCardHTML renders the user card fragment for user.
func GenerateCardHTML(ctx context.Context, user UserInfo, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.RenderCard(ctx, card.Build(user))
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
