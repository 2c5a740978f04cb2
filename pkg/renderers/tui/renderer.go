// Package tui collects sign-up values from an interactive terminal. Each
// answer is fed through the form reducer so the terminal shows the same
// inline errors as the HTML page.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/sink"
	"github.com/goliatone/go-signup/pkg/validation"
)

const defaultMaxAttempts = 5

// Renderer drives a form.Controller from terminal prompts.
type Renderer struct {
	driver            PromptDriver
	infoOut           io.Writer
	outputFormat      OutputFormat
	sink              sink.Sink
	logger            logrus.FieldLogger
	validator         *validation.Validator
	prefill           model.FormValues
	maxAttempts       int
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		sink:         sink.Discard{},
		logger:       logrus.StandardLogger(),
		validator:    validation.New(),
		maxAttempts:  defaultMaxAttempts,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.infoOut)
	}
	if _, err := ParseOutputFormat(string(r.outputFormat)); err != nil {
		return nil, err
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Run.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	case OutputFormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Run prompts for every field, submits the form and returns the submitted
// values serialized in the configured format.
func (r *Renderer) Run(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	ctrl := form.NewController(
		form.WithSink(r.sink),
		form.WithLogger(r.logger),
		form.WithControllerValidator(r.validator),
	)

	for _, field := range model.Fields() {
		if field == model.FieldPassword {
			show, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: "Show password while typing?",
				Default: false,
			})
			if err != nil {
				return nil, err
			}
			if show {
				ctrl.OnToggleVisibility()
			}
		}
		if err := r.promptField(ctx, ctrl, field); err != nil {
			return nil, err
		}
	}

	result, err := ctrl.OnSubmit(ctx)
	if err != nil {
		return nil, fmt.Errorf("tui: submit: %w", err)
	}
	if result.Submission == nil {
		return nil, ErrNotAccepted
	}
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Signed up successfully!"); err != nil {
		return nil, err
	}

	values := valuesMap(result.Submission.Values)
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, ctrl *form.Controller, field model.Field) error {
	for attempt := 1; ; attempt++ {
		fv, _ := ctrl.View().Field(field)
		cfg := InputConfig{
			Message: r.theme.PromptPrefix + fv.Label,
			Help:    fv.Help,
		}
		if field != model.FieldPassword {
			cfg.Default = r.prefill.Get(field)
		}

		var (
			answer string
			err    error
		)
		if field == model.FieldPassword && ctrl.View().PasswordMasked {
			answer, err = r.driver.Password(ctx, cfg)
		} else {
			answer, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		ctrl.OnChange(field, answer)
		ctrl.OnBlur(field)

		fv, _ = ctrl.View().Field(field)
		if !fv.ShowError {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+fv.Error); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field)
		}
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	case OutputFormatYAML:
		out, err := yaml.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	default:
		return json.Marshal(values)
	}
}

func valuesMap(values model.FormValues) map[string]any {
	out := make(map[string]any, len(model.Fields()))
	for _, field := range model.Fields() {
		out[field.String()] = values.Get(field)
	}
	return out
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, fmt.Sprint(value))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := fmt.Sprint(values[key])
		if key == model.FieldPassword.String() && value != "" {
			value = strings.Repeat("*", 8)
		}
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}
	return b.String()
}
