package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/sink"
	"github.com/goliatone/go-signup/pkg/validation"
)

// OutputFormat controls how submitted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML document.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat resolves a format name; blank input selects JSON.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatYAML, "yml":
		return OutputFormatYAML, nil
	case OutputFormatFormURLEncoded, "urlencoded":
		return OutputFormatFormURLEncoded, nil
	case OutputFormatPrettyText, "text":
		return OutputFormatPrettyText, nil
	default:
		return "", fmt.Errorf("tui: unsupported output format %q", raw)
	}
}

// Theme holds optional prefixes for prompt, info and error lines.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// SubmitTransformer mutates submitted values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithInfoOutput sets where the default driver prints messages.
func WithInfoOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.infoOut = out
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSink forwards the accepted submission to s (default: discarded).
func WithSink(s sink.Sink) Option {
	return func(r *Renderer) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithLogger sets the logger handed to the form controller.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithValidator renders inline errors with v's messages.
func WithValidator(v *validation.Validator) Option {
	return func(r *Renderer) {
		if v != nil {
			r.validator = v
		}
	}
}

// WithPrefill offers values as prompt defaults. Passwords are never
// offered as defaults.
func WithPrefill(values model.FormValues) Option {
	return func(r *Renderer) {
		r.prefill = values
	}
}

// WithMaxAttempts bounds how many times a field is prompted while invalid.
// Zero or negative values mean no limit.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		r.maxAttempts = n
	}
}

// WithSubmitTransformer allows callers to mutate submitted values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
