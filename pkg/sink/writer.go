package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Format selects the Writer encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name, defaulting to JSON for blank input.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("sink: unsupported format %q", raw)
	}
}

// Writer encodes each submission to an io.Writer: one JSON object per line,
// or one YAML document per submission.
type Writer struct {
	mu             sync.Mutex
	out            io.Writer
	format         Format
	redactPassword bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithFormat selects the encoding.
func WithFormat(format Format) WriterOption {
	return func(w *Writer) {
		if format != "" {
			w.format = format
		}
	}
}

// WithRedactedPassword replaces the password with a fixed mask.
func WithRedactedPassword() WriterOption {
	return func(w *Writer) {
		w.redactPassword = true
	}
}

// NewWriter returns a Writer sink targeting out.
func NewWriter(out io.Writer, options ...WriterOption) *Writer {
	w := &Writer{out: out, format: FormatJSON}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

func (*Writer) archive() {}

func (w *Writer) Submit(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.out == nil {
		return fmt.Errorf("sink: writer output is nil")
	}
	if w.redactPassword && submission.Values.Password != "" {
		submission.Values.Password = "********"
	}

	payload, err := Encode(submission, w.format)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(payload); err != nil {
		return fmt.Errorf("sink: write submission %s: %w", submission.ID, err)
	}
	return nil
}

// Encode serialises a submission in format, terminated by a newline (JSON)
// or a document separator (YAML).
func Encode(submission Submission, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		raw, err := yaml.Marshal(submission)
		if err != nil {
			return nil, fmt.Errorf("sink: encode yaml: %w", err)
		}
		return append([]byte("---\n"), raw...), nil
	default:
		raw, err := json.Marshal(submission)
		if err != nil {
			return nil, fmt.Errorf("sink: encode json: %w", err)
		}
		return append(raw, '\n'), nil
	}
}
