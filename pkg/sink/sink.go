package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-signup/pkg/model"
)

// ErrNilSink is returned when a nil Sink is used.
var ErrNilSink = errors.New("sink: nil sink")

// Submission wraps accepted form values with delivery metadata.
type Submission struct {
	ID          string           `json:"id" yaml:"id"`
	SubmittedAt time.Time        `json:"submittedAt" yaml:"submittedAt"`
	Values      model.FormValues `json:"values" yaml:"values"`
}

// Sink receives accepted submissions.
type Sink interface {
	Submit(ctx context.Context, submission Submission) error
}

// Func adapts a function to Sink.
type Func func(ctx context.Context, submission Submission) error

func (fn Func) Submit(ctx context.Context, submission Submission) error {
	if fn == nil {
		return ErrNilSink
	}
	return fn(ctx, submission)
}

// Archive marks sinks that only keep a record of submissions (logs, files,
// memory) and never decide whether a submission is accepted.
type Archive interface {
	Sink
	archive()
}

// Multi fans a submission out to every sink, stopping at the first failure.
// Sinks that can reject a submission run first, in order; Archive sinks run
// only after all of them succeeded, so a rejected submission is never
// recorded.
type Multi []Sink

func (m Multi) Submit(ctx context.Context, submission Submission) error {
	for i, s := range m {
		if s == nil {
			return fmt.Errorf("sink: multi[%d]: %w", i, ErrNilSink)
		}
	}
	for _, archives := range []bool{false, true} {
		for i, s := range m {
			if _, ok := s.(Archive); ok != archives {
				continue
			}
			if err := s.Submit(ctx, submission); err != nil {
				return fmt.Errorf("sink: multi[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// Discard accepts and drops every submission.
type Discard struct{}

func (Discard) Submit(ctx context.Context, _ Submission) error {
	return ctx.Err()
}

func (Discard) archive() {}
