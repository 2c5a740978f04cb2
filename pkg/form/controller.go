package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/sink"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Result is returned by Controller.Dispatch. Submission is set only when the
// event was an accepted submit that the sink acknowledged.
type Result struct {
	State      State
	Submission *sink.Submission
}

// Controller owns a form State and forwards accepted submissions to a sink.
// It is safe for concurrent use. The sink runs while the controller's lock is
// held, so a slow sink blocks State, View and other events on the same
// controller until it returns; share a controller only with fast sinks or
// create one per request.
type Controller struct {
	mu        sync.Mutex
	state     State
	sink      sink.Sink
	validator *validation.Validator
	logger    logrus.FieldLogger
	now       func() time.Time
	newID     func() string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSink sets the submission sink. The default logs submissions.
func WithSink(s sink.Sink) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithLogger sets the logger used for transitions.
func WithLogger(logger logrus.FieldLogger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithControllerValidator sets the validator used by View.
func WithControllerValidator(v *validation.Validator) ControllerOption {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides the submission ID source.
func WithIDGenerator(newID func() string) ControllerOption {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// WithInitialState starts the controller from state instead of NewState.
func WithInitialState(state State) ControllerOption {
	return func(c *Controller) {
		c.state = state
	}
}

// NewController builds a Controller in the initial state.
func NewController(options ...ControllerOption) *Controller {
	c := &Controller{
		state:     NewState(),
		validator: validation.New(),
		logger:    logrus.StandardLogger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.sink == nil {
		c.sink = sink.NewLog(c.logger)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View renders the current state.
func (c *Controller) View() View {
	return Render(c.State(), WithValidator(c.validator))
}

// Errors validates the current values.
func (c *Controller) Errors() validation.Errors {
	return c.validator.Validate(c.State().Values)
}

// Reset returns the controller to the initial state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = NewState()
}

// OnChange records value for field.
func (c *Controller) OnChange(field model.Field, value string) State {
	result, _ := c.Dispatch(context.Background(), Change{Field: field, Value: value})
	return result.State
}

// OnBlur marks field as touched.
func (c *Controller) OnBlur(field model.Field) State {
	result, _ := c.Dispatch(context.Background(), Blur{Field: field})
	return result.State
}

// OnToggleVisibility flips the password visibility flag.
func (c *Controller) OnToggleVisibility() State {
	result, _ := c.Dispatch(context.Background(), ToggleVisibility{})
	return result.State
}

// OnSubmit attempts a submission. A rejected submit (invalid values) is not an
// error: Result.Submission is nil and every field is marked touched.
func (c *Controller) OnSubmit(ctx context.Context) (Result, error) {
	return c.Dispatch(ctx, Submit{})
}

// Dispatch applies event and, when it yields an accepted submission, delivers
// it to the sink exactly once. If the sink fails the state keeps the
// submitted values with every field touched and Submitted unchanged.
func (c *Controller) Dispatch(ctx context.Context, event Event) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	next, effect := Apply(prev, event)
	if !effect.Accepted() {
		c.state = next
		if _, ok := event.(Submit); ok {
			c.logger.WithField("invalid_fields", validation.Validate(next.Values).Codes()).Debug("form: submit rejected")
		}
		return Result{State: next}, nil
	}

	submission := sink.Submission{
		ID:          c.newID(),
		SubmittedAt: c.now().UTC(),
		Values:      *effect.Submission,
	}
	if err := c.sink.Submit(ctx, submission); err != nil {
		c.state = prev
		c.state.Touched = model.AllTouched()
		c.logger.WithError(err).WithField("submission_id", submission.ID).Warn("form: sink rejected submission")
		return Result{State: c.state}, fmt.Errorf("form: deliver submission %s: %w", submission.ID, err)
	}

	c.state = next
	c.logger.WithField("submission_id", submission.ID).Debug("form: submission accepted")
	return Result{State: next, Submission: &submission}, nil
}
