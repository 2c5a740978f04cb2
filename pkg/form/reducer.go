package form

import (
	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Effect reports side effects requested by a transition.
type Effect struct {
	// Submission is set only when a Submit event was accepted. It carries the
	// values exactly as held before the reset, untrimmed.
	Submission *model.FormValues
}

// Accepted reports whether the transition accepted a submission.
func (e Effect) Accepted() bool {
	return e.Submission != nil
}

// Apply computes the state that follows event. It never mutates its input and
// never fails: unknown fields and nil events leave the state unchanged.
func Apply(state State, event Event) (State, Effect) {
	switch e := event.(type) {
	case Change:
		state.Values = state.Values.With(e.Field, e.Value)
	case Blur:
		state.Touched = state.Touched.With(e.Field, true)
	case ToggleVisibility:
		state.ShowPassword = !state.ShowPassword
	case Submit:
		return submit(state)
	}
	return state, Effect{}
}

// ApplyAll folds events over state, collecting accepted submissions in order.
func ApplyAll(state State, events ...Event) (State, []model.FormValues) {
	var submitted []model.FormValues
	for _, event := range events {
		var effect Effect
		state, effect = Apply(state, event)
		if effect.Accepted() {
			submitted = append(submitted, *effect.Submission)
		}
	}
	return state, submitted
}

func submit(state State) (State, Effect) {
	state.Touched = model.AllTouched()
	if !validation.Validate(state.Values).Valid() {
		return state, Effect{}
	}

	values := state.Values
	state.Submitted = true
	state.Values = model.FormValues{}
	state.Touched = model.TouchedState{}
	return state, Effect{Submission: &values}
}
