// Package form holds the sign-up form state machine.
//
// State is an explicit value and Apply is a pure reducer: given a state and
// one user event (Change, Blur, ToggleVisibility, Submit) it returns the next
// state plus an Effect. The only effect is an accepted submission, which the
// caller hands to a submission sink. Render derives the view a renderer
// needs (field values, visible errors, submit availability) from a state
// without touching it.
//
// Controller wraps the reducer for callers that want a stateful component:
// it owns the current State, forwards accepted submissions to a sink.Sink
// and logs transitions.
//
//	ctrl := form.NewController(form.WithSink(sink.NewRecorder()))
//	ctrl.OnChange(model.FieldName, "Jane Doe")
//	ctrl.OnBlur(model.FieldName)
//	result, err := ctrl.OnSubmit(ctx)
package form
