package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-signup/pkg/model"
)

// EventType names a user action.
type EventType string

const (
	EventChange           EventType = "change"
	EventBlur             EventType = "blur"
	EventToggleVisibility EventType = "toggle_visibility"
	EventSubmit           EventType = "submit"
)

// ErrUnknownEvent is returned by ParseEvent for unsupported event types.
var ErrUnknownEvent = errors.New("form: unknown event")

// Event is a discrete user action processed by Apply.
type Event interface {
	Type() EventType
}

// Change replaces the value of Field.
type Change struct {
	Field model.Field
	Value string
}

// Blur marks Field as touched.
type Blur struct {
	Field model.Field
}

// ToggleVisibility flips password masking.
type ToggleVisibility struct{}

// Submit attempts to submit the current values.
type Submit struct{}

func (Change) Type() EventType           { return EventChange }
func (Blur) Type() EventType             { return EventBlur }
func (ToggleVisibility) Type() EventType { return EventToggleVisibility }
func (Submit) Type() EventType           { return EventSubmit }

type eventPayload struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// ParseEvent decodes a JSON event of the form
// {"type":"change","field":"email","value":"jane@example.com"}.
// Field is required for change and blur events.
func ParseEvent(raw []byte) (Event, error) {
	var payload eventPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("form: decode event: %w", err)
	}
	return payload.event()
}

func (p eventPayload) event() (Event, error) {
	switch EventType(strings.ToLower(strings.TrimSpace(p.Type))) {
	case EventChange:
		field, err := model.ParseField(p.Field)
		if err != nil {
			return nil, err
		}
		return Change{Field: field, Value: p.Value}, nil
	case EventBlur:
		field, err := model.ParseField(p.Field)
		if err != nil {
			return nil, err
		}
		return Blur{Field: field}, nil
	case EventToggleVisibility:
		return ToggleVisibility{}, nil
	case EventSubmit:
		return Submit{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, p.Type)
	}
}

// MarshalEvent encodes e in the format accepted by ParseEvent.
func MarshalEvent(e Event) ([]byte, error) {
	payload := eventPayload{}
	switch typed := e.(type) {
	case Change:
		payload = eventPayload{Type: string(EventChange), Field: typed.Field.String(), Value: typed.Value}
	case Blur:
		payload = eventPayload{Type: string(EventBlur), Field: typed.Field.String()}
	case ToggleVisibility:
		payload.Type = string(EventToggleVisibility)
	case Submit:
		payload.Type = string(EventSubmit)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, e)
	}
	return json.Marshal(payload)
}
