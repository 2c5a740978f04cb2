package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	schemaSignupRequest  = "SignupRequest"
	schemaSignupCreated  = "SignupCreated"
	schemaFieldErrors    = "FieldErrors"
	schemaValidationFail = "ValidationFailure"
	schemaValidateResult = "ValidateResult"
	schemaEventBatch     = "EventBatch"
	schemaEventResult    = "EventResult"
	schemaCard           = "Card"
	schemaError          = "Error"
)

// Option configures Build.
type Option func(*config)

type config struct {
	title       string
	version     string
	description string
	servers     []string
}

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if version != "" {
			cfg.version = version
		}
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(cfg *config) {
		if url != "" {
			cfg.servers = append(cfg.servers, url)
		}
	}
}

// Build returns the OpenAPI 3.0 description of the JSON endpoints.
func Build(options ...Option) *openapi3.T {
	cfg := config{
		title:       "Sign-up API",
		version:     "1.0.0",
		description: "Validates and accepts sign-up submissions.",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: cfg.description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: schemas(),
		},
	}
	for _, url := range cfg.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	doc.Paths.Set("/api/signup", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "createSignup",
			Summary:     "Validate and submit a sign-up",
			Tags:        []string{"signup"},
			RequestBody: jsonBody(schemaSignupRequest, doc),
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusCreated, jsonResponse("Submission accepted", schemaSignupCreated, doc)),
				openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Malformed request body", schemaError, doc)),
				openapi3.WithStatus(http.StatusUnprocessableEntity, jsonResponse("Validation failed", schemaValidationFail, doc)),
				openapi3.WithStatus(http.StatusBadGateway, jsonResponse("Submission could not be delivered", schemaError, doc)),
			),
		},
	})

	doc.Paths.Set("/api/validate", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "validateSignup",
			Summary:     "Validate sign-up values without submitting",
			Tags:        []string{"signup"},
			RequestBody: jsonBody(schemaSignupRequest, doc),
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("Validation result", schemaValidateResult, doc)),
				openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Malformed request body", schemaError, doc)),
			),
		},
	})

	doc.Paths.Set("/api/form/events", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "applyFormEvents",
			Summary:     "Apply user events to a form state",
			Tags:        []string{"signup"},
			RequestBody: jsonBody(schemaEventBatch, doc),
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("Next state and view", schemaEventResult, doc)),
				openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Malformed event", schemaError, doc)),
				openapi3.WithStatus(http.StatusBadGateway, jsonResponse("Submission could not be delivered", schemaError, doc)),
			),
		},
	})

	doc.Paths.Set("/api/card", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "getUserCard",
			Summary:     "Build the user card",
			Tags:        []string{"card"},
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewQueryParameter("name").WithSchema(openapi3.NewStringSchema())},
				{Value: openapi3.NewQueryParameter("email").WithSchema(openapi3.NewStringSchema())},
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("User card", schemaCard, doc)),
			),
		},
	})

	return doc
}

func schemas() openapi3.Schemas {
	str := func() *openapi3.SchemaRef { return openapi3.NewStringSchema().NewRef() }
	boolean := func() *openapi3.SchemaRef { return openapi3.NewBoolSchema().NewRef() }
	object := func() *openapi3.SchemaRef { return openapi3.NewObjectSchema().NewRef() }

	fieldErrors := &openapi3.Schema{
		Type:        &openapi3.Types{"object"},
		Description: "Messages keyed by field name; absent fields are valid.",
		AdditionalProperties: openapi3.AdditionalProperties{
			Schema: openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()).NewRef(),
		},
	}
	fieldErrorsRef := func() *openapi3.SchemaRef {
		return openapi3.NewSchemaRef("#/components/schemas/"+schemaFieldErrors, fieldErrors)
	}

	return openapi3.Schemas{
		schemaSignupRequest: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"name":     str(),
				"email":    openapi3.NewStringSchema().WithFormat("email").NewRef(),
				"password": openapi3.NewStringSchema().WithFormat("password").NewRef(),
			},
			Required: []string{"name", "email", "password"},
		}},
		schemaSignupCreated: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolean(),
				"id":      openapi3.NewUUIDSchema().NewRef(),
			},
			Required: []string{"success", "id"},
		}},
		schemaFieldErrors: &openapi3.SchemaRef{Value: fieldErrors},
		schemaValidationFail: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolean(),
				"errors":  fieldErrorsRef(),
			},
			Required: []string{"success", "errors"},
		}},
		schemaValidateResult: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"valid":  boolean(),
				"errors": fieldErrorsRef(),
			},
			Required: []string{"valid"},
		}},
		schemaEventBatch: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"state": object(),
				"events": openapi3.NewArraySchema().WithItems(&openapi3.Schema{
					Type: &openapi3.Types{"object"},
					Properties: openapi3.Schemas{
						"type":  openapi3.NewStringSchema().WithEnum("change", "blur", "toggle_visibility", "submit").NewRef(),
						"field": openapi3.NewStringSchema().WithEnum("name", "email", "password").NewRef(),
						"value": str(),
					},
					Required: []string{"type"},
				}).NewRef(),
			},
			Required: []string{"events"},
		}},
		schemaEventResult: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"state":        object(),
				"view":         object(),
				"submissionId": str(),
			},
			Required: []string{"state", "view"},
		}},
		schemaCard: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"initial": str(),
				"name":    str(),
				"email":   str(),
			},
		}},
		schemaError: &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolean(),
				"error":   str(),
				"errors":  fieldErrorsRef(),
			},
			Required: []string{"success", "error"},
		}},
	}
}

func componentRef(doc *openapi3.T, name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, doc.Components.Schemas[name].Value)
}

func jsonBody(schema string, doc *openapi3.T) *openapi3.RequestBodyRef {
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(componentRef(doc, schema))
	return &openapi3.RequestBodyRef{Value: body}
}

func jsonResponse(description, schema string, doc *openapi3.T) *openapi3.ResponseRef {
	response := openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(componentRef(doc, schema))
	return &openapi3.ResponseRef{Value: response}
}

// Validate checks doc against the OpenAPI 3 rules.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return errors.New("openapi: document is nil")
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("openapi: invalid document: %w", err)
	}
	return nil
}

// Load parses a JSON or YAML document, resolves its references and validates
// it.
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: raw document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := Validate(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Marshal renders doc as indented JSON.
func Marshal(doc *openapi3.T) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal document: %w", err)
	}
	return raw, nil
}
