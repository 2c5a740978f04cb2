// Package openapi describes the sign-up JSON API as an OpenAPI 3 document
// built with kin-openapi, and loads documents back for validation.
package openapi
