// Package api holds the OpenAPI document describing the catalogue HTTP API.
package api

import _ "embed"

// OpenAPISpec is the raw OpenAPI YAML document.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
