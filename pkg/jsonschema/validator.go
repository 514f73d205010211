// Package jsonschema validates JSON documents against JSON Schema.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate validates a JSON string against a JSON Schema. It returns whether
// the document is valid plus the individual validation errors when it is not.
// A broken schema or unparseable document is reported as a single error.
func Validate(jsonStr, schemaStr string) (bool, ValidationErrors) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid schema: %w", err)}
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid schema: %w", err)}
	}

	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := schema.Validate(jsonData); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return false, collectErrors(validationErr)
		}
		return false, ValidationErrors{err}
	}

	return true, nil
}

// collectErrors flattens a jsonschema.ValidationError tree into a list
func collectErrors(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors

	if err.Message != "" {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message))
	}

	for _, childErr := range err.Causes {
		errors = append(errors, collectErrors(childErr)...)
	}

	return errors
}
