// Package schemas provides JSON Schema validation for structured data
// artifacts such as taxonomy records.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", ve.Errors[0].Field, ve.Errors[0].Message)
	}
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema, reusable across many documents. Compile
// once and call Validate per record; recompiling per document is far too slow
// for line-by-line taxonomy loading.
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
}

// Compile parses and compiles schema content. The name only labels errors.
func Compile(name, schemaContent string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return nil, &SchemaLoadError{
			Name:    name,
			Message: "schema failed to compile",
			Cause:   err,
		}
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// Validate checks one JSON document against the compiled schema
func (s *Schema) Validate(document []byte) error {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("document could not be validated against %s: %w", s.name, err)
	}
	return resultError(result)
}

// resultError converts a gojsonschema result into a structured error, nil
// when valid. Root-level failures carry the library's "(root)" field name.
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	fields := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		fields = append(fields, FieldError{Field: desc.Field(), Message: desc.Description()})
	}
	return &ValidationError{Errors: fields}
}
