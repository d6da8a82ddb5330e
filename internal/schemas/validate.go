// Package schemas provides JSON Schema validation for pondus documents.
//
// The schemas ship inside the binary so that validation works regardless of
// the working directory the CLI runs from.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed aliases.schema.json
var aliasesSchema string

//go:embed config.schema.json
var configSchema string

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Document))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateAliases validates an alias dataset document against the bundled schema.
func ValidateAliases(document []byte) error {
	return validate("alias dataset", aliasesSchema, document)
}

// ValidateConfig validates a config file document against the bundled schema.
func ValidateConfig(document []byte) error {
	return validate("config", configSchema, document)
}

func validate(name, schema string, document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", name, err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Document: name,
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
