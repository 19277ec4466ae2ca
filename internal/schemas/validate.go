// Package schemas holds the embedded JSON Schemas for the config file and
// board definitions, compiled once on first use.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed config.schema.json
var configSchema string

//go:embed boards.schema.json
var boardsSchema string

var (
	compiledConfig = sync.OnceValues(func() (*gojsonschema.Schema, error) { return compile(configSchema) })
	compiledBoards = sync.OnceValues(func() (*gojsonschema.Schema, error) { return compile(boardsSchema) })
)

func compile(src string) (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Document string
	Errors   []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Document, strings.Join(parts, "; "))
}

// DecodeError means the document or schema could not be read at all.
type DecodeError struct {
	Document string
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Document, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// ValidateConfig checks raw config file JSON.
func ValidateConfig(data []byte) error {
	return check("config", compiledConfig, gojsonschema.NewBytesLoader(data))
}

// ValidateBoards checks an already-decoded board document, such as parsed YAML.
func ValidateBoards(doc any) error {
	return check("boards", compiledBoards, gojsonschema.NewGoLoader(doc))
}

// ValidateJSONString checks doc against an ad hoc schema.
func ValidateJSONString(schema, doc string) error {
	return check("document", func() (*gojsonschema.Schema, error) { return compile(schema) }, gojsonschema.NewStringLoader(doc))
}

func check(name string, schema func() (*gojsonschema.Schema, error), doc gojsonschema.JSONLoader) error {
	s, err := schema()
	if err != nil {
		return &DecodeError{Document: name + " schema", Cause: err}
	}
	result, err := s.Validate(doc)
	if err != nil {
		return &DecodeError{Document: name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Document: name}
	for _, d := range result.Errors() {
		field := d.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: d.Description()})
	}
	return verr
}
