// Package validation checks catalog and outcome documents against the JSON
// schemas embedded in the binary.
package validation

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Embedded schema names
const (
	SchemaCatalog = "catalog.schema.json"
	SchemaBattle  = "battle.schema.json"
	SchemaSpin    = "spin.schema.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrSchemaViolation is wrapped by every failed validation
var ErrSchemaViolation = errors.New("schema validation failed")

// SchemaValidator validates JSON data against JSON schemas
type SchemaValidator interface {
	ValidateFile(dataPath, schemaName string) error
	ValidateBytes(data []byte, schemaName string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator over the embedded schemas
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile validates a JSON file against a named schema
func (v *validator) ValidateFile(dataPath, schemaName string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	return v.ValidateBytes(data, schemaName)
}

// ValidateBytes validates JSON data bytes against a named schema
func (v *validator) ValidateBytes(data []byte, schemaName string) error {
	schema, err := v.loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// loadSchema compiles an embedded schema once and caches it
func (v *validator) loadSchema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[name]; ok {
		return schema, nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	if err := v.compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := v.compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[name] = schema
	return schema, nil
}

// formatValidationError lists every failing location, one per line
func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		var lines []string
		collectErrors(validationErr, &lines)
		return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
	}
	return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")

	keywords := ""
	if err.ErrorKind != nil {
		keywords = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	if keywords == "" {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
}
