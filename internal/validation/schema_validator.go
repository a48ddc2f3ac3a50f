package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schema names for the shipped data files
const (
	SchemaGachaPools      = "gacha_pools"
	SchemaEnchantProfiles = "enchant_profiles"
	SchemaExpTable        = "exp_table"
)

// ErrSchemaViolation is returned when a document parses but does not match its schema
var ErrSchemaViolation = errors.New("schema validation failed")

// SchemaValidator validates YAML or JSON documents against the embedded schemas
type SchemaValidator interface {
	ValidateFile(dataPath, schema string) error
	ValidateBytes(data []byte, schema string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile validates a data file against a named schema
func (v *validator) ValidateFile(dataPath, schema string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	if err := v.ValidateBytes(data, schema); err != nil {
		return fmt.Errorf("%s: %w", dataPath, err)
	}
	return nil
}

// ValidateBytes validates a YAML or JSON document against a named schema
func (v *validator) ValidateBytes(data []byte, schema string) error {
	compiled, err := v.loadSchema(schema)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schema, err)
	}

	doc, err := normalize(data)
	if err != nil {
		return err
	}

	if err := compiled.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// normalize decodes YAML (JSON is a subset) and re-reads it as JSON so the
// validator sees plain JSON types
func normalize(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
}

// loadSchema compiles an embedded schema, caching the result
func (v *validator) loadSchema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[name]; ok {
		return schema, nil
	}

	path := "schemas/" + name + ".schema.json"
	f, err := schemaFS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	if err := v.compiler.AddResource(path, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := v.compiler.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[name] = schema
	return schema, nil
}

// formatValidationError flattens the error tree into one line per failing location
func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("validation error: %w", err)
	}
	var lines []string
	collectErrors(validationErr, &lines)
	return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
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
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil {
		if keywords := err.ErrorKind.KeywordPath(); len(keywords) > 0 {
			return fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(keywords, "."))
		}
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
