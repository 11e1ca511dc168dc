package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "perfstats-config.json"

// configSchema describes the accepted document shape. Semantic checks
// that depend on other packages live in Validate.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "capacity": {"type": "integer", "minimum": 0},
    "roundPrecision": {"type": "integer", "minimum": 0, "maximum": 15},
    "percentiles": {"type": "boolean"},
    "frameWindow": {"type": "string", "pattern": "^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$"},
    "clock": {"type": "string", "enum": ["monotonic", "posix", "wall"]},
    "counters": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "capacity": {"type": "integer", "minimum": 0}
        }
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format": {"type": "string", "enum": ["text", "json", "yaml", "csv"]},
        "color": {"type": "string", "enum": ["auto", "always", "never"]},
        "quiet": {"type": "boolean"}
      }
    },
    "plot": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "counter": {"type": "string", "minLength": 1},
        "limit": {"type": "integer", "minimum": 0},
        "width": {"type": "integer", "minimum": 0},
        "height": {"type": "integer", "minimum": 0},
        "highlightThreshold": {"type": "number"},
        "threshold": {"type": "boolean"},
        "mean": {"type": "boolean"}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string", "enum": ["debug", "info", "warn", "warning", "error"]},
        "format": {"type": "string", "enum": ["text", "json"]}
      }
    }
  }
}`

// SchemaErrors represents a collection of schema violations
type SchemaErrors []error

// Error implements the error interface for SchemaErrors
func (se SchemaErrors) Error() string {
	if len(se) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range se {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
			schemaErr = fmt.Errorf("invalid schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks a raw YAML or JSON document against the
// configuration schema. The format is chosen from the path extension as
// in ParseConfig. Violations are returned as SchemaErrors.
func ValidateSchema(data []byte, path string) error {
	doc, err := decodeDocument(data, path)
	if err != nil {
		return err
	}

	s, err := schema()
	if err != nil {
		return err
	}

	if err := s.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return extractSchemaErrors(validationErr)
		}
		return SchemaErrors{err}
	}
	return nil
}

// decodeDocument decodes data into plain JSON values. YAML documents go
// through a JSON round trip so numbers and maps have the types the
// validator expects.
func decodeDocument(data []byte, path string) (interface{}, error) {
	var doc interface{}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		return doc, nil
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if raw == nil {
		return map[string]interface{}{}, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("config is not representable as JSON: %w", err)
	}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("config is not representable as JSON: %w", err)
	}
	return doc, nil
}

// extractSchemaErrors flattens a jsonschema.ValidationError tree
func extractSchemaErrors(err *jsonschema.ValidationError) SchemaErrors {
	var errors SchemaErrors

	if err.Message != "" && len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		errors = append(errors, fmt.Errorf("schema violation at %s: %s", location, err.Message))
	}

	for _, childErr := range err.Causes {
		errors = append(errors, extractSchemaErrors(childErr)...)
	}

	return errors
}
