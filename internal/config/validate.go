package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://pathquiz-config.json"

// configSchema bounds every setting. Vocabulary words may not contain the
// path separator or other JSON path syntax.
const configSchema = `{
  "type": "object",
  "properties": {
    "questions": {"type": "integer", "minimum": 1, "maximum": 1000},
    "max_depth": {"type": "integer", "minimum": 1, "maximum": 8},
    "max_regenerate": {"type": "integer", "minimum": 0, "maximum": 1000},
    "vocabulary": {
      "type": "array",
      "minItems": 3,
      "uniqueItems": true,
      "items": {"type": "string", "pattern": "^[^.|#@*?\\\\\\s]+$"}
    },
    "export_path": {"type": "string", "minLength": 1, "pattern": "\\.xlsx$"},
    "db_path": {"type": "string"},
    "log_file": {"type": "string"},
    "log_level": {"enum": ["debug", "info", "warn", "error"]}
  },
  "required": ["questions", "max_depth", "vocabulary", "export_path", "log_level"]
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(configSchema), &doc); err != nil {
			compileErr = fmt.Errorf("parse config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks cfg against the config schema.
func Validate(cfg *Config) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	// The validator works on decoded JSON values, not Go structs.
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
