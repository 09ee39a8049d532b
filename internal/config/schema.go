package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema constrains the effective configuration. Free-form fields
// (due date and priority prefills) are only required to be strings.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "log_dir": {"type": "string", "minLength": 1},
    "log_level": {"enum": ["debug", "info", "warn", "error", "fatal"]},
    "log_format": {"enum": ["text", "json", "logfmt"]},
    "log_timestamps": {"type": "boolean"},
    "default_due_date": {"type": "string"},
    "default_priority": {"type": "string"},
    "accent_color": {"type": "string"},
    "completed_dim": {"type": "boolean"}
  },
  "required": ["log_dir", "log_level", "log_format"]
}`

// ValidationError represents a schema violation at a specific config key.
type ValidationError struct {
	Path string // config key path to the error location
	Err  error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledConfigSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("taskdesk-config.schema.json", strings.NewReader(configSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("taskdesk-config.schema.json")
	})
	return compiledSchema, schemaErr
}

// Validate checks the effective configuration against the embedded JSON
// Schema. The config is marshalled back to JSON for validation. Returns
// path-qualified errors, or nil if the config is valid.
func (c *Config) Validate() []error {
	schema, err := compiledConfigSchema()
	if err != nil {
		return []error{fmt.Errorf("compile config schema: %w", err)}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return []error{fmt.Errorf("marshal config for validation: %w", err)}
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return []error{fmt.Errorf("unmarshal config for validation: %w", err)}
	}

	if err := schema.Validate(obj); err != nil {
		var errs []error
		appendSchemaErrors(&errs, err)
		return errs
	}
	return nil
}

func appendSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}
	collectSchemaErrors(errs, ve)
}

// collectSchemaErrors flattens nested schema causes into leaf errors.
func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath converts a JSON pointer like "/tasks/0/title" into a
// dotted path like "tasks[0].title".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path string
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
