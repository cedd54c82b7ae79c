package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// ValidationError lists every invalid field of a configuration.
type ValidationError struct {
	Problems []FieldProblem
}

// FieldProblem is one invalid field.
type FieldProblem struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Field == "" {
			parts = append(parts, p.Message)
			continue
		}
		parts = append(parts, p.Field+": "+p.Message)
	}
	return "invalid config: " + strings.Join(parts, "; ")
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("todolist-config.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("todolist-config.json")
	})
	return schema, schemaErr
}

// Validate checks the effective configuration against the embedded schema.
func Validate(cfg *Config) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		out := &ValidationError{}
		collectProblems(out, ve)
		return out
	}
	return nil
}

func collectProblems(out *ValidationError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		out.Problems = append(out.Problems, FieldProblem{
			Field:   strings.TrimPrefix(err.InstanceLocation, "/"),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(out, cause)
	}
}
