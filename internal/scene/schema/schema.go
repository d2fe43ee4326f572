// Package schema validates encoded scene documents against the scene graph JSON Schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "scene-graph.schema.json"

//go:embed scene-graph.schema.json
var source string

var (
	once     sync.Once
	compiled *jsonschema.Schema
	errComp  error
)

// Schema returns the compiled scene graph schema.
func Schema() (*jsonschema.Schema, error) {
	once.Do(func() {
		compiled, errComp = jsonschema.CompileString(schemaURL, source)
	})
	return compiled, errComp
}

func ValidateDocument(raw []byte) error {
	s, err := Schema()
	if err != nil {
		return fmt.Errorf("compile scene schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("scene document: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("scene document: %w", err)
	}
	return nil
}
