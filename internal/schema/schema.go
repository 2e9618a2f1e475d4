// Package schema validates serialized widget configs against the JSON Schema
// of a complete WidgetConfig.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed widget_config.schema.json
var widgetConfigSchema []byte

const resourceName = "widget_config.schema.json"

// Validator checks that a JSON document is a complete WidgetConfig
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded widget config schema
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(widgetConfigSchema)); err != nil {
		return nil, fmt.Errorf("schema: load %s: %w", resourceName, err)
	}
	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("schema: compile %s: %w", resourceName, err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate decodes raw and validates it
func (v *Validator) Validate(raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("schema: decode widget config: %w", err)
	}
	if err := v.schema.Validate(payload); err != nil {
		return fmt.Errorf("schema: widget config failed validation: %w", err)
	}
	return nil
}
