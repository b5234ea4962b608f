package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/DADi590/VISOR---A-better-Android-assistant/application/schema"
)

const schemaResource = "manifest.schema.json"

// ValidateSchema checks raw manifest YAML against the JSON schema derived
// from the Document struct. This catches shape errors (wrong types, missing
// required fields) with a structured message before decoding.
func ValidateSchema(data []byte) error {
	schemaBytes, err := schema.Generate(Document{})
	if err != nil {
		return fmt.Errorf("failed to generate manifest schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, strings.NewReader(string(schemaBytes))); err != nil {
		return fmt.Errorf("failed to add manifest schema resource: %w", err)
	}
	sch, err := compiler.Compile(schemaResource)
	if err != nil {
		return fmt.Errorf("invalid manifest schema: %w", err)
	}

	// Round-trip YAML through JSON so the schema library sees plain
	// map[string]interface{} values.
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse permission manifest: %w", err)
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to prepare manifest for validation: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(jsonBytes, &obj); err != nil {
		return fmt.Errorf("failed to prepare manifest for validation: %w", err)
	}

	if err := sch.Validate(obj); err != nil {
		return fmt.Errorf("permission manifest does not match schema: %w", err)
	}
	return nil
}
