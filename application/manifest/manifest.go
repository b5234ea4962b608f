// Package manifest loads and validates the declared permission manifest.
// The manifest is an external input; this package only guards its shape so
// the reconciler can fail fast instead of silently skipping broken entries.
package manifest

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
)

// validate is a package-level singleton; creating a validator per call is
// expensive.
var validate = validator.New()

// Document is the on-disk manifest format.
type Document struct {
	Permissions entities.Manifest `json:"permissions" yaml:"permissions" validate:"required,min=1,dive" jsonschema:"required"`
}

// Parse unmarshals YAML bytes into a Document without validating it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse permission manifest: %w", err)
	}
	return &doc, nil
}

// Validate runs struct-tag validation over the document. Entries with a
// missing name or a version below 1 are rejected here, before any
// reconciliation pass sees them.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("permission manifest validation failed: %w", err)
	}
	return nil
}

// Load parses, schema-checks and validates a manifest in one step and
// returns the declared entries.
func Load(data []byte) (entities.Manifest, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc.Permissions, nil
}
