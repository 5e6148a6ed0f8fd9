package jsonschema

// Schema is the JSON Schema / OpenAPI subset emitted for composed documents.
// Keep this struct small and extend it incrementally.
type Schema struct {
	// Core
	ID          string   `json:"$id,omitempty" yaml:"$id,omitempty"`
	Ref         string   `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Example     any      `json:"example,omitempty" yaml:"example,omitempty"`
	Nullable    bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Enum        []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Registry of the composed document (root only).
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
}

// Components holds every deduplicated fragment reachable from the root.
type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}
