package fragskema

import (
	"slices"

	j "github.com/goccy/go-json"

	js "github.com/reoring/fragskema/jsonschema"
)

// JSONSchema projects the shape into its wire representation. References are
// rendered as registry pointers; embedded targets are not inlined.
func (s Shape) JSONSchema() *js.Schema {
	out := &js.Schema{
		Description: s.Description,
		Example:     s.Example,
		Nullable:    s.Nullable,
	}
	switch s.Kind {
	case KindPrimitive:
		out.Type = s.Type
		out.Format = s.Format
		out.Minimum = cloneFloat(s.Minimum)
		out.Maximum = cloneFloat(s.Maximum)
	case KindEnum:
		out.Type = s.Type
		out.Enum = slices.Clone(s.Enum)
	case KindObject:
		out.Type = "object"
		if len(s.Properties) > 0 {
			out.Properties = make(map[string]*js.Schema, len(s.Properties))
			for _, p := range s.Properties {
				out.Properties[p.Name] = p.Shape.JSONSchema()
			}
		}
		// sorted for deterministic output
		if len(s.Required) > 0 {
			out.Required = slices.Sorted(slices.Values(s.Required))
		}
		if s.AdditionalProperties != nil {
			ap := *s.AdditionalProperties
			out.AdditionalProperties = &ap
		}
	case KindArray:
		out.Type = "array"
		if s.Items != nil {
			out.Items = s.Items.JSONSchema()
		}
		out.MinItems = cloneInt(s.MinItems)
		out.MaxItems = cloneInt(s.MaxItems)
	case KindReference:
		out.Ref = RefTo(s.Ref)
	}
	return out
}

// fingerprint is the canonical encoding used for structural equality. go-json
// sorts map keys, so property declaration order does not affect identity.
func fingerprint(s Shape) ([]byte, error) {
	return j.Marshal(s.JSONSchema())
}

// Equivalent reports whether two shapes are structurally identical.
func Equivalent(a, b Shape) bool {
	fa, err := fingerprint(a)
	if err != nil {
		return false
	}
	fb, err := fingerprint(b)
	if err != nil {
		return false
	}
	return string(fa) == string(fb)
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
