package dsl

import (
	"slices"

	fragskema "github.com/reoring/fragskema"
)

// cloneShape deep-copies slices and pointers so produced fragments never
// share mutable state with a builder. Embedded fragments are shared; they are
// immutable values themselves.
func cloneShape(s fragskema.Shape) fragskema.Shape {
	out := s
	out.Minimum = cloneP(s.Minimum)
	out.Maximum = cloneP(s.Maximum)
	out.MinItems = cloneP(s.MinItems)
	out.MaxItems = cloneP(s.MaxItems)
	out.AdditionalProperties = cloneP(s.AdditionalProperties)
	out.Required = slices.Clone(s.Required)
	out.Enum = slices.Clone(s.Enum)
	if s.Items != nil {
		it := cloneShape(*s.Items)
		out.Items = &it
	}
	if s.Properties != nil {
		out.Properties = make([]fragskema.Property, len(s.Properties))
		for i, p := range s.Properties {
			out.Properties[i] = fragskema.Property{Name: p.Name, Shape: cloneShape(p.Shape)}
		}
	}
	return out
}

func cloneP[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
