// Package dsl provides builders for fragskema fragments.
//
// Overview
//   - Builder API: declare object semantics with Object()/Field()/Required()/Strict().
//   - Primitives/Array/Enum: String()/Integer()/Number()/Boolean(), Array(items), Enum(values...).
//   - References: Ref(id) points at a fragment by id, Embed(f) also bundles it.
//   - Define(id, shape, nested...) produces an immutable *fragskema.Fragment.
//
// Every builder implements Builder; Shape() returns a fresh copy so builders
// can be reused without aliasing the produced fragments.
//
// Example
//
//	var roleSchema = dsl.Define("role", dsl.Object().
//	    Description("An Unleash role.").
//	    Field("name", dsl.String().Example("Owner")).Required().
//	    Field("id", dsl.Integer().Example(4)).Required().
//	    Field("type", dsl.Enum("custom", "project", "root", "custom-root")).Required().
//	    Strict())
//
//	var details = dsl.Define("pdpds", dsl.Object().
//	    Field("roles", dsl.Array(dsl.Ref("role")).Min(1)).Required().
//	    Strict(), roleSchema)
package dsl

import fragskema "github.com/reoring/fragskema"

// Builder is implemented by every shape builder in this package.
type Builder interface {
	Shape() fragskema.Shape
}

// Define creates a fragment from a builder and the fragments it bundles.
func Define(id string, b Builder, nested ...*fragskema.Fragment) *fragskema.Fragment {
	return &fragskema.Fragment{ID: id, Shape: b.Shape(), Nested: append([]*fragskema.Fragment(nil), nested...)}
}

// Raw adapts an existing shape value to Builder.
func Raw(s fragskema.Shape) Builder { return rawBuilder{s: s} }

type rawBuilder struct{ s fragskema.Shape }

func (r rawBuilder) Shape() fragskema.Shape { return cloneShape(r.s) }

// PropertyOf returns a copy of a property shape of another fragment, for
// fields that reuse a sibling schema's definition verbatim.
func PropertyOf(f *fragskema.Fragment, name string) Builder {
	s, ok := f.Shape.Property(name)
	if !ok {
		panic("dsl: fragment " + f.ID + " has no property " + name)
	}
	return Raw(s)
}
