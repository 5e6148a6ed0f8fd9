package dsl

import fragskema "github.com/reoring/fragskema"

// ObjectBuilder accumulates properties in declaration order.
type ObjectBuilder struct {
	props      []fragskema.Property
	required   []string
	additional *bool
	desc       string
	example    any
	nullable   bool
}

type fieldStep struct {
	b    *ObjectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are left unspecified
// until Strict or Open is called.
func Object() *ObjectBuilder { return &ObjectBuilder{} }

// Field registers (or replaces) a property.
func (b *ObjectBuilder) Field(name string, sb Builder) *fieldStep {
	p := fragskema.Property{Name: name, Shape: sb.Shape()}
	for i := range b.props {
		if b.props[i].Name == name {
			b.props[i] = p
			return &fieldStep{b: b, name: name}
		}
	}
	b.props = append(b.props, p)
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *ObjectBuilder { return f.b.Require(f.name) }

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *ObjectBuilder {
	out := f.b.required[:0]
	for _, r := range f.b.required {
		if r != f.name {
			out = append(out, r)
		}
	}
	f.b.required = out
	return f.b
}

func (f *fieldStep) Field(name string, sb Builder) *fieldStep { return f.b.Field(name, sb) }
func (f *fieldStep) Strict() *ObjectBuilder                   { return f.b.Strict() }
func (f *fieldStep) Open() *ObjectBuilder                     { return f.b.Open() }
func (f *fieldStep) Shape() fragskema.Shape                   { return f.b.Shape() }

// Require marks one or more fields as required.
func (b *ObjectBuilder) Require(names ...string) *ObjectBuilder {
	for _, n := range names {
		if !contains(b.required, n) {
			b.required = append(b.required, n)
		}
	}
	return b
}

// Strict sets additionalProperties:false.
func (b *ObjectBuilder) Strict() *ObjectBuilder {
	v := false
	b.additional = &v
	return b
}

// Open sets additionalProperties:true.
func (b *ObjectBuilder) Open() *ObjectBuilder {
	v := true
	b.additional = &v
	return b
}

func (b *ObjectBuilder) Description(d string) *ObjectBuilder { b.desc = d; return b }
func (b *ObjectBuilder) Example(v any) *ObjectBuilder        { b.example = v; return b }
func (b *ObjectBuilder) Nullable() *ObjectBuilder            { b.nullable = true; return b }

// Shape snapshots the builder into an object shape.
func (b *ObjectBuilder) Shape() fragskema.Shape {
	return cloneShape(fragskema.Shape{
		Kind:                 fragskema.KindObject,
		Description:          b.desc,
		Example:              b.example,
		Nullable:             b.nullable,
		Properties:           b.props,
		Required:             b.required,
		AdditionalProperties: b.additional,
	})
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
