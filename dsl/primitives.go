package dsl

import fragskema "github.com/reoring/fragskema"

// PrimitiveBuilder builds string/integer/number/boolean shapes. Methods
// return modified copies.
type PrimitiveBuilder struct{ s fragskema.Shape }

func primitive(t string) PrimitiveBuilder {
	return PrimitiveBuilder{s: fragskema.Shape{Kind: fragskema.KindPrimitive, Type: t}}
}

// String returns a string shape.
func String() PrimitiveBuilder { return primitive(fragskema.TypeString) }

// Integer returns an integer shape.
func Integer() PrimitiveBuilder { return primitive(fragskema.TypeInteger) }

// Number returns a number shape.
func Number() PrimitiveBuilder { return primitive(fragskema.TypeNumber) }

// Boolean returns a boolean shape.
func Boolean() PrimitiveBuilder { return primitive(fragskema.TypeBoolean) }

// DateTime returns a string shape with format date-time.
func DateTime() PrimitiveBuilder { return String().Format("date-time") }

func (b PrimitiveBuilder) Description(d string) PrimitiveBuilder { b.s.Description = d; return b }
func (b PrimitiveBuilder) Example(v any) PrimitiveBuilder        { b.s.Example = v; return b }
func (b PrimitiveBuilder) Format(f string) PrimitiveBuilder      { b.s.Format = f; return b }
func (b PrimitiveBuilder) Nullable() PrimitiveBuilder            { b.s.Nullable = true; return b }

// Min sets the inclusive minimum.
func (b PrimitiveBuilder) Min(v float64) PrimitiveBuilder { b.s.Minimum = &v; return b }

// Max sets the inclusive maximum.
func (b PrimitiveBuilder) Max(v float64) PrimitiveBuilder { b.s.Maximum = &v; return b }

func (b PrimitiveBuilder) Shape() fragskema.Shape { return cloneShape(b.s) }

// EnumBuilder builds closed sets of literal values.
type EnumBuilder struct{ s fragskema.Shape }

// Enum returns a string enum shape.
func Enum(values ...string) EnumBuilder {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return EnumBuilder{s: fragskema.Shape{Kind: fragskema.KindEnum, Type: fragskema.TypeString, Enum: vs}}
}

// IntEnum returns an integer enum shape.
func IntEnum(values ...int64) EnumBuilder {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return EnumBuilder{s: fragskema.Shape{Kind: fragskema.KindEnum, Type: fragskema.TypeInteger, Enum: vs}}
}

func (b EnumBuilder) Description(d string) EnumBuilder { b.s.Description = d; return b }
func (b EnumBuilder) Example(v any) EnumBuilder        { b.s.Example = v; return b }
func (b EnumBuilder) Nullable() EnumBuilder            { b.s.Nullable = true; return b }
func (b EnumBuilder) Shape() fragskema.Shape           { return cloneShape(b.s) }

// RefBuilder builds reference shapes.
type RefBuilder struct{ s fragskema.Shape }

// Ref refers to a fragment by id. The target must be bundled somewhere in the
// composed graph.
func Ref(id string) RefBuilder {
	return RefBuilder{s: fragskema.Shape{Kind: fragskema.KindReference, Ref: id}}
}

// Embed refers to f and bundles it, so composing the parent pulls f in.
func Embed(f *fragskema.Fragment) RefBuilder {
	return RefBuilder{s: fragskema.Shape{Kind: fragskema.KindReference, Ref: f.ID, Embedded: f}}
}

func (b RefBuilder) Description(d string) RefBuilder { b.s.Description = d; return b }
func (b RefBuilder) Nullable() RefBuilder            { b.s.Nullable = true; return b }
func (b RefBuilder) Shape() fragskema.Shape          { return cloneShape(b.s) }
