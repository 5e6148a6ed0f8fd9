package dsl

import fragskema "github.com/reoring/fragskema"

// ArrayBuilder builds array shapes.
type ArrayBuilder struct{ s fragskema.Shape }

// Array returns an array shape with the given item shape.
func Array(items Builder) ArrayBuilder {
	it := items.Shape()
	return ArrayBuilder{s: fragskema.Shape{Kind: fragskema.KindArray, Items: &it}}
}

// Min sets minItems.
func (b ArrayBuilder) Min(n int) ArrayBuilder { b.s.MinItems = &n; return b }

// Max sets maxItems.
func (b ArrayBuilder) Max(n int) ArrayBuilder { b.s.MaxItems = &n; return b }

func (b ArrayBuilder) Description(d string) ArrayBuilder { b.s.Description = d; return b }
func (b ArrayBuilder) Nullable() ArrayBuilder            { b.s.Nullable = true; return b }
func (b ArrayBuilder) Shape() fragskema.Shape            { return cloneShape(b.s) }
