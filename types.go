package fragskema

import "slices"

// Kind identifies the variant of a Shape.
type Kind int

const (
	KindPrimitive Kind = iota
	KindObject
	KindArray
	KindEnum
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindEnum:
		return "enum"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Primitive type names (JSON Schema compatible).
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// RefPrefix is the JSON Pointer prefix used for references into the registry.
const RefPrefix = "#/components/schemas/"

// Shape is a structural schema description. Only the fields relevant to Kind
// are meaningful; the rest stay at their zero value.
type Shape struct {
	Kind Kind

	// Annotations shared by every kind.
	Description string
	Example     any
	Nullable    bool

	// Primitive and enum base type: string|integer|number|boolean.
	Type    string
	Format  string
	Minimum *float64
	Maximum *float64

	// Object
	Properties           []Property
	Required             []string
	AdditionalProperties *bool // nil means unspecified (open)

	// Array
	Items    *Shape
	MinItems *int
	MaxItems *int

	// Enum
	Enum []any

	// Reference. Embedded optionally carries the referenced fragment itself so
	// that composing the parent pulls it in.
	Ref      string
	Embedded *Fragment
}

// Property is a named object member. Properties keep declaration order.
type Property struct {
	Name  string
	Shape Shape
}

// Fragment is an immutable, uniquely identified schema description together
// with the fragments it bundles as dependencies.
type Fragment struct {
	ID     string
	Shape  Shape
	Nested []*Fragment
}

// Property returns the named property of an object shape.
func (s Shape) Property(name string) (Shape, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Shape, true
		}
	}
	return Shape{}, false
}

// IsRequired reports whether name is listed under required.
func (s Shape) IsRequired(name string) bool { return slices.Contains(s.Required, name) }

// Strict reports whether unknown keys are rejected (additionalProperties:false).
func (s Shape) Strict() bool {
	return s.AdditionalProperties != nil && !*s.AdditionalProperties
}

// Reference is one $ref occurrence inside a shape.
type Reference struct {
	Path string // JSON Pointer relative to the fragment root
	ID   string
}

// References lists every reference in the fragment's shape in traversal order.
func (f *Fragment) References() []Reference {
	if f == nil {
		return nil
	}
	var out []Reference
	walkShape("", f.Shape, func(path string, s Shape) {
		if s.Kind == KindReference {
			out = append(out, Reference{Path: rootPath(path), ID: s.Ref})
		}
	})
	return out
}

// Dependencies returns the bundled nested fragments followed by embedded
// reference targets, in discovery order.
func (f *Fragment) Dependencies() []*Fragment {
	if f == nil {
		return nil
	}
	deps := make([]*Fragment, 0, len(f.Nested))
	for _, n := range f.Nested {
		if n != nil {
			deps = append(deps, n)
		}
	}
	walkShape("", f.Shape, func(_ string, s Shape) {
		if s.Kind == KindReference && s.Embedded != nil {
			deps = append(deps, s.Embedded)
		}
	})
	return deps
}

// walkShape visits s and every sub-shape depth-first in declaration order.
func walkShape(path string, s Shape, fn func(path string, s Shape)) {
	fn(path, s)
	switch s.Kind {
	case KindObject:
		for _, p := range s.Properties {
			walkShape(path+"/properties/"+EscapePointer(p.Name), p.Shape, fn)
		}
	case KindArray:
		if s.Items != nil {
			walkShape(path+"/items", *s.Items, fn)
		}
	}
}

func rootPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
