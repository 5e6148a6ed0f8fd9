package fragskema

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ValidateFragment checks the fragment id and the structural rules of its
// shape. Nested fragments are not visited; the composer validates each one
// as it is discovered.
func ValidateFragment(f *Fragment) error {
	if f == nil {
		return &MalformedShapeError{Path: "/", Reason: "nil fragment"}
	}
	if f.ID == "" {
		return &MalformedShapeError{Path: "/", Reason: "fragment id is empty"}
	}
	return ValidateShape(f.ID, f.Shape)
}

// ValidateShape checks every sub-shape of s and returns all violations
// aggregated with multierr.
func ValidateShape(id string, s Shape) error {
	var err error
	walkShape("", s, func(path string, sub Shape) {
		err = multierr.Append(err, validateOne(id, rootPath(path), sub))
	})
	return err
}

func validateOne(id, path string, s Shape) error {
	bad := func(format string, a ...any) error {
		return &MalformedShapeError{ID: id, Path: path, Reason: fmt.Sprintf(format, a...)}
	}
	switch s.Kind {
	case KindPrimitive:
		if !isPrimitiveType(s.Type) {
			return bad("unknown primitive type %q", s.Type)
		}
		if s.Minimum != nil && s.Maximum != nil && *s.Minimum > *s.Maximum {
			return bad("minimum %v exceeds maximum %v", *s.Minimum, *s.Maximum)
		}
	case KindEnum:
		return validateEnum(s, bad)
	case KindObject:
		var err error
		seen := make(map[string]struct{}, len(s.Properties))
		for _, p := range s.Properties {
			if p.Name == "" {
				err = multierr.Append(err, bad("property with empty name"))
				continue
			}
			if _, dup := seen[p.Name]; dup {
				err = multierr.Append(err, bad("duplicate property %q", p.Name))
			}
			seen[p.Name] = struct{}{}
		}
		req := make(map[string]struct{}, len(s.Required))
		for _, r := range s.Required {
			if _, ok := seen[r]; !ok {
				err = multierr.Append(err, bad("required names undeclared property %q", r))
			}
			if _, dup := req[r]; dup {
				err = multierr.Append(err, bad("property %q listed twice under required", r))
			}
			req[r] = struct{}{}
		}
		return err
	case KindArray:
		if s.Items == nil {
			return bad("array without items")
		}
		if s.MinItems != nil && *s.MinItems < 0 {
			return bad("negative minItems %d", *s.MinItems)
		}
		if s.MinItems != nil && s.MaxItems != nil && *s.MinItems > *s.MaxItems {
			return bad("minItems %d exceeds maxItems %d", *s.MinItems, *s.MaxItems)
		}
	case KindReference:
		if s.Ref == "" {
			return bad("reference without target id")
		}
		if s.Embedded != nil && s.Embedded.ID != s.Ref {
			return bad("reference %q embeds fragment %q", s.Ref, s.Embedded.ID)
		}
	default:
		return bad("unknown kind %d", int(s.Kind))
	}
	return nil
}

func validateEnum(s Shape, bad func(string, ...any) error) error {
	if len(s.Enum) == 0 {
		return bad("enum without values")
	}
	base := s.Type
	if base == "" {
		base = TypeString
	}
	if !isPrimitiveType(base) || base == TypeBoolean {
		return bad("unsupported enum base type %q", s.Type)
	}
	seen := make(map[any]struct{}, len(s.Enum))
	for _, v := range s.Enum {
		key, ok := enumKey(base, v)
		if !ok {
			return bad("enum value %v (%T) does not match base type %s", v, v, base)
		}
		if _, dup := seen[key]; dup {
			return bad("duplicate enum value %v", v)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// enumKey normalizes an enum literal so that 4 and 4.0 compare equal.
func enumKey(base string, v any) (any, bool) {
	switch base {
	case TypeString:
		s, ok := v.(string)
		return s, ok
	case TypeInteger, TypeNumber:
		f, ok := toFloat(v)
		if !ok {
			return nil, false
		}
		if base == TypeInteger && (f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64) {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func isPrimitiveType(t string) bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean:
		return true
	}
	return false
}
