package load

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	fragskema "github.com/reoring/fragskema"
)

// fragmentFrom converts a decoded fragment document. key is the
// components.schemas entry name it was found under ("" at top level).
func fragmentFrom(o *object, key string) (*fragskema.Fragment, error) {
	id := key
	if raw, ok := o.get("$id"); ok {
		s, _ := raw.(string)
		parsed, ok := fragskema.IDFromRef(s)
		if !ok {
			return nil, &fragskema.MalformedShapeError{ID: key, Path: "/$id", Reason: fmt.Sprintf("unsupported $id %v", raw)}
		}
		if key != "" && parsed != key {
			return nil, &fragskema.MalformedShapeError{ID: key, Path: "/$id", Reason: fmt.Sprintf("$id %q registered under components.schemas/%s", parsed, key)}
		}
		id = parsed
	}
	if id == "" {
		return nil, &fragskema.MalformedShapeError{Path: "/", Reason: fmt.Sprintf("fragment without $id (line %d)", o.line)}
	}

	sh, err := shapeFrom(id, "", o)
	if err != nil {
		return nil, err
	}
	f := &fragskema.Fragment{ID: id, Shape: sh}

	comps, ok := o.get("components")
	if !ok || comps == nil {
		return f, nil
	}
	co, ok := comps.(*object)
	if !ok {
		return nil, &fragskema.MalformedShapeError{ID: id, Path: "/components", Reason: "components must be a mapping"}
	}
	raw, ok := co.get("schemas")
	if !ok || raw == nil {
		return f, nil
	}
	schemas, ok := raw.(*object)
	if !ok {
		return nil, &fragskema.MalformedShapeError{ID: id, Path: "/components/schemas", Reason: "schemas must be a mapping"}
	}
	var errs error
	for _, name := range schemas.keys {
		child, ok := schemas.vals[name].(*object)
		if !ok {
			errs = multierr.Append(errs, &fragskema.MalformedShapeError{ID: id, Path: "/components/schemas/" + fragskema.EscapePointer(name), Reason: "schema must be a mapping"})
			continue
		}
		nf, err := fragmentFrom(child, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		f.Nested = append(f.Nested, nf)
	}
	if errs != nil {
		return nil, errs
	}
	return f, nil
}

func shapeFrom(id, path string, v any) (fragskema.Shape, error) {
	bad := func(format string, a ...any) error {
		p := path
		if p == "" {
			p = "/"
		}
		return &fragskema.MalformedShapeError{ID: id, Path: p, Reason: fmt.Sprintf(format, a...)}
	}
	o, ok := v.(*object)
	if !ok {
		return fragskema.Shape{}, bad("schema must be a mapping, got %T", v)
	}

	var s fragskema.Shape
	if d, ok := o.get("description"); ok {
		if s.Description, ok = d.(string); !ok {
			return s, bad("description must be a string")
		}
	}
	if ex, ok := o.get("example"); ok {
		s.Example = plainValue(ex)
	}
	if n, ok := o.get("nullable"); ok {
		if s.Nullable, ok = n.(bool); !ok {
			return s, bad("nullable must be a boolean")
		}
	}
	typ, _ := o.get("type")
	t, _ := typ.(string)

	if raw, ok := o.get("$ref"); ok {
		ref, _ := raw.(string)
		target, ok := fragskema.IDFromRef(ref)
		if !ok {
			return s, bad("unsupported $ref %v (only %s<id>)", raw, fragskema.RefPrefix)
		}
		s.Kind = fragskema.KindReference
		s.Ref = target
		return s, nil
	}

	if raw, ok := o.get("enum"); ok {
		vals, ok := raw.([]any)
		if !ok {
			return s, bad("enum must be a sequence")
		}
		s.Kind = fragskema.KindEnum
		s.Type = t
		if s.Type == "" {
			s.Type = fragskema.TypeString
		}
		s.Enum = vals
		return s, nil
	}

	if t == "" {
		if _, hasProps := o.get("properties"); hasProps {
			t = "object"
		}
	}
	switch t {
	case "object":
		return objectFrom(id, path, o, s)
	case "array":
		s.Kind = fragskema.KindArray
		items, ok := o.get("items")
		if !ok {
			return s, bad("array without items")
		}
		it, err := shapeFrom(id, path+"/items", items)
		if err != nil {
			return s, err
		}
		s.Items = &it
		var err2 error
		if s.MinItems, err2 = intField(o, "minItems"); err2 != nil {
			return s, bad("%v", err2)
		}
		if s.MaxItems, err2 = intField(o, "maxItems"); err2 != nil {
			return s, bad("%v", err2)
		}
		return s, nil
	case fragskema.TypeString, fragskema.TypeInteger, fragskema.TypeNumber, fragskema.TypeBoolean:
		s.Kind = fragskema.KindPrimitive
		s.Type = t
		if f, ok := o.get("format"); ok {
			s.Format, _ = f.(string)
		}
		var err error
		if s.Minimum, err = floatField(o, "minimum"); err != nil {
			return s, bad("%v", err)
		}
		if s.Maximum, err = floatField(o, "maximum"); err != nil {
			return s, bad("%v", err)
		}
		return s, nil
	case "":
		return s, bad("schema without type")
	default:
		return s, bad("unsupported type %q", t)
	}
}

func objectFrom(id, path string, o *object, s fragskema.Shape) (fragskema.Shape, error) {
	s.Kind = fragskema.KindObject
	var errs error
	if raw, ok := o.get("properties"); ok && raw != nil {
		props, ok := raw.(*object)
		if !ok {
			return s, &fragskema.MalformedShapeError{ID: id, Path: path + "/properties", Reason: "properties must be a mapping"}
		}
		for _, name := range props.keys {
			ps, err := shapeFrom(id, path+"/properties/"+fragskema.EscapePointer(name), props.vals[name])
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			s.Properties = append(s.Properties, fragskema.Property{Name: name, Shape: ps})
		}
	}
	if raw, ok := o.get("required"); ok {
		list, ok := raw.([]any)
		if !ok {
			errs = multierr.Append(errs, &fragskema.MalformedShapeError{ID: id, Path: path + "/required", Reason: "required must be a sequence"})
		}
		for _, r := range list {
			name, ok := r.(string)
			if !ok {
				errs = multierr.Append(errs, &fragskema.MalformedShapeError{ID: id, Path: path + "/required", Reason: fmt.Sprintf("required entry %v is not a string", r)})
				continue
			}
			s.Required = append(s.Required, name)
		}
	}
	if raw, ok := o.get("additionalProperties"); ok {
		ap, ok := raw.(bool)
		if !ok {
			errs = multierr.Append(errs, &fragskema.MalformedShapeError{ID: id, Path: path + "/additionalProperties", Reason: "only boolean additionalProperties is supported"})
		} else {
			s.AdditionalProperties = &ap
		}
	}
	return s, errs
}

func intField(o *object, key string) (*int, error) {
	raw, ok := o.get(key)
	if !ok || raw == nil {
		return nil, nil
	}
	f, ok := number(raw)
	if !ok || f != math.Trunc(f) {
		return nil, fmt.Errorf("%s must be an integer, got %v", key, raw)
	}
	n := int(f)
	return &n, nil
}

func floatField(o *object, key string) (*float64, error) {
	raw, ok := o.get(key)
	if !ok || raw == nil {
		return nil, nil
	}
	f, ok := number(raw)
	if !ok {
		return nil, fmt.Errorf("%s must be a number, got %v", key, raw)
	}
	return &f, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
