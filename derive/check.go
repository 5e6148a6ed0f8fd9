package derive

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/multierr"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/i18n"
)

// CodeTypeDrift identifies DriftError.
const CodeTypeDrift = "type_drift"

// ErrTypeDrift is matched by errors.Is against DriftError.
var ErrTypeDrift = errors.New("derive: type drift")

// DriftError reports a place where a Go type no longer matches the fragment
// it is meant to mirror.
type DriftError struct {
	ID     string
	Path   string
	Type   string
	Reason string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("derive: %s: %s (fragment %s at %s): %s", i18n.T(CodeTypeDrift, nil), e.Type, e.ID, e.Path, e.Reason)
}
func (e *DriftError) Code() string        { return CodeTypeDrift }
func (e *DriftError) Is(target error) bool { return target == ErrTypeDrift }

// CheckType is Check for a type parameter.
func CheckType[T any](doc *fragskema.Document, id string) error {
	return Check(reflect.TypeFor[T](), doc, id)
}

// Check verifies that t structurally conforms to the fragment registered
// under id: every property has a json field, requiredness matches omitempty,
// kinds line up, strict objects have no extra fields, and enum types accept
// every declared value through their Valid method. All mismatches are
// returned aggregated.
func Check(t reflect.Type, doc *fragskema.Document, id string) error {
	f, ok := doc.Lookup(id)
	if !ok {
		return &fragskema.UnresolvedReferenceError{Path: "/", Ref: id}
	}
	c := &checker{doc: doc, id: id, active: map[activeKey]struct{}{}}
	c.check("/", t, f.Shape)
	return c.err
}

type activeKey struct {
	t   reflect.Type
	ref string
}

type checker struct {
	doc    *fragskema.Document
	id     string
	active map[activeKey]struct{}
	err    error
}

var (
	timeType      = reflect.TypeFor[time.Time]()
	validatorType = reflect.TypeFor[interface{ Valid() bool }]()
)

func (c *checker) fail(path string, t reflect.Type, format string, a ...any) {
	c.err = multierr.Append(c.err, &DriftError{ID: c.id, Path: path, Type: t.String(), Reason: fmt.Sprintf(format, a...)})
}

func (c *checker) check(path string, t reflect.Type, s fragskema.Shape) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch s.Kind {
	case fragskema.KindReference:
		f, ok := c.doc.Lookup(s.Ref)
		if !ok {
			c.fail(path, t, "reference %q does not resolve", s.Ref)
			return
		}
		key := activeKey{t: t, ref: s.Ref}
		if _, busy := c.active[key]; busy {
			return
		}
		c.active[key] = struct{}{}
		defer delete(c.active, key)
		c.check(path, t, f.Shape)
	case fragskema.KindPrimitive:
		if !primitiveMatches(t, s) {
			c.fail(path, t, "want %s", describe(s))
		}
	case fragskema.KindEnum:
		if !baseMatches(t, s.Type) {
			c.fail(path, t, "want enum over %s", s.Type)
			return
		}
		c.checkEnumValues(path, t, s)
	case fragskema.KindArray:
		if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
			c.fail(path, t, "want slice")
			return
		}
		if s.Items != nil {
			c.check(join(path, "items"), t.Elem(), *s.Items)
		}
	case fragskema.KindObject:
		c.checkObject(path, t, s)
	}
}

func (c *checker) checkEnumValues(path string, t reflect.Type, s fragskema.Shape) {
	if !t.Implements(validatorType) {
		return
	}
	for _, v := range s.Enum {
		rv := reflect.ValueOf(v)
		if !rv.CanConvert(t) {
			c.fail(path, t, "enum value %v cannot be represented", v)
			continue
		}
		if !rv.Convert(t).Interface().(interface{ Valid() bool }).Valid() {
			c.fail(path, t, "enum value %v is not accepted by Valid", v)
		}
	}
}

func (c *checker) checkObject(path string, t reflect.Type, s fragskema.Shape) {
	if t.Kind() == reflect.Map && t.Key().Kind() == reflect.String && len(s.Properties) == 0 {
		return
	}
	if t.Kind() != reflect.Struct {
		c.fail(path, t, "want struct")
		return
	}
	fields := jsonFields(t)
	for _, p := range s.Properties {
		at := join(path, "properties", fragskema.EscapePointer(p.Name))
		fi, ok := fields[p.Name]
		if !ok {
			c.fail(at, t, "no field for property %q", p.Name)
			continue
		}
		required := s.IsRequired(p.Name)
		switch {
		case required && fi.omitempty:
			c.fail(at, t, "required property %q is tagged omitempty", p.Name)
		case !required && !fi.omitempty:
			c.fail(at, t, "optional property %q lacks omitempty", p.Name)
		}
		c.check(at, fi.typ, p.Shape)
	}
	if s.Strict() {
		for name := range fields {
			if _, declared := s.Property(name); !declared {
				c.fail(path, t, "field %q is not declared by the strict object", name)
			}
		}
	}
}

type fieldInfo struct {
	typ       reflect.Type
	omitempty bool
}

// jsonFields indexes exported fields by their JSON name, flattening untagged
// embedded structs the way encoding/json does.
func jsonFields(t reflect.Type) map[string]fieldInfo {
	out := map[string]fieldInfo{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				for k, v := range jsonFields(et) {
					if _, shadowed := out[k]; !shadowed {
						out[k] = v
					}
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		omit := false
		for _, o := range strings.Split(opts, ",") {
			if o == "omitempty" || o == "omitzero" {
				omit = true
			}
		}
		out[name] = fieldInfo{typ: f.Type, omitempty: omit}
	}
	return out
}

func primitiveMatches(t reflect.Type, s fragskema.Shape) bool {
	if t == timeType {
		return s.Type == fragskema.TypeString && (s.Format == "date-time" || s.Format == "date")
	}
	return baseMatches(t, s.Type)
}

func baseMatches(t reflect.Type, typ string) bool {
	switch typ {
	case fragskema.TypeString, "":
		return t.Kind() == reflect.String
	case fragskema.TypeBoolean:
		return t.Kind() == reflect.Bool
	case fragskema.TypeInteger:
		return isInt(t.Kind())
	case fragskema.TypeNumber:
		return isInt(t.Kind()) || t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	}
	return false
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func describe(s fragskema.Shape) string {
	if s.Format != "" {
		return s.Type + " (" + s.Format + ")"
	}
	return s.Type
}

func join(path string, segs ...string) string {
	if path == "/" {
		path = ""
	}
	return path + "/" + strings.Join(segs, "/")
}
