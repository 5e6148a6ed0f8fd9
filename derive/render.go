package derive

import (
	"errors"
	"fmt"
	"go/format"
	"math"
	"reflect"
	"strconv"
	"strings"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/internal/graph"
)

// Options controls rendering.
type Options struct {
	// Package is the Go package name of the generated file (required).
	Package string
	// Generator is recorded in the "Code generated" header. Defaults to
	// "fragskema derive".
	Generator string
	// Names overrides the Go type name for specific fragment ids.
	Names map[string]string
}

// ErrNoPackage is returned when Options.Package is empty.
var ErrNoPackage = errors.New("derive: package name is required")

// Render derives one Go declaration per registered fragment, in registry
// order, and returns gofmt'ed source. Cyclic documents are rejected: a Go
// value type cannot contain itself.
func Render(doc *fragskema.Document, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, ErrNoPackage
	}
	if opts.Generator == "" {
		opts.Generator = "fragskema derive"
	}
	if err := acyclic(doc); err != nil {
		return nil, err
	}
	r := &renderer{
		doc:   doc,
		names: map[string]string{},
		used:  map[string]string{},
	}
	for _, f := range doc.Fragments() {
		name := opts.Names[f.ID]
		if name == "" {
			name = GoName(f.ID)
		}
		if err := r.claim(name, "fragment "+f.ID); err != nil {
			return nil, err
		}
		r.names[f.ID] = name
	}
	for _, f := range doc.Fragments() {
		if err := r.fragment(f); err != nil {
			return nil, fmt.Errorf("derive %s: %w", f.ID, err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by %s; DO NOT EDIT.\n\npackage %s\n\n", opts.Generator, opts.Package)
	if r.usesTime {
		b.WriteString("import \"time\"\n\n")
	}
	for _, d := range r.decls {
		b.WriteString(d)
		b.WriteString("\n")
	}
	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("derive: formatting generated source: %w", err)
	}
	return src, nil
}

func acyclic(doc *fragskema.Document) error {
	err := graph.DetectCycle(graph.Config[string]{
		Starts: doc.IDs(),
		Exists: func(id string) bool {
			_, ok := doc.Lookup(id)
			return ok
		},
		Next: func(id string) []string {
			f, _ := doc.Lookup(id)
			var out []string
			for _, r := range f.References() {
				out = append(out, r.ID)
			}
			return out
		},
	})
	var ce graph.CycleError[string]
	if errors.As(err, &ce) {
		return &fragskema.CycleDetectedError{Path: ce.Path}
	}
	return err
}

type renderer struct {
	doc      *fragskema.Document
	names    map[string]string // fragment id -> Go type name
	used     map[string]string // identifier -> what claimed it
	decls    []string
	usesTime bool
}

func (r *renderer) claim(ident, owner string) error {
	if prev, ok := r.used[ident]; ok {
		return fmt.Errorf("derive: identifier %s claimed by both %s and %s", ident, prev, owner)
	}
	r.used[ident] = owner
	return nil
}

func (r *renderer) fragment(f *fragskema.Fragment) error {
	name := r.names[f.ID]
	doc := append([]string{fmt.Sprintf("%s is derived from schema fragment %q.", name, f.ID)}, lines(f.Shape.Description)...)
	s := f.Shape
	s.Nullable = false
	switch s.Kind {
	case fragskema.KindObject:
		return r.structDecl(name, s, doc)
	case fragskema.KindEnum:
		return r.enumDecl(name, s, doc)
	case fragskema.KindReference:
		target, err := r.refName(s.Ref)
		if err != nil {
			return err
		}
		r.decls = append(r.decls, comment(doc, "")+fmt.Sprintf("type %s = %s\n", name, target))
		return nil
	default:
		idx := r.reserve()
		expr, err := r.typeExpr(name, name, s)
		if err != nil {
			return err
		}
		doc = append(doc, constraints(s)...)
		r.decls[idx] = comment(doc, "") + fmt.Sprintf("type %s %s\n", name, expr)
		return nil
	}
}

// reserve keeps a declaration slot so a parent precedes the types its body
// declares.
func (r *renderer) reserve() int {
	r.decls = append(r.decls, "")
	return len(r.decls) - 1
}

func (r *renderer) refName(id string) (string, error) {
	name, ok := r.names[id]
	if !ok {
		return "", &fragskema.UnresolvedReferenceError{Path: "/", Ref: id}
	}
	return name, nil
}

// typeExpr folds a shape into a type expression. owner names anonymous
// object and enum types declared on the way; subject says where the value
// sits and opens their doc comment.
func (r *renderer) typeExpr(owner, subject string, s fragskema.Shape) (string, error) {
	var expr string
	switch s.Kind {
	case fragskema.KindPrimitive:
		expr = r.primitive(s)
	case fragskema.KindReference:
		name, err := r.refName(s.Ref)
		if err != nil {
			return "", err
		}
		expr = name
	case fragskema.KindArray:
		if s.Items == nil {
			return "", &fragskema.MalformedShapeError{Path: "/", Reason: "array without items"}
		}
		item, err := r.typeExpr(owner+"Item", "the elements of "+subject, *s.Items)
		if err != nil {
			return "", err
		}
		return "[]" + item, nil
	case fragskema.KindObject:
		if err := r.claim(owner, "nested object"); err != nil {
			return "", err
		}
		inner := s
		inner.Nullable = false
		if err := r.structDecl(owner, inner, nestedDoc(owner, subject, s)); err != nil {
			return "", err
		}
		expr = owner
	case fragskema.KindEnum:
		if err := r.claim(owner, "nested enum"); err != nil {
			return "", err
		}
		if err := r.enumDecl(owner, s, nestedDoc(owner, subject, s)); err != nil {
			return "", err
		}
		expr = owner
	default:
		return "", &fragskema.MalformedShapeError{Path: "/", Reason: "unknown kind " + s.Kind.String()}
	}
	if s.Nullable {
		return "*" + expr, nil
	}
	return expr, nil
}

func (r *renderer) primitive(s fragskema.Shape) string {
	switch s.Type {
	case fragskema.TypeInteger:
		return "int64"
	case fragskema.TypeNumber:
		return "float64"
	case fragskema.TypeBoolean:
		return "bool"
	}
	if s.Format == "date-time" {
		r.usesTime = true
		return "time.Time"
	}
	return "string"
}

func (r *renderer) structDecl(name string, s fragskema.Shape, doc []string) error {
	idx := r.reserve()
	if s.Strict() {
		doc = append(doc, "Unknown keys are rejected (additionalProperties: false).")
	}
	var body strings.Builder
	fields := map[string]bool{}
	for _, p := range s.Properties {
		field := GoName(p.Name)
		if fields[field] {
			return fmt.Errorf("derive: properties of %s collide on field %s", name, field)
		}
		fields[field] = true
		expr, err := r.typeExpr(name+field, "field "+name+"."+field, p.Shape)
		if err != nil {
			return err
		}
		tag := p.Name
		if !s.IsRequired(p.Name) {
			tag += ",omitempty"
			if !strings.HasPrefix(expr, "*") && !strings.HasPrefix(expr, "[]") {
				expr = "*" + expr
			}
		}
		fdoc := append(lines(p.Shape.Description), constraints(p.Shape)...)
		body.WriteString(comment(fdoc, "\t"))
		fmt.Fprintf(&body, "\t%s %s `json:%q`\n", field, expr, tag)
	}
	r.decls[idx] = comment(doc, "") + fmt.Sprintf("type %s struct {\n%s}\n", name, body.String())
	return nil
}

func (r *renderer) enumDecl(name string, s fragskema.Shape, doc []string) error {
	base := "string"
	switch s.Type {
	case fragskema.TypeInteger:
		base = "int64"
	case fragskema.TypeNumber:
		base = "float64"
	}
	consts := make([]string, 0, len(s.Enum))
	var decl strings.Builder
	decl.WriteString(comment(doc, ""))
	fmt.Fprintf(&decl, "type %s %s\n\nconst (\n", name, base)
	for _, v := range s.Enum {
		cname, lit, err := enumConst(name, base, v)
		if err != nil {
			return err
		}
		if err := r.claim(cname, "enum value of "+name); err != nil {
			return err
		}
		consts = append(consts, cname)
		fmt.Fprintf(&decl, "\t%s %s = %s\n", cname, name, lit)
	}
	decl.WriteString(")\n\n")
	values := name + "Values"
	if err := r.claim(values, "values of "+name); err != nil {
		return err
	}
	fmt.Fprintf(&decl, "// %s lists every %s value.\nfunc %s() []%s {\n\treturn []%s{%s}\n}\n\n", values, name, values, name, name, strings.Join(consts, ", "))
	fmt.Fprintf(&decl, "// Valid reports whether v is a declared %s value.\nfunc (v %s) Valid() bool {\n\tswitch v {\n\tcase %s:\n\t\treturn true\n\t}\n\treturn false\n}\n", name, name, strings.Join(consts, ", "))
	r.decls = append(r.decls, decl.String())
	return nil
}

func enumConst(typeName, base string, v any) (string, string, error) {
	if base == "string" {
		s, ok := v.(string)
		if !ok {
			return "", "", fmt.Errorf("derive: enum %s: value %v is not a string", typeName, v)
		}
		return typeName + GoName(s), strconv.Quote(s), nil
	}
	lit, ok := numberLiteral(base, v)
	if !ok {
		return "", "", fmt.Errorf("derive: enum %s: value %v (%T) is not representable as %s", typeName, v, v, base)
	}
	return typeName + numberSuffix(lit), lit, nil
}

// numberLiteral prints a numeric enum value as a constant of base. Integer
// bases accept integral values within int64 only.
func numberLiteral(base string, v any) (string, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return strconv.FormatInt(rv.Int(), 10), true
	case rv.CanUint():
		u := rv.Uint()
		if base == "int64" && u > math.MaxInt64 {
			return "", false
		}
		return strconv.FormatUint(u, 10), true
	case rv.CanFloat():
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		if base == "int64" {
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return "", false
			}
			return strconv.FormatInt(int64(f), 10), true
		}
		return strconv.FormatFloat(f, 'g', -1, rv.Type().Bits()), true
	}
	return "", false
}

func nestedDoc(name, subject string, s fragskema.Shape) []string {
	return append([]string{fmt.Sprintf("%s is the type of %s.", name, subject)}, lines(s.Description)...)
}

// constraints surfaces validation keywords the Go type cannot express.
func constraints(s fragskema.Shape) []string {
	var out []string
	if s.MinItems != nil {
		out = append(out, fmt.Sprintf("minItems: %d", *s.MinItems))
	}
	if s.MaxItems != nil {
		out = append(out, fmt.Sprintf("maxItems: %d", *s.MaxItems))
	}
	if s.Minimum != nil {
		out = append(out, "minimum: "+strconv.FormatFloat(*s.Minimum, 'g', -1, 64))
	}
	if s.Maximum != nil {
		out = append(out, "maximum: "+strconv.FormatFloat(*s.Maximum, 'g', -1, 64))
	}
	return out
}

func lines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func comment(ls []string, indent string) string {
	var b strings.Builder
	for _, l := range ls {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			b.WriteString(indent + "//\n")
			continue
		}
		b.WriteString(indent + "// " + l + "\n")
	}
	return b.String()
}
