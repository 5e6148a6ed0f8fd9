package spec_test

import (
	"bytes"
	"os"
	"reflect"
	"testing"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/derive"
	"github.com/reoring/fragskema/openapi/spec"
)

func catalogue(t *testing.T) *fragskema.Document {
	t.Helper()
	doc, err := spec.Document()
	if err != nil {
		t.Fatalf("catalogue does not compose: %v", err)
	}
	return doc
}

func TestGeneratedTypesMatchFragments(t *testing.T) {
	doc := catalogue(t)
	cases := map[string]reflect.Type{
		"personalDashboardProjectDetailsSchema": reflect.TypeFor[spec.PersonalDashboardProjectDetailsSchema](),
		"ownerSchema":                           reflect.TypeFor[spec.OwnerSchema](),
		"role":                                  reflect.TypeFor[spec.Role](),
		"projectStatusSchema":                   reflect.TypeFor[spec.ProjectStatusSchema](),
		"projectActivitySchema":                 reflect.TypeFor[spec.ProjectActivitySchema](),
	}
	if len(cases) != doc.Len() {
		t.Fatalf("catalogue has %d fragments, test covers %d", doc.Len(), len(cases))
	}
	for id, typ := range cases {
		t.Run(id, func(t *testing.T) {
			if err := derive.Check(typ, doc, id); err != nil {
				t.Fatalf("types_gen.go is stale, run go generate: %v", err)
			}
		})
	}
}

func TestGeneratedFileIsCurrent(t *testing.T) {
	want, err := derive.Render(catalogue(t), derive.Options{Package: "spec"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := os.ReadFile("types_gen.go")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("types_gen.go is stale, run go generate; renderer produces:\n%s", want)
	}
}

func TestRolesNeedAtLeastOne(t *testing.T) {
	roles, ok := spec.PersonalDashboardProjectDetailsFragment.Shape.Property("roles")
	if !ok || roles.MinItems == nil || *roles.MinItems != 1 {
		t.Fatalf("roles must document minItems 1")
	}
}

func TestEnumValues(t *testing.T) {
	for _, v := range spec.RoleTypeValues() {
		if !v.Valid() {
			t.Fatalf("%q should be valid", v)
		}
	}
	if spec.RoleType("admin").Valid() {
		t.Fatalf("undeclared role type accepted")
	}
	if len(spec.OwnerSchemaItemOwnerTypeValues()) != 3 {
		t.Fatalf("owner types = %v", spec.OwnerSchemaItemOwnerTypeValues())
	}
}
