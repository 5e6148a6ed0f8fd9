package fragskema_test

import (
	"bytes"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/dsl"
	"github.com/reoring/fragskema/openapi/spec"
)

type wireDoc struct {
	ID         string         `json:"$id" yaml:"$id"`
	Type       string         `json:"type" yaml:"type"`
	Required   []string       `json:"required" yaml:"required"`
	Properties map[string]any `json:"properties" yaml:"properties"`
	Components struct {
		Schemas map[string]map[string]any `json:"schemas" yaml:"schemas"`
	} `json:"components" yaml:"components"`
}

func TestDocument_JSON(t *testing.T) {
	doc := fragskema.MustCompose(spec.PersonalDashboardProjectDetailsFragment)
	data, err := doc.JSON(false)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var w wireDoc
	if err := j.Unmarshal(data, &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.ID != "#/components/schemas/personalDashboardProjectDetailsSchema" || w.Type != "object" {
		t.Fatalf("unexpected root %+v", w)
	}
	if strings.Join(w.Required, ",") != "owners,roles" {
		t.Fatalf("required = %v", w.Required)
	}
	if _, ok := w.Components.Schemas[doc.RootID]; ok {
		t.Fatalf("unreferenced root must not be repeated under components")
	}
	role := w.Components.Schemas["role"]
	if role == nil || role["additionalProperties"] != false {
		t.Fatalf("role missing or not strict: %v", role)
	}
	roles := w.Properties["roles"].(map[string]any)
	if roles["minItems"] != float64(1) {
		t.Fatalf("roles.minItems = %v", roles["minItems"])
	}
	if items := roles["items"].(map[string]any); items["$ref"] != "#/components/schemas/role" {
		t.Fatalf("roles.items = %v", items)
	}
}

func TestDocument_MarshalJSONMatchesCompact(t *testing.T) {
	doc := fragskema.MustCompose(spec.ProjectStatusFragment)
	a, err := j.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := doc.JSON(false)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("MarshalJSON and JSON(false) differ")
	}
	pretty, err := doc.JSON(true)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"components\"") {
		t.Fatalf("pretty output is not indented:\n%s", pretty)
	}
}

func TestDocument_PrettyJSONWithNestedComponents(t *testing.T) {
	doc := fragskema.MustCompose(spec.ProjectStatusFragment)
	pretty, err := doc.JSON(true)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	// projectActivitySchema sits under components with items.properties
	for _, want := range []string{
		"\n    \"schemas\": {",
		"\n      \"projectActivitySchema\": {",
		"\n          \"properties\": {",
	} {
		if !strings.Contains(string(pretty), want) {
			t.Fatalf("pretty output lacks %q:\n%s", want, pretty)
		}
	}
	var compact bytes.Buffer
	if err := j.Compact(&compact, pretty); err != nil {
		t.Fatalf("compact: %v", err)
	}
	plain, err := doc.JSON(false)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if compact.String() != string(plain) {
		t.Fatalf("pretty and compact output carry different documents")
	}
}

func TestDocument_YAML(t *testing.T) {
	doc := fragskema.MustCompose(spec.ProjectStatusFragment)
	data, err := doc.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var w wireDoc
	if err := yaml.Unmarshal(data, &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.ID != "#/components/schemas/projectStatusSchema" {
		t.Fatalf("$id = %q", w.ID)
	}
	act := w.Components.Schemas["projectActivitySchema"]
	if act == nil || act["type"] != "array" {
		t.Fatalf("projectActivitySchema = %v", act)
	}
}

func TestDocument_SelfReferencingRootIsListed(t *testing.T) {
	doc, err := fragskema.Compose(tree(), fragskema.WithCycles(fragskema.CycleAllow))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	s := doc.JSONSchema()
	if s.Components == nil || s.Components.Schemas["tree"] == nil {
		t.Fatalf("self-referencing root must be addressable under components")
	}
	if s.Properties["children"].Items.Ref != "#/components/schemas/tree" {
		t.Fatalf("children.items = %+v", s.Properties["children"].Items)
	}
}

func TestDocument_BundleHasNoRoot(t *testing.T) {
	doc, err := spec.Document()
	if err != nil {
		t.Fatalf("catalogue: %v", err)
	}
	if doc.Root() != nil {
		t.Fatalf("bundle should have no root")
	}
	s := doc.JSONSchema()
	if s.ID != "" || len(s.Components.Schemas) != doc.Len() {
		t.Fatalf("bundle should list every fragment under components")
	}
}

func TestDocument_IDsIsACopy(t *testing.T) {
	doc := fragskema.MustCompose(spec.PersonalDashboardProjectDetailsFragment)
	ids := doc.IDs()
	ids[0] = "mutated"
	if doc.IDs()[0] != "personalDashboardProjectDetailsSchema" {
		t.Fatalf("IDs exposed internal state")
	}
}

func TestDocument_Equal(t *testing.T) {
	a := fragskema.MustCompose(spec.RoleFragment)
	b := fragskema.MustCompose(dsl.Define("role", dsl.Raw(spec.RoleFragment.Shape)))
	if !a.Equal(b) {
		t.Fatalf("structurally identical documents differ")
	}
	other := fragskema.MustCompose(dsl.Define("role", dsl.Object().Field("name", dsl.String())))
	if a.Equal(other) {
		t.Fatalf("different shapes compare equal")
	}
	var nilDoc *fragskema.Document
	if a.Equal(nilDoc) || !nilDoc.Equal(nil) {
		t.Fatalf("nil handling")
	}
}

func TestDocument_Resolve(t *testing.T) {
	doc := fragskema.MustCompose(spec.PersonalDashboardProjectDetailsFragment)
	owners, _ := doc.Root().Shape.Property("owners")
	f, ok := doc.Resolve(owners)
	if !ok || f != spec.OwnerFragment {
		t.Fatalf("owners does not resolve to ownerSchema")
	}
	if _, ok := doc.Resolve(dsl.String().Shape()); ok {
		t.Fatalf("non-reference shapes do not resolve")
	}
	if _, ok := doc.Lookup("projectStatusSchema"); ok {
		t.Fatalf("unrelated fragment must not be registered")
	}
}
