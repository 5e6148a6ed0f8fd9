package load_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/load"
	"github.com/reoring/fragskema/openapi/spec"
)

func mustFile(t *testing.T, name string) []*fragskema.Fragment {
	t.Helper()
	frags, err := load.File(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return frags
}

func TestFile_YAMLMatchesCatalogue(t *testing.T) {
	frags := mustFile(t, "personal-dashboard-project-details.yaml")
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	got, err := fragskema.Compose(frags[0])
	if err != nil {
		t.Fatalf("compose loaded: %v", err)
	}
	want, err := fragskema.Compose(spec.PersonalDashboardProjectDetailsFragment)
	if err != nil {
		t.Fatalf("compose literal: %v", err)
	}
	if !got.Equal(want) {
		a, _ := got.JSON(true)
		b, _ := want.JSON(true)
		t.Fatalf("loaded document differs from catalogue\nloaded:\n%s\nliteral:\n%s", a, b)
	}
	if ids := strings.Join(got.IDs(), ","); ids != "personalDashboardProjectDetailsSchema,ownerSchema,role" {
		t.Fatalf("unexpected registry order %s", ids)
	}
}

func TestFile_JSONMatchesCatalogue(t *testing.T) {
	frags := mustFile(t, "project-status.json")
	got, err := fragskema.Compose(frags[0])
	if err != nil {
		t.Fatalf("compose loaded: %v", err)
	}
	want, err := fragskema.Compose(spec.ProjectStatusFragment)
	if err != nil {
		t.Fatalf("compose literal: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("loaded document differs from catalogue")
	}
	// properties keep their authored order
	res, _ := got.Root().Shape.Property("resources")
	if res.Properties[0].Name != "connectedEnvironments" || res.Properties[3].Name != "segments" {
		t.Fatalf("unexpected property order %+v", res.Properties)
	}
}

func TestPaths_Files(t *testing.T) {
	frags, err := load.Paths(
		filepath.Join("testdata", "personal-dashboard-project-details.yaml"),
		filepath.Join("testdata", "project-status.json"),
	)
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	doc, err := fragskema.ComposeAll(frags)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	want, err := spec.Document()
	if err != nil {
		t.Fatalf("catalogue: %v", err)
	}
	if !doc.Equal(want) {
		t.Fatalf("loaded bundle differs from catalogue")
	}
}

func TestPaths_DirectoryInNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"v10.yaml", "v2.yaml", filepath.Join("sub", "v1.json"), "notes.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		id := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		body := "$id: " + id + "\ntype: string\n"
		if filepath.Ext(name) == ".json" {
			body = `{"$id": "` + id + `", "type": "string"}`
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	frags, err := load.Paths(dir)
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	var ids []string
	for _, f := range frags {
		ids = append(ids, f.ID)
	}
	if got := strings.Join(ids, ","); got != "v1,v2,v10" {
		t.Fatalf("unexpected file order %s", got)
	}
}

func TestPaths_AggregatesErrors(t *testing.T) {
	_, err := load.Paths(filepath.Join("testdata", "broken"))
	if err == nil {
		t.Fatalf("expected error")
	}
	errs := fragskema.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 aggregated errors, got %d: %v", len(errs), err)
	}
	var de *load.DuplicateKeyError
	if !errors.As(err, &de) {
		t.Fatalf("expected a DuplicateKeyError in %v", err)
	}
	if !errors.Is(err, fragskema.ErrMalformedShape) {
		t.Fatalf("expected malformed $ref in %v", err)
	}
}

func TestPaths_MissingPath(t *testing.T) {
	if _, err := load.Paths(filepath.Join("testdata", "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestParse_MultiDocYAML(t *testing.T) {
	src := `$id: a
type: object
properties:
  b:
    $ref: '#/components/schemas/b'
---
$id: b
type: string
`
	frags, err := load.Parse([]byte(src), load.FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	// a does not bundle b, so it only closes when both are composed
	if _, err := fragskema.Compose(frags[0]); !errors.Is(err, fragskema.ErrUnresolvedReference) {
		t.Fatalf("expected unresolved reference, got %v", err)
	}
	doc, err := fragskema.ComposeAll(frags)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 fragments, got %d", doc.Len())
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := load.Parse([]byte(`{"$id": "a", "type": }`), load.FormatJSON)
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("expected JSON syntax error, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"no id", "type: string\n", "without $id"},
		{"no type", "$id: a\ndescription: x\n", "schema without type"},
		{"unsupported type", "$id: a\ntype: tuple\n", "unsupported type"},
		{"array without items", "$id: a\ntype: array\n", "array without items"},
		{"bad minItems", "$id: a\ntype: array\nitems: {type: string}\nminItems: 1.5\n", "minItems must be an integer"},
		{"schema additionalProperties", "$id: a\ntype: object\nadditionalProperties: {type: string}\n", "only boolean additionalProperties"},
		{"remote ref", "$id: a\ntype: object\nproperties:\n  x:\n    $ref: other.json#/x\n", "unsupported $ref"},
		{"id mismatch", "$id: a\ntype: object\ncomponents:\n  schemas:\n    b:\n      $id: c\n      type: string\n", "registered under"},
		{"scalar root", "just a string\n", "document root must be a mapping"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load.Parse([]byte(tc.src), load.FormatYAML)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !errors.Is(err, fragskema.ErrMalformedShape) {
				t.Fatalf("expected malformed shape, got %T %v", err, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestParse_ObjectAggregatesPropertyErrors(t *testing.T) {
	src := "$id: a\ntype: object\nproperties:\n  x: {type: tuple}\n  y: {type: array}\n"
	_, err := load.Parse([]byte(src), load.FormatYAML)
	if got := len(fragskema.Errors(err)); got != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", got, err)
	}
}

func TestParse_EscapesPropertyNamesInPaths(t *testing.T) {
	src := "$id: a\ntype: object\nproperties:\n  a/b:\n    properties:\n      c~d: {type: tuple}\n"
	_, err := load.Parse([]byte(src), load.FormatYAML)
	var me *fragskema.MalformedShapeError
	if !errors.As(err, &me) {
		t.Fatalf("expected malformed shape, got %v", err)
	}
	if me.Path != "/properties/a~1b/properties/c~0d" {
		t.Fatalf("path = %q", me.Path)
	}
}

func TestFind(t *testing.T) {
	frags := mustFile(t, "personal-dashboard-project-details.yaml")
	f, ok := load.Find(frags, "role")
	if !ok || f.ID != "role" {
		t.Fatalf("role not found")
	}
	if _, ok := load.Find(frags, "missing"); ok {
		t.Fatalf("unexpected hit")
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]load.Format{"a.yaml": load.FormatYAML, "a.YML": load.FormatYAML, "a.json": load.FormatJSON} {
		got, ok := load.FormatOf(path)
		if !ok || got != want {
			t.Fatalf("FormatOf(%s) = %v,%v", path, got, ok)
		}
	}
	if _, ok := load.FormatOf("a.txt"); ok {
		t.Fatalf("txt should be unsupported")
	}
}
