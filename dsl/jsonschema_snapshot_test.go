package dsl_test

import (
	"reflect"
	"testing"

	j "github.com/goccy/go-json"

	g "github.com/reoring/fragskema/dsl"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(v any) any {
	b, err := j.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = j.Unmarshal(b, &out)
	return out
}

func snapshot(t *testing.T, b g.Builder, want map[string]any) {
	t.Helper()
	s := b.Shape()
	got := normalize(s.JSONSchema())
	if w := normalize(want); !reflect.DeepEqual(got, w) {
		t.Fatalf("schema mismatch\n got=%v\nwant=%v", got, w)
	}
}

func TestJSONSchema_Primitives(t *testing.T) {
	snapshot(t, g.String(), map[string]any{"type": "string"})
	snapshot(t, g.Boolean(), map[string]any{"type": "boolean"})
	snapshot(t, g.Number().Min(0.5).Max(9), map[string]any{"type": "number", "minimum": 0.5, "maximum": 9})
	snapshot(t, g.Integer().Example(4).Description("The id of the role"),
		map[string]any{"type": "integer", "example": 4, "description": "The id of the role"})
	snapshot(t, g.DateTime().Nullable(), map[string]any{"type": "string", "format": "date-time", "nullable": true})
}

func TestJSONSchema_Array(t *testing.T) {
	snapshot(t, g.Array(g.Ref("role")).Min(1).Max(2).Description("roles"), map[string]any{
		"type":        "array",
		"description": "roles",
		"minItems":    1,
		"maxItems":    2,
		"items":       map[string]any{"$ref": "#/components/schemas/role"},
	})
}

func TestJSONSchema_Enum(t *testing.T) {
	snapshot(t, g.Enum("user", "group", "system").Example("user"), map[string]any{
		"type":    "string",
		"enum":    []any{"user", "group", "system"},
		"example": "user",
	})
	snapshot(t, g.IntEnum(1, 2), map[string]any{"type": "integer", "enum": []any{1, 2}})
}

func TestJSONSchema_Object(t *testing.T) {
	obj := g.Object().
		Description("An Unleash role.").
		Field("type", g.Enum("custom", "root")).Required().
		Field("name", g.String()).Required().
		Field("email", g.String().Nullable()).
		Strict()
	snapshot(t, obj, map[string]any{
		"type":        "object",
		"description": "An Unleash role.",
		"properties": map[string]any{
			"type":  map[string]any{"type": "string", "enum": []any{"custom", "root"}},
			"name":  map[string]any{"type": "string"},
			"email": map[string]any{"type": "string", "nullable": true},
		},
		"required":             []any{"name", "type"},
		"additionalProperties": false,
	})
	snapshot(t, g.Object().Field("x", g.Boolean()).Open(), map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"x": map[string]any{"type": "boolean"}},
		"additionalProperties": true,
	})
}

func TestJSONSchema_Reference(t *testing.T) {
	snapshot(t, g.Ref("ownerSchema").Description("owners"), map[string]any{
		"$ref":        "#/components/schemas/ownerSchema",
		"description": "owners",
	})
}
