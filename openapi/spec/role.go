package spec

import "github.com/reoring/fragskema/dsl"

// RoleFragment describes a role a user holds in a project.
var RoleFragment = dsl.Define("role", dsl.Object().
	Description("An Unleash role.").
	Field("name", dsl.String().Example("Owner").Description("The name of the role")).Required().
	Field("id", dsl.Integer().Example(4).Description("The id of the role")).Required().
	Field("type", dsl.Enum("custom", "project", "root", "custom-root").
		Example("project").
		Description("The type of the role")).Required().
	Strict())
