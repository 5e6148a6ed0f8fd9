package spec

import "github.com/reoring/fragskema/dsl"

// OwnerFragment lists the owners of a project. System-owned projects carry a
// single owner of type "system" without a name.
var OwnerFragment = dsl.Define("ownerSchema", dsl.Array(dsl.Object().
	Description("A project owner.").
	Field("ownerType", dsl.Enum("user", "group", "system").
		Example("user").
		Description("The kind of owner")).Required().
	Field("name", dsl.String().Example("User Name").Description("The name of the user or group")).
	Field("email", dsl.String().Nullable().Example("user@example.com").Description("The email of the user")).
	Field("imageUrl", dsl.String().Example("https://example.com/image.png").Description("The avatar url of the user or group")).
	Strict()).
	Description(`The users and/or groups that have the "owner" role in this project. If no such users or groups exist, the list will contain the "system" owner instead.`))
