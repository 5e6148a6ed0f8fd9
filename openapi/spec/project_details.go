package spec

import "github.com/reoring/fragskema/dsl"

// PersonalDashboardProjectDetailsFragment is the project detail shown on a
// user's personal dashboard.
var PersonalDashboardProjectDetailsFragment = dsl.Define("personalDashboardProjectDetailsSchema", dsl.Object().
	Description("Project details in personal dashboard").
	Field("owners", dsl.Ref("ownerSchema").
		Description(`The users and/or groups that have the "owner" role in this project.`)).Required().
	Field("roles", dsl.Array(dsl.Ref("role")).
		Min(1).
		Description("The list of roles that the user has in this project.")).Required().
	Strict(),
	OwnerFragment, RoleFragment)
