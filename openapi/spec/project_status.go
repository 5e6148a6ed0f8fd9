package spec

import "github.com/reoring/fragskema/dsl"

// ProjectActivityFragment counts project activity per day.
var ProjectActivityFragment = dsl.Define("projectActivitySchema", dsl.Array(dsl.Object().
	Field("date", dsl.String().Example("2022-12-14").Description("Activity date")).Required().
	Field("count", dsl.Integer().Example(2).Description("Activity count")).Required().
	Strict()).
	Description("An array of project activity information. Each item contains a date and the total number of activities for that date."))

func counter(desc string) dsl.PrimitiveBuilder {
	return dsl.Integer().Min(0).Description(desc)
}

// ProjectStatusFragment is the overall status of a project.
var ProjectStatusFragment = dsl.Define("projectStatusSchema", dsl.Object().
	Description("Schema representing the overall status of a project, including an array of activity records. Each record in the activity array contains a date and a count, providing a snapshot of the project’s activity level over time.").
	Field("activityCountByDate", dsl.Embed(ProjectActivityFragment).
		Description("Array of activity records with date and count, representing the project’s daily activity statistics.")).Required().
	Field("averageHealth", counter("The average health score over the last 4 weeks, indicating whether features are stale or active.")).Required().
	Field("resources", dsl.Object().
		Description("Key resources within the project").
		Field("connectedEnvironments", counter("The number of environments that have received SDK traffic in this project.")).Required().
		Field("apiTokens", counter("The number of API tokens created specifically for this project.")).Required().
		Field("members", counter("The number of users who have been granted roles in this project. Does not include users who have access via groups.")).Required().
		Field("segments", counter("The number of segments that are scoped to this project.")).Required().
		Strict()).Required().
	Strict())
