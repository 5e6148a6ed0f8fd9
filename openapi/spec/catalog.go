package spec

import (
	fragskema "github.com/reoring/fragskema"
)

// Roots lists the fragments the API exposes directly. Everything else is
// reached through them.
func Roots() []*fragskema.Fragment {
	return []*fragskema.Fragment{
		PersonalDashboardProjectDetailsFragment,
		ProjectStatusFragment,
	}
}

// Document composes every root into a single bundle. It fails on any
// definition error, so callers should run it at start-up or in tests.
func Document(opts ...fragskema.Option) (*fragskema.Document, error) {
	return fragskema.ComposeAll(Roots(), opts...)
}
