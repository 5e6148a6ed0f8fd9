// Package fragskema composes independently authored schema fragments into a
// single API document and keeps derived Go types in step with them.
//
// Package fragskema provides:
//
// - Immutable Fragment/Shape values (object, array, enum, primitive, reference)
// - Compose/ComposeAll: a deduplicating, closure-checked merge into a Document
// - Typed definition-time errors with stable codes (identity collision,
//   unresolved reference, malformed shape, reference cycle)
// - JSON Schema projection of a Document with a components.schemas registry
//
// Design policy:
// - Keep only the data model and composition in the root package.
// - Place builders under dsl/, type derivation under derive/, file loading
//   under load/ and the CLI under cmd/fragskema.
// - Composition is pure: no I/O, no shared mutable state, no caching.
//
// Typical usage:
//
//	role := dsl.Define("role", dsl.Object().
//	    Field("name", dsl.String()).Required().
//	    Strict())
//	doc, err := fragskema.Compose(dsl.Define("pdpds", dsl.Object().
//	    Field("roles", dsl.Array(dsl.Ref("role")).Min(1)).Required(), role))
//	out, err := doc.JSON(true)
package fragskema
