// Package derive maps composed fragments to Go types.
//
// Render folds each registered shape into a Go declaration (object -> struct,
// array -> slice, enum -> named type with constants, reference -> the named
// type of the target, primitive -> builtin) and returns gofmt'ed source meant
// to be committed through go generate. Check verifies that a Go type still
// conforms to a fragment, so a shape edit that was not regenerated fails the
// test suite instead of drifting silently.
package derive
