// Package spec is the catalogue of API schema fragments. Each fragment is an
// immutable package-level value; types_gen.go holds the Go types derived from
// them and is regenerated with go generate.
package spec

//go:generate go run ./internal/typegen -o types_gen.go
