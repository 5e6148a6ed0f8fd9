package fragskema

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/reoring/fragskema/i18n"
)

// Error codes (stable identifiers, also used as i18n keys).
const (
	CodeIdentityCollision   = "identity_collision"
	CodeUnresolvedReference = "unresolved_reference"
	CodeMalformedShape      = "malformed_shape"
	CodeCycleDetected       = "cycle_detected"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrIdentityCollision   = errors.New("fragskema: identity collision")
	ErrUnresolvedReference = errors.New("fragskema: unresolved reference")
	ErrMalformedShape      = errors.New("fragskema: malformed shape")
	ErrCycleDetected       = errors.New("fragskema: cycle detected")
)

// Coded is implemented by every definition-time error of this module.
type Coded interface {
	error
	Code() string
}

// IdentityCollisionError reports one id bound to two structurally different
// shapes. First and Second hold the canonical JSON of both shapes in the
// order they were discovered.
type IdentityCollisionError struct {
	ID     string
	First  string
	Second string
}

func (e *IdentityCollisionError) Error() string {
	return fmt.Sprintf("fragskema: %s: %q\n  first:  %s\n  second: %s", i18n.T(CodeIdentityCollision, map[string]string{"id": e.ID}), e.ID, e.First, e.Second)
}
func (e *IdentityCollisionError) Code() string        { return CodeIdentityCollision }
func (e *IdentityCollisionError) Is(target error) bool { return target == ErrIdentityCollision }

// UnresolvedReferenceError reports a reference whose target id is not part of
// the composed registry.
type UnresolvedReferenceError struct {
	From string // id of the fragment holding the reference
	Path string // JSON Pointer of the reference inside From
	Ref  string // referenced id
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("fragskema: %s: %q at %s%s", i18n.T(CodeUnresolvedReference, map[string]string{"ref": e.Ref}), e.Ref, e.From, e.Path)
}
func (e *UnresolvedReferenceError) Code() string        { return CodeUnresolvedReference }
func (e *UnresolvedReferenceError) Is(target error) bool { return target == ErrUnresolvedReference }

// MalformedShapeError reports a shape that breaks the structural rules of its
// own kind.
type MalformedShapeError struct {
	ID     string
	Path   string
	Reason string
}

func (e *MalformedShapeError) Error() string {
	at := e.ID + e.Path
	if at == "" {
		at = "/"
	}
	return fmt.Sprintf("fragskema: %s at %s: %s", i18n.T(CodeMalformedShape, nil), at, e.Reason)
}
func (e *MalformedShapeError) Code() string        { return CodeMalformedShape }
func (e *MalformedShapeError) Is(target error) bool { return target == ErrMalformedShape }

// CycleDetectedError reports a reference cycle. Path starts and ends with the
// same id.
type CycleDetectedError struct {
	Path []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("fragskema: %s: %s", i18n.T(CodeCycleDetected, nil), strings.Join(e.Path, " -> "))
}
func (e *CycleDetectedError) Code() string        { return CodeCycleDetected }
func (e *CycleDetectedError) Is(target error) bool { return target == ErrCycleDetected }

// Errors flattens an aggregated error into its individual errors.
func Errors(err error) []error { return multierr.Errors(err) }

// CodeOf returns the code of the first coded error in err's chain, or "".
func CodeOf(err error) string {
	for _, e := range multierr.Errors(err) {
		var c Coded
		if errors.As(e, &c) {
			return c.Code()
		}
	}
	return ""
}
