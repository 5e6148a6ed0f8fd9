package fragskema

import "strings"

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapePointer escapes a property or schema name for use as one JSON
// Pointer segment (RFC 6901: '~' -> "~0", '/' -> "~1").
func EscapePointer(name string) string { return pointerEscaper.Replace(name) }

// RefTo renders the registry pointer for id.
func RefTo(id string) string { return RefPrefix + id }

// IDFromRef extracts the fragment id from a registry pointer. Bare ids are
// accepted as-is; any other pointer form is rejected.
func IDFromRef(ref string) (string, bool) {
	if id, ok := strings.CutPrefix(ref, RefPrefix); ok {
		return id, id != ""
	}
	if ref == "" || strings.ContainsAny(ref, "#/") {
		return "", false
	}
	return ref, true
}
