package derive

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var initialisms = map[string]string{
	"api":  "API",
	"http": "HTTP",
	"id":   "ID",
	"json": "JSON",
	"sdk":  "SDK",
	"uri":  "URI",
	"url":  "URL",
	"uuid": "UUID",
}

// GoName turns a fragment id, property name or enum literal into an exported
// Go identifier: "custom-root" -> "CustomRoot", "projectActivitySchema" ->
// "ProjectActivitySchema", "imageUrl" -> "ImageURL".
func GoName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	// a Caser keeps state; never share it
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, p := range parts {
		for _, w := range camelWords(p) {
			if up, ok := initialisms[strings.ToLower(w)]; ok {
				b.WriteString(up)
				continue
			}
			b.WriteString(title.String(w))
		}
	}
	out := b.String()
	if out == "" {
		return "X"
	}
	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		out = "X" + out
	}
	return out
}

// camelWords splits s at case changes: "imageUrl" -> [image Url],
// "HTTPServer" -> [HTTP Server]. Digits stay with the preceding word.
func camelWords(s string) []string {
	rs := []rune(s)
	var (
		out   []string
		start int
	)
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		lowerToUpper := !unicode.IsUpper(prev) && unicode.IsUpper(cur)
		endOfRun := unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if lowerToUpper || endOfRun {
			out = append(out, string(rs[start:i]))
			start = i
		}
	}
	return append(out, string(rs[start:]))
}

// numberSuffix renders a numeric enum literal as an identifier suffix.
func numberSuffix(lit string) string {
	r := strings.NewReplacer("-", "Neg", ".", "_", "+", "")
	return "V" + r.Replace(lit)
}
