// Command typegen regenerates types_gen.go from the fragment catalogue.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/reoring/fragskema/derive"
	"github.com/reoring/fragskema/openapi/spec"
)

func main() {
	var out string
	flag.StringVar(&out, "o", "types_gen.go", "output filename")
	flag.Parse()

	doc, err := spec.Document()
	if err != nil {
		fatalf("compose catalogue: %v", err)
	}
	code, err := derive.Render(doc, derive.Options{Package: "spec"})
	if err != nil {
		fatalf("derive: %v", err)
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
