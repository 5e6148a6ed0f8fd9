package fragskema_test

import (
	"fmt"
	"testing"

	fragskema "github.com/reoring/fragskema"
	"github.com/reoring/fragskema/derive"
	g "github.com/reoring/fragskema/dsl"
	"github.com/reoring/fragskema/openapi/spec"
)

// ---- Helpers ----

// wideBundle returns a root bundling n leaf fragments, each also bundled by
// every intermediate so deduplication dominates.
func wideBundle(n int) *fragskema.Fragment {
	leaves := make([]*fragskema.Fragment, n)
	for i := range leaves {
		leaves[i] = g.Define(fmt.Sprintf("leaf%d", i), g.Object().
			Field("id", g.Integer()).Required().
			Field("name", g.String()).
			Strict())
	}
	mids := make([]*fragskema.Fragment, n)
	for i := range mids {
		obj := g.Object()
		for k := range leaves {
			obj.Field(leaves[k].ID, g.Ref(leaves[k].ID))
		}
		mids[i] = g.Define(fmt.Sprintf("mid%d", i), obj, leaves...)
	}
	root := g.Object()
	for _, m := range mids {
		root.Field(m.ID, g.Array(g.Ref(m.ID)))
	}
	return g.Define("root", root, mids...)
}

// ---- Benchmarks ----

func BenchmarkCompose_Catalogue(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		if _, err := spec.Document(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompose_WideBundle(b *testing.B) {
	for _, n := range []int{10, 50} {
		root := wideBundle(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := fragskema.Compose(root); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDocument_JSON(b *testing.B) {
	doc, err := spec.Document()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := doc.JSON(false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDerive_Render(b *testing.B) {
	doc, err := spec.Document()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := derive.Render(doc, derive.Options{Package: "spec"}); err != nil {
			b.Fatal(err)
		}
	}
}
