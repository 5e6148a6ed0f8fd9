package fragskema

import (
	"bytes"
	"slices"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	js "github.com/reoring/fragskema/jsonschema"
)

// Document is the result of composition: a root id and a registry of every
// distinct fragment, each id exactly once, in discovery order.
type Document struct {
	RootID string // empty for bundles built by ComposeAll

	ids  []string
	byID map[string]*Fragment
}

func newDocument() *Document { return &Document{byID: map[string]*Fragment{}} }

func (d *Document) add(f *Fragment) {
	d.ids = append(d.ids, f.ID)
	d.byID[f.ID] = f
}

// Root returns the root fragment, or nil for bundles.
func (d *Document) Root() *Fragment { return d.byID[d.RootID] }

// Lookup returns the registered fragment for id.
func (d *Document) Lookup(id string) (*Fragment, bool) {
	f, ok := d.byID[id]
	return f, ok
}

// Resolve follows a reference shape to its registered fragment.
func (d *Document) Resolve(s Shape) (*Fragment, bool) {
	if s.Kind != KindReference {
		return nil, false
	}
	return d.Lookup(s.Ref)
}

// IDs returns registry ids in discovery order.
func (d *Document) IDs() []string { return slices.Clone(d.ids) }

// Len returns the number of registered fragments.
func (d *Document) Len() int { return len(d.ids) }

// Fragments returns registered fragments in discovery order.
func (d *Document) Fragments() []*Fragment {
	out := make([]*Fragment, len(d.ids))
	for i, id := range d.ids {
		out[i] = d.byID[id]
	}
	return out
}

// Equal compares two documents by root id and registry contents, ignoring
// insertion order.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.RootID != o.RootID || len(d.byID) != len(o.byID) {
		return false
	}
	for id, f := range d.byID {
		g, ok := o.byID[id]
		if !ok || !Equivalent(f.Shape, g.Shape) {
			return false
		}
	}
	return true
}

func (d *Document) refIDs(id string) []string {
	f := d.byID[id]
	refs := f.References()
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ID)
	}
	return out
}

// JSONSchema renders the wire form: the root schema with $id and a
// components.schemas map holding every other fragment. The root is listed
// under components as well when some fragment refers back to it. Bundles
// only carry components.
func (d *Document) JSONSchema() *js.Schema {
	var out *js.Schema
	if root := d.Root(); root != nil {
		out = root.Shape.JSONSchema()
		out.ID = RefTo(root.ID)
	} else {
		out = &js.Schema{}
	}
	schemas := make(map[string]*js.Schema, len(d.ids))
	for _, f := range d.Fragments() {
		if f.ID == d.RootID && !d.referenced(f.ID) {
			continue
		}
		schemas[f.ID] = f.Shape.JSONSchema()
	}
	out.Components = &js.Components{Schemas: schemas}
	return out
}

func (d *Document) referenced(id string) bool {
	for other := range d.byID {
		if slices.Contains(d.refIDs(other), id) {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) { return j.Marshal(d.JSONSchema()) }

// JSON encodes the document, indented when pretty is set.
func (d *Document) JSON(pretty bool) ([]byte, error) {
	data, err := j.Marshal(d.JSONSchema())
	if err != nil || !pretty {
		return data, err
	}
	// indent the compact form; MarshalIndent does not terminate on the
	// recursive schema type
	var buf bytes.Buffer
	if err := j.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML encodes the document as YAML.
func (d *Document) YAML() ([]byte, error) { return yaml.Marshal(d.JSONSchema()) }
