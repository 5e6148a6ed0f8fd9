package load

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/fragskema/i18n"
)

// DuplicateKeyError reports a duplicate key found in a mapping with both the
// first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

// CodeDuplicateKey identifies DuplicateKeyError.
const CodeDuplicateKey = "duplicate_key"

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q at %d:%d (first at %d:%d)", i18n.T(CodeDuplicateKey, nil), e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

func (e *DuplicateKeyError) Code() string { return CodeDuplicateKey }

// object is a decoded mapping that remembers key order, so properties keep
// their authored order.
type object struct {
	keys []string
	vals map[string]any
	line int
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// plain converts the mapping into map[string]any recursively (for example
// values, where order does not matter).
func (o *object) plain() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = plainValue(o.vals[k])
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *object:
		return t.plain()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plainValue(t[i])
		}
		return out
	default:
		return v
	}
}

// strictReader decodes a multi-document YAML (or JSON) stream using yaml.Node
// to detect duplicate keys with positions.
type strictReader struct {
	dec *yaml.Decoder
}

func newStrictReader(r io.Reader) *strictReader {
	return &strictReader{dec: yaml.NewDecoder(r)}
}

// next returns the next document. It returns (nil, io.EOF) when the stream
// is exhausted.
func (s *strictReader) next() (any, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	return nodeToValue(root.Content[0])
}

// readAll reads all non-empty documents from the stream.
func (s *strictReader) readAll() ([]any, error) {
	var out []any
	for {
		v, err := s.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		if v != nil {
			out = append(out, v)
		}
	}
}

func nodeToValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		o := &object{vals: make(map[string]any, len(n.Content)/2), line: n.Line}
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := nodeToValue(v)
			if err != nil {
				return nil, err
			}
			o.keys = append(o.keys, key)
			o.vals[key] = val
		}
		return o, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			switch n.Value {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return n.Value, nil
		case "!!int":
			// int64 to avoid overflow surprises; callers coerce later
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return i, nil
			}
			return n.Value, nil
		case "!!float":
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f, nil
			}
			return n.Value, nil
		default:
			return n.Value, nil
		}
	default:
		return nil, nil
	}
}
