// Package load reads schema fragments from YAML or JSON files written in the
// wire layout ($id, type, properties, items, enum, $ref, components.schemas).
package load

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/maruel/natural"
	"go.uber.org/multierr"

	fragskema "github.com/reoring/fragskema"
)

// Format selects the input syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks a format from a file extension. Unknown extensions are
// reported as not ok.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return 0, false
}

// Parse decodes every document in data into a fragment. A YAML stream may
// carry several documents; a JSON input carries exactly one.
func Parse(data []byte, format Format) ([]*fragskema.Fragment, error) {
	if format == FormatJSON && !j.Valid(data) {
		// go-json reports the precise syntax error
		var v any
		if err := j.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("load: invalid JSON: %w", err)
		}
		return nil, fmt.Errorf("load: invalid JSON")
	}
	docs, err := newStrictReader(bytes.NewReader(data)).readAll()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var (
		out  []*fragskema.Fragment
		errs error
	)
	for _, d := range docs {
		o, ok := d.(*object)
		if !ok {
			errs = multierr.Append(errs, &fragskema.MalformedShapeError{Path: "/", Reason: "document root must be a mapping"})
			continue
		}
		f, err := fragmentFrom(o, "")
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, f)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// File loads every fragment defined in one file.
func File(path string) ([]*fragskema.Fragment, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("load: %s: unsupported file extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	frags, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frags, nil
}

// Paths loads files and directories (recursively, *.yaml, *.yml, *.json in
// natural order, so v2 precedes v10). Errors from every file are aggregated.
func Paths(paths ...string) ([]*fragskema.Fragment, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}
	var (
		out  []*fragskema.Fragment
		errs error
	)
	for _, p := range files {
		frags, err := File(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, frags...)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if _, ok := FormatOf(path); ok && !d.IsDir() {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		sort.Sort(natural.StringSlice(found))
		files = append(files, found...)
	}
	return files, nil
}

// Find returns the fragment with the given id among frags and their nested
// bundles.
func Find(frags []*fragskema.Fragment, id string) (*fragskema.Fragment, bool) {
	seen := map[*fragskema.Fragment]struct{}{}
	var walk func([]*fragskema.Fragment) *fragskema.Fragment
	walk = func(list []*fragskema.Fragment) *fragskema.Fragment {
		for _, f := range list {
			if _, ok := seen[f]; ok || f == nil {
				continue
			}
			seen[f] = struct{}{}
			if f.ID == id {
				return f
			}
			if hit := walk(f.Dependencies()); hit != nil {
				return hit
			}
		}
		return nil
	}
	f := walk(frags)
	return f, f != nil
}
