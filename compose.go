package fragskema

import (
	"errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/reoring/fragskema/internal/graph"
)

// CyclePolicy decides how reference cycles are treated.
type CyclePolicy int

const (
	CycleReject CyclePolicy = iota // Fail with CycleDetectedError (default).
	CycleAllow                     // Keep lazy $ref cycles in the document.
)

// Option configures composition.
type Option func(*options)

type options struct {
	cycles CyclePolicy
	log    *zap.Logger
}

// WithCycles sets the cycle policy.
func WithCycles(p CyclePolicy) Option { return func(o *options) { o.cycles = p } }

// WithLogger traces traversal at debug level. A nil logger disables tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.log = l
	}
}

// ErrNilRoot is returned when Compose receives no root fragment.
var ErrNilRoot = errors.New("fragskema: nil root fragment")

// Compose merges root and its transitive dependencies into a Document.
//
// Fragments are deduplicated by id: structurally identical copies collapse
// into one registry entry, differing ones fail with IdentityCollisionError.
// The result is closed under references and, unless CycleAllow is given,
// acyclic.
func Compose(root *Fragment, opts ...Option) (*Document, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	doc, err := compose([]*Fragment{root}, opts)
	if err != nil {
		return nil, err
	}
	doc.RootID = root.ID
	return doc, nil
}

// ComposeAll merges several roots into one bundle document. The bundle has
// no root; every fragment is listed under components.schemas.
func ComposeAll(roots []*Fragment, opts ...Option) (*Document, error) {
	for _, r := range roots {
		if r == nil {
			return nil, ErrNilRoot
		}
	}
	return compose(roots, opts)
}

// MustCompose is like Compose but panics on error. Use it for package-level
// documents so a definition error fails at start-up.
func MustCompose(root *Fragment, opts ...Option) *Document {
	doc, err := Compose(root, opts...)
	if err != nil {
		panic(err)
	}
	return doc
}

type composer struct {
	opts options
	doc  *Document
	fps  map[string][]byte
	seen map[*Fragment]struct{}
}

func compose(roots []*Fragment, opts []Option) (*Document, error) {
	o := options{cycles: CycleReject, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	c := &composer{
		opts: o,
		doc:  newDocument(),
		fps:  map[string][]byte{},
		seen: map[*Fragment]struct{}{},
	}
	for _, r := range roots {
		if err := c.visit(r, ""); err != nil {
			return nil, err
		}
	}
	if err := c.checkClosure(); err != nil {
		return nil, err
	}
	if c.opts.cycles == CycleReject {
		if err := c.checkCycles(); err != nil {
			return nil, err
		}
	}
	c.opts.log.Debug("Composed document", zap.Int("fragments", c.doc.Len()), zap.Strings("ids", c.doc.IDs()))
	return c.doc, nil
}

// visit inserts f on first sight of its id and always descends into its
// dependencies, so collisions hidden below a duplicate are still found. The
// pointer set only guarantees termination.
func (c *composer) visit(f *Fragment, parent string) error {
	if _, ok := c.seen[f]; ok {
		return nil
	}
	c.seen[f] = struct{}{}

	if err := ValidateFragment(f); err != nil {
		return err
	}
	fp, err := fingerprint(f.Shape)
	if err != nil {
		return &MalformedShapeError{ID: f.ID, Path: "/", Reason: err.Error()}
	}
	if prev, ok := c.fps[f.ID]; ok {
		if string(prev) != string(fp) {
			return &IdentityCollisionError{ID: f.ID, First: string(prev), Second: string(fp)}
		}
		c.opts.log.Debug("Fragment deduplicated", zap.String("id", f.ID), zap.String("parent", parent))
	} else {
		c.fps[f.ID] = fp
		c.doc.add(f)
		c.opts.log.Debug("Fragment registered", zap.String("id", f.ID), zap.String("parent", parent))
	}
	for _, dep := range f.Dependencies() {
		if err := c.visit(dep, f.ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *composer) checkClosure() error {
	var err error
	for _, f := range c.doc.Fragments() {
		for _, ref := range f.References() {
			if _, ok := c.doc.Lookup(ref.ID); !ok {
				err = multierr.Append(err, &UnresolvedReferenceError{From: f.ID, Path: ref.Path, Ref: ref.ID})
			}
		}
	}
	return err
}

func (c *composer) checkCycles() error {
	err := graph.DetectCycle(graph.Config[string]{
		Starts: c.doc.IDs(),
		Exists: func(id string) bool {
			_, ok := c.doc.Lookup(id)
			return ok
		},
		Next: c.doc.refIDs,
	})
	var ce graph.CycleError[string]
	if errors.As(err, &ce) {
		return &CycleDetectedError{Path: ce.Path}
	}
	return err
}
