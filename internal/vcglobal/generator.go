// Package vcglobal implements the global generator (spec §4.E): compiling a
// nominal type's refinement predicate into a Block, memoized by qualified
// name, recursing through nominal references via the configured Loader.
package vcglobal

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vcfile"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// cacheEntry holds one memoized generate() result. A pending entry (marker
// true, block/err unset) is installed before recursing into a nominal
// reference so that a cycle back to the same name is detected instead of
// looping forever (spec §4.E "the cache is populated before recursive
// descent into a nominal reference").
type cacheEntry struct {
	pending bool
	block   *vcir.Block
	err     error
}

// Generator computes and memoizes refinement-check Blocks for qualified
// names. One Generator corresponds to one engine instance (spec §5: "the
// global-generator cache is written at most once per qualified name per
// engine instance").
type Generator struct {
	loader vcfile.Loader

	mu    sync.Mutex
	cache map[string]*cacheEntry

	group singleflight.Group
}

// New constructs a Generator resolving nominal references through loader.
func New(loader vcfile.Loader) *Generator {
	return &Generator{
		loader: loader,
		cache:  map[string]*cacheEntry{},
	}
}

// Generate returns the refinement-check Block for name, or nil if the named
// type carries no refinement. Concurrent calls for the same name are
// deduplicated via singleflight; the result is cached for the lifetime of
// this Generator.
func (g *Generator) Generate(name vctypes.QualifiedName) (*vcir.Block, error) {
	key := name.String()

	if e := g.lookupCache(key); e != nil {
		if e.pending {
			return nil, vcerr.UnsupportedFeatureErr("recursive refinement on " + key)
		}

		return e.block, e.err
	}

	v, err, _ := g.group.Do(key, func() (any, error) {
		if e := g.lookupCache(key); e != nil {
			return e.block, e.err
		}

		g.markPending(key)

		block, err := g.generateUncached(name)

		g.store(key, block, err)

		return block, err
	})

	if err != nil {
		return nil, err
	}

	block, _ := v.(*vcir.Block)

	return block, nil
}

func (g *Generator) lookupCache(key string) *cacheEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.cache[key]
}

func (g *Generator) markPending(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cache[key] = &cacheEntry{pending: true}
}

func (g *Generator) store(key string, block *vcir.Block, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cache[key] = &cacheEntry{block: block, err: err}
}

// Invalidate drops the memoized entry for name, if any, e.g. in response to
// a filesystem change event (Watch).
func (g *Generator) Invalidate(name vctypes.QualifiedName) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.cache, name.String())
}

func (g *Generator) generateUncached(name vctypes.QualifiedName) (*vcir.Block, error) {
	decl, ok, err := g.loader.Load(name)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, vcerr.Unresolved(name.String())
	}

	typeDecl, ok := decl.(vcfile.TypeDecl)
	if !ok {
		return nil, vcerr.Unresolved(name.String())
	}

	// Already-compiled unit: the refinement was elaborated once at compile
	// time and travels with the declaration.
	if typeDecl.Invariant != nil {
		return typeDecl.Invariant, nil
	}

	return g.elaborate(typeDecl.Type)
}

// elaborate compiles the refinement predicate implied by an unresolved
// surface type (spec §4.E's per-constructor rules). Unlike Generate, it is
// not itself memoized — only the qualified-name entry points are.
func (g *Generator) elaborate(t vctypes.Type) (*vcir.Block, error) {
	switch v := t.(type) {
	case vctypes.List:
		return g.elaborateContainer(v.Elem)
	case vctypes.Set:
		return g.elaborateContainer(v.Elem)
	case vctypes.Tuple:
		return g.elaborateTuple(v.Elems)
	case vctypes.Record:
		return g.elaborateRecord(v.Fields)
	case vctypes.Union:
		return g.elaborateUnion(v.Options)
	case vctypes.Nominal:
		return g.Generate(v.Name)
	case vctypes.Map:
		return nil, vcerr.UnsupportedFeatureErr("map")
	case vctypes.Reference:
		return nil, vcerr.UnsupportedFeatureErr("reference")
	case vctypes.Intersection:
		return nil, vcerr.UnsupportedFeatureErr("intersection")
	case vctypes.Negation:
		return nil, vcerr.UnsupportedFeatureErr("negation")
	default:
		// Primitives, Function, Method, Recursive: no refinement in this
		// design.
		return nil, nil
	}
}

// elaborateContainer implements the list(E)/set(E) rule: a universally
// quantified check over every element, reusing slot 1 as the element's own
// candidate register (shift(1,P) lands P's slot 0 at slot 1, aliasing it to
// the forall's bound variable).
func (g *Generator) elaborateContainer(elem vctypes.Type) (*vcir.Block, error) {
	p, err := g.elaborate(elem)
	if err != nil {
		return nil, err
	}

	if p == nil {
		return nil, nil
	}

	end := vcir.FreshLabel()
	shifted := p.Shift(1, 0)

	entries := make([]vcir.Entry, 0, shifted.Size()+3)
	entries = append(entries, vcir.Entry{Code: vcir.ForAll{IndexVar: 1, Source: 0, End: end}})
	entries = append(entries, shifted.Entries()...)
	entries = append(entries, vcir.Entry{Code: vcir.LabelMarker{Name: end}})
	entries = append(entries, vcir.Entry{Code: vcir.LoopEnd{}})

	block := vcir.NewBlock(entries)

	return &block, nil
}

// elaborateTuple implements the tuple(E1...En) rule: for each component
// whose own elaboration is non-nil, load $.i into slot 1 and splice
// shift(1, Pi).
func (g *Generator) elaborateTuple(elems []vctypes.Type) (*vcir.Block, error) {
	var entries []vcir.Entry

	for i, e := range elems {
		p, err := g.elaborate(e)
		if err != nil {
			return nil, err
		}

		if p == nil {
			continue
		}

		entries = append(entries, vcir.Entry{Code: vcir.TupleLoad{Target: 1, Sources: []vcir.Register{0}, Index: i, Type: e}})
		entries = append(entries, p.Shift(1, 0).Entries()...)
	}

	if entries == nil {
		return nil, nil
	}

	block := vcir.NewBlock(entries)

	return &block, nil
}

// elaborateRecord implements the record(field→E) rule, the same shape as
// tuple but using fieldload instead of tupleload.
func (g *Generator) elaborateRecord(fields []vctypes.Field) (*vcir.Block, error) {
	var entries []vcir.Entry

	for _, f := range fields {
		p, err := g.elaborate(f.Type)
		if err != nil {
			return nil, err
		}

		if p == nil {
			continue
		}

		entries = append(entries, vcir.Entry{Code: vcir.FieldLoad{Target: 1, Sources: []vcir.Register{0}, Field: f.Name, Type: f.Type}})
		entries = append(entries, p.Shift(1, 0).Entries()...)
	}

	if entries == nil {
		return nil, nil
	}

	block := vcir.NewBlock(entries)

	return &block, nil
}

// elaborateUnion implements the union(B1...Bn) rule: without refinements on
// any Bi the result is nil (a pure type test imposes no extra predicate);
// with a refinement on any Bi, union-with-refinements elaboration is left
// open by spec.md §9 and surfaces UnsupportedFeature rather than silently
// dropping the refinement.
func (g *Generator) elaborateUnion(options []vctypes.Type) (*vcir.Block, error) {
	for _, o := range options {
		p, err := g.elaborate(o)
		if err != nil {
			return nil, err
		}

		if p != nil {
			return nil, vcerr.UnsupportedFeatureErr("union-with-refinements")
		}
	}

	return nil, nil
}
